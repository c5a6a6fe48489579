package opcode

// Width is the operand width class of an instruction.
type Width int

//go:generate go tool stringer -linecomment -type=Width
const (
	WIDTH_NONE  = Width(0) // none
	WIDTH_BYTE  = Width(1) // byte
	WIDTH_WORD  = Width(2) // word
	WIDTH_DWORD = Width(4) // dword
)

// Register identifies a CPU register. The 8-bit registers alias a half of
// one of the four general purpose 16-bit registers.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_NONE  = Register(iota) // none
	REG_AL                     // al
	REG_CL                     // cl
	REG_DL                     // dl
	REG_BL                     // bl
	REG_AH                     // ah
	REG_CH                     // ch
	REG_DH                     // dh
	REG_BH                     // bh
	REG_AX                     // ax
	REG_CX                     // cx
	REG_DX                     // dx
	REG_BX                     // bx
	REG_SP                     // sp
	REG_BP                     // bp
	REG_SI                     // si
	REG_DI                     // di
	REG_ES                     // es
	REG_CS                     // cs
	REG_SS                     // ss
	REG_DS                     // ds
	REG_IP                     // ip
	REG_FLAGS                  // flags
)

const registerCount = int(REG_FLAGS) + 1

// ParseRegister returns the register for a lower case name.
func ParseRegister(name string) (reg Register, ok bool) {
	for n := REG_NONE + 1; int(n) < registerCount; n++ {
		if n.String() == name {
			return n, true
		}
	}
	return
}

// Registers returns all of the addressable registers, in encoding order.
func Registers() []Register {
	regs := make([]Register, 0, registerCount-1)
	for n := REG_NONE + 1; int(n) < registerCount; n++ {
		regs = append(regs, n)
	}
	return regs
}

// Width returns the width of the register.
func (r Register) Width() Width {
	switch {
	case r >= REG_AL && r <= REG_BH:
		return WIDTH_BYTE
	case r >= REG_AX && r <= REG_FLAGS:
		return WIDTH_WORD
	}
	return WIDTH_NONE
}

// IsSegment is true for the segment registers.
func (r Register) IsSegment() bool {
	return r >= REG_ES && r <= REG_DS
}

// Word returns the 16-bit register that holds the register, and the bit
// shift of the register within it.
func (r Register) Word() (word Register, shift uint) {
	switch {
	case r >= REG_AL && r <= REG_BL:
		return REG_AX + (r - REG_AL), 0
	case r >= REG_AH && r <= REG_BH:
		return REG_AX + (r - REG_AH), 8
	}
	return r, 0
}

type registerKey struct {
	code  uint8
	width Width
}

// register-field table
var registerField = map[registerKey]Register{
	{0, WIDTH_BYTE}: REG_AL,
	{1, WIDTH_BYTE}: REG_CL,
	{2, WIDTH_BYTE}: REG_DL,
	{3, WIDTH_BYTE}: REG_BL,
	{4, WIDTH_BYTE}: REG_AH,
	{5, WIDTH_BYTE}: REG_CH,
	{6, WIDTH_BYTE}: REG_DH,
	{7, WIDTH_BYTE}: REG_BH,
	{0, WIDTH_WORD}: REG_AX,
	{1, WIDTH_WORD}: REG_CX,
	{2, WIDTH_WORD}: REG_DX,
	{3, WIDTH_WORD}: REG_BX,
	{4, WIDTH_WORD}: REG_SP,
	{5, WIDTH_WORD}: REG_BP,
	{6, WIDTH_WORD}: REG_SI,
	{7, WIDTH_WORD}: REG_DI,
}

// RegisterOf maps a 3-bit register code and a width to a register.
// REG_NONE is returned for an unsupported width.
func RegisterOf(code uint8, width Width) Register {
	return registerField[registerKey{code & 7, width}]
}

var segmentField = [4]Register{REG_ES, REG_CS, REG_SS, REG_DS}

// SegmentOf maps a segment register code to a segment register.
func SegmentOf(code uint8) Register {
	if code >= uint8(len(segmentField)) {
		return REG_NONE
	}
	return segmentField[code]
}
