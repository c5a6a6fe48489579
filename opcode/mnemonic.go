package opcode

import (
	"strings"
)

// Mnemonic identifies an instruction type.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	NONE = Mnemonic(iota) // ???
	AAA                   // aaa
	AAD                   // aad
	AAM                   // aam
	AAS                   // aas
	ADC                   // adc
	ADD                   // add
	AND                   // and
	CALL                  // call
	CBW                   // cbw
	CLC                   // clc
	CLD                   // cld
	CLI                   // cli
	CMC                   // cmc
	CMP                   // cmp
	CMPS                  // cmps
	CWD                   // cwd
	DAA                   // daa
	DAS                   // das
	DEC                   // dec
	DIV                   // div
	HLT                   // hlt
	IDIV                  // idiv
	IMUL                  // imul
	IN                    // in
	INC                   // inc
	INT                   // int
	INTO                  // into
	IRET                  // iret
	JA                    // ja
	JB                    // jb
	JBE                   // jbe
	JCXZ                  // jcxz
	JE                    // je
	JG                    // jg
	JGE                   // jge
	JL                    // jl
	JLE                   // jle
	JMP                   // jmp
	JNB                   // jnb
	JNE                   // jne
	JNO                   // jno
	JNP                   // jnp
	JNS                   // jns
	JO                    // jo
	JP                    // jp
	JS                    // js
	LAHF                  // lahf
	LDS                   // lds
	LEA                   // lea
	LES                   // les
	LOCK                  // lock
	LODS                  // lods
	LOOP                  // loop
	LOOPE                 // loope
	LOOPNE                // loopne
	MOV                   // mov
	MOVS                  // movs
	MUL                   // mul
	NEG                   // neg
	NOP                   // nop
	NOT                   // not
	OR                    // or
	OUT                   // out
	POP                   // pop
	POPF                  // popf
	PUSH                  // push
	PUSHF                 // pushf
	RCL                   // rcl
	RCR                   // rcr
	REP                   // rep
	REPNE                 // repne
	RET                   // ret
	RETF                  // retf
	ROL                   // rol
	ROR                   // ror
	SAHF                  // sahf
	SAR                   // sar
	SBB                   // sbb
	SCAS                  // scas
	SEG                   // seg
	SHL                   // shl
	SHR                   // shr
	STC                   // stc
	STD                   // std
	STI                   // sti
	STOS                  // stos
	SUB                   // sub
	TEST                  // test
	WAIT                  // wait
	XCHG                  // xchg
	XLAT                  // xlat
	XOR                   // xor
)

const mnemonicCount = int(XOR) + 1

// ParseMnemonic returns the mnemonic for a (case insensitive) name.
func ParseMnemonic(name string) (m Mnemonic, ok bool) {
	name = strings.ToLower(name)
	for n := NONE + 1; int(n) < mnemonicCount; n++ {
		if n.String() == name {
			return n, true
		}
	}
	return
}

// IsString is true for the string instructions, which carry their width as
// a suffix in assembly text (movsb, movsw, ...).
func (m Mnemonic) IsString() bool {
	switch m {
	case MOVS, CMPS, SCAS, LODS, STOS:
		return true
	}
	return false
}

// IsBranch is true for instructions whose operand names a code location.
func (m Mnemonic) IsBranch() bool {
	switch m {
	case JMP, CALL, JCXZ, LOOP, LOOPE, LOOPNE,
		JO, JNO, JB, JNB, JE, JNE, JBE, JA, JS, JNS, JP, JNP, JL, JGE, JLE, JG:
		return true
	}
	return false
}
