package opcode

// Eac is an effective address calculation mode.
type Eac int

//go:generate go tool stringer -linecomment -type=Eac
const (
	EAC_BX_SI = Eac(iota) // bx + si
	EAC_BX_DI             // bx + di
	EAC_BP_SI             // bp + si
	EAC_BP_DI             // bp + di
	EAC_SI                // si
	EAC_DI                // di
	EAC_DIRECT            // direct address
	EAC_BX                // bx

	EAC_BX_SI_D8 // bx + si + d8
	EAC_BX_DI_D8 // bx + di + d8
	EAC_BP_SI_D8 // bp + si + d8
	EAC_BP_DI_D8 // bp + di + d8
	EAC_SI_D8    // si + d8
	EAC_DI_D8    // di + d8
	EAC_BP_D8    // bp + d8
	EAC_BX_D8    // bx + d8

	EAC_BX_SI_D16 // bx + si + d16
	EAC_BX_DI_D16 // bx + di + d16
	EAC_BP_SI_D16 // bp + si + d16
	EAC_BP_DI_D16 // bp + di + d16
	EAC_SI_D16    // si + d16
	EAC_DI_D16    // di + d16
	EAC_BP_D16    // bp + d16
	EAC_BX_D16    // bx + d16
)

// EAC_COUNT is the number of addressing modes.
const EAC_COUNT = int(EAC_BX_D16) + 1

// EacEntry describes a single addressing mode.
type EacEntry struct {
	Eac       Eac
	Base      Register // REG_BX, REG_BP or REG_NONE
	Index     Register // REG_SI, REG_DI or REG_NONE
	DispBytes int      // Displacement bytes that follow the mod/reg/rm byte.
	Cycles    int      // Clocks to compute the address.
}

var eacTable [EAC_COUNT]EacEntry

func init() {
	base := [8]Register{REG_BX, REG_BX, REG_BP, REG_BP, REG_NONE, REG_NONE, REG_BP, REG_BX}
	index := [8]Register{REG_SI, REG_DI, REG_SI, REG_DI, REG_SI, REG_DI, REG_NONE, REG_NONE}
	// 8086 clocks, indexed by r/m: no displacement, with displacement.
	plain := [8]int{7, 8, 8, 7, 5, 5, 6, 5}
	displaced := [8]int{11, 12, 12, 11, 9, 9, 9, 9}

	for mod := range 3 {
		for rm := range 8 {
			e := EacEntry{
				Eac:       Eac(mod*8 + rm),
				Base:      base[rm],
				Index:     index[rm],
				DispBytes: mod,
				Cycles:    displaced[rm],
			}
			if mod == 0 {
				e.Cycles = plain[rm]
				if rm == 6 {
					e.Base = REG_NONE
					e.DispBytes = 2
				}
			}
			eacTable[e.Eac] = e
		}
	}
}

// EacOf maps the r/m and mod fields of a mod/reg/rm byte to an addressing
// mode. The register mode (mod == 3) has no addressing mode, and ok is false.
func EacOf(rm, mod uint8) (entry EacEntry, ok bool) {
	if mod > 2 {
		return
	}
	return eacTable[int(mod)*8+int(rm&7)], true
}

// Entry returns the table entry of an addressing mode.
func (e Eac) Entry() EacEntry {
	if e < 0 || int(e) >= EAC_COUNT {
		return EacEntry{Eac: e}
	}
	return eacTable[e]
}

// UsesBP is true for the modes whose default segment is SS.
func (e Eac) UsesBP() bool {
	return e.Entry().Base == REG_BP
}
