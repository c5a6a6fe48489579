package opcode

// CostKind classifies an operand for the cycle cost table.
type CostKind int

//go:generate go tool stringer -linecomment -type=CostKind
const (
	COST_NONE = CostKind(iota) // none
	COST_REG                   // reg
	COST_MEM                   // mem
	COST_IMM                   // imm
	COST_ACC                   // acc
	COST_SEG                   // sreg
)

// Cost is the approximate clock cost of an instruction form.
type Cost struct {
	Base      int  // Base clocks.
	Transfers int  // Memory transfers, for odd address penalties.
	EA        bool // Add the effective address calculation clocks.
}

type costKey struct {
	m    Mnemonic
	a, b CostKind
}

var costTable = map[costKey]Cost{}

func cost(m Mnemonic, a, b CostKind, base, transfers int, ea bool) {
	costTable[costKey{m, a, b}] = Cost{Base: base, Transfers: transfers, EA: ea}
}

func init() {
	cost(MOV, COST_REG, COST_REG, 2, 0, false)
	cost(MOV, COST_REG, COST_MEM, 8, 1, true)
	cost(MOV, COST_MEM, COST_REG, 9, 1, true)
	cost(MOV, COST_REG, COST_IMM, 4, 0, false)
	cost(MOV, COST_MEM, COST_IMM, 10, 1, true)
	cost(MOV, COST_ACC, COST_MEM, 10, 1, false)
	cost(MOV, COST_MEM, COST_ACC, 10, 1, false)
	cost(MOV, COST_SEG, COST_REG, 2, 0, false)
	cost(MOV, COST_SEG, COST_MEM, 8, 1, true)
	cost(MOV, COST_REG, COST_SEG, 2, 0, false)
	cost(MOV, COST_MEM, COST_SEG, 9, 1, true)

	for _, m := range []Mnemonic{ADD, ADC, SUB, SBB, AND, OR, XOR} {
		cost(m, COST_REG, COST_REG, 3, 0, false)
		cost(m, COST_REG, COST_MEM, 9, 1, true)
		cost(m, COST_MEM, COST_REG, 16, 2, true)
		cost(m, COST_REG, COST_IMM, 4, 0, false)
		cost(m, COST_MEM, COST_IMM, 17, 2, true)
		cost(m, COST_ACC, COST_IMM, 4, 0, false)
	}

	cost(CMP, COST_REG, COST_REG, 3, 0, false)
	cost(CMP, COST_REG, COST_MEM, 9, 1, true)
	cost(CMP, COST_MEM, COST_REG, 9, 1, true)
	cost(CMP, COST_REG, COST_IMM, 4, 0, false)
	cost(CMP, COST_MEM, COST_IMM, 10, 1, true)
	cost(CMP, COST_ACC, COST_IMM, 4, 0, false)

	cost(TEST, COST_REG, COST_REG, 3, 0, false)
	cost(TEST, COST_MEM, COST_REG, 9, 1, true)
	cost(TEST, COST_REG, COST_IMM, 5, 0, false)
	cost(TEST, COST_MEM, COST_IMM, 11, 1, true)
	cost(TEST, COST_ACC, COST_IMM, 4, 0, false)

	cost(XCHG, COST_ACC, COST_REG, 3, 0, false)
	cost(XCHG, COST_REG, COST_REG, 4, 0, false)
	cost(XCHG, COST_REG, COST_MEM, 17, 2, true)
	cost(LEA, COST_REG, COST_MEM, 2, 0, true)
	cost(LDS, COST_REG, COST_MEM, 16, 2, true)
	cost(LES, COST_REG, COST_MEM, 16, 2, true)

	for _, m := range []Mnemonic{INC, DEC} {
		cost(m, COST_REG, COST_NONE, 3, 0, false)
		cost(m, COST_MEM, COST_NONE, 15, 2, true)
	}
	for _, m := range []Mnemonic{NOT, NEG} {
		cost(m, COST_REG, COST_NONE, 3, 0, false)
		cost(m, COST_MEM, COST_NONE, 16, 2, true)
	}
	for m, clocks := range map[Mnemonic][2]int{MUL: {118, 124}, IMUL: {128, 134}, DIV: {144, 150}, IDIV: {165, 171}} {
		cost(m, COST_REG, COST_NONE, clocks[0], 0, false)
		cost(m, COST_MEM, COST_NONE, clocks[1], 1, true)
	}
	for _, m := range []Mnemonic{ROL, ROR, RCL, RCR, SHL, SHR, SAR} {
		cost(m, COST_REG, COST_IMM, 2, 0, false)
		cost(m, COST_MEM, COST_IMM, 15, 2, true)
		cost(m, COST_REG, COST_REG, 8, 0, false)
		cost(m, COST_MEM, COST_REG, 20, 2, true)
	}

	cost(PUSH, COST_REG, COST_NONE, 11, 1, false)
	cost(PUSH, COST_SEG, COST_NONE, 10, 1, false)
	cost(PUSH, COST_MEM, COST_NONE, 16, 2, true)
	cost(POP, COST_REG, COST_NONE, 8, 1, false)
	cost(POP, COST_SEG, COST_NONE, 8, 1, false)
	cost(POP, COST_MEM, COST_NONE, 17, 2, true)
	cost(PUSHF, COST_NONE, COST_NONE, 10, 1, false)
	cost(POPF, COST_NONE, COST_NONE, 8, 1, false)

	cost(JMP, COST_NONE, COST_NONE, 15, 0, false)
	cost(JMP, COST_IMM, COST_NONE, 15, 0, false)
	cost(JMP, COST_REG, COST_NONE, 11, 0, false)
	cost(JMP, COST_MEM, COST_NONE, 18, 1, true)
	cost(CALL, COST_NONE, COST_NONE, 19, 1, false)
	cost(CALL, COST_IMM, COST_NONE, 28, 2, false)
	cost(CALL, COST_REG, COST_NONE, 16, 1, false)
	cost(CALL, COST_MEM, COST_NONE, 21, 2, true)
	cost(RET, COST_NONE, COST_NONE, 8, 1, false)
	cost(RET, COST_IMM, COST_NONE, 12, 1, false)
	cost(RETF, COST_NONE, COST_NONE, 18, 2, false)
	cost(RETF, COST_IMM, COST_NONE, 17, 2, false)
	for _, m := range []Mnemonic{JO, JNO, JB, JNB, JE, JNE, JBE, JA, JS, JNS, JP, JNP, JL, JGE, JLE, JG} {
		cost(m, COST_NONE, COST_NONE, 16, 0, false)
	}
	cost(LOOP, COST_NONE, COST_NONE, 17, 0, false)
	cost(LOOPE, COST_NONE, COST_NONE, 18, 0, false)
	cost(LOOPNE, COST_NONE, COST_NONE, 19, 0, false)
	cost(JCXZ, COST_NONE, COST_NONE, 18, 0, false)

	cost(INT, COST_IMM, COST_NONE, 51, 5, false)
	cost(INTO, COST_NONE, COST_NONE, 53, 5, false)
	cost(IRET, COST_NONE, COST_NONE, 24, 3, false)

	cost(IN, COST_ACC, COST_IMM, 10, 1, false)
	cost(IN, COST_ACC, COST_REG, 8, 1, false)
	cost(OUT, COST_IMM, COST_ACC, 10, 1, false)
	cost(OUT, COST_REG, COST_ACC, 8, 1, false)

	cost(MOVS, COST_NONE, COST_NONE, 18, 2, false)
	cost(CMPS, COST_NONE, COST_NONE, 22, 2, false)
	cost(SCAS, COST_NONE, COST_NONE, 15, 1, false)
	cost(LODS, COST_NONE, COST_NONE, 12, 1, false)
	cost(STOS, COST_NONE, COST_NONE, 11, 1, false)
	cost(XLAT, COST_NONE, COST_NONE, 11, 1, false)

	for m, clocks := range map[Mnemonic]int{
		AAA: 8, AAS: 8, DAA: 4, DAS: 4, AAM: 83, AAD: 60,
		CBW: 2, CWD: 5, LAHF: 4, SAHF: 4, WAIT: 3, NOP: 3, HLT: 2,
		CLC: 2, STC: 2, CMC: 2, CLD: 2, STD: 2, CLI: 2, STI: 2,
		SEG: 2, LOCK: 2, REP: 2, REPNE: 2,
	} {
		cost(m, COST_NONE, COST_NONE, clocks, 0, false)
	}
}

// CostOf looks up the cost of an instruction form. An accumulator operand
// falls back to the general register form, and a missing form falls back
// to the operand-less form of the mnemonic.
func CostOf(m Mnemonic, a, b CostKind) (c Cost, ok bool) {
	tries := []costKey{{m, a, b}}
	if a == COST_ACC {
		tries = append(tries, costKey{m, COST_REG, b})
	}
	if b == COST_ACC {
		tries = append(tries, costKey{m, a, COST_REG})
	}
	if a == COST_ACC && b == COST_ACC {
		tries = append(tries, costKey{m, COST_REG, COST_REG})
	}
	if b == COST_MEM && a != COST_MEM {
		// Register/memory forms are symmetric for reads.
		tries = append(tries, costKey{m, b, a})
	}
	tries = append(tries, costKey{m, a, COST_NONE}, costKey{m, COST_NONE, COST_NONE})

	for _, key := range tries {
		c, ok = costTable[key]
		if ok {
			return
		}
	}
	return
}
