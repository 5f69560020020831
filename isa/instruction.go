package isa

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is a closed enumeration of the supported MIPS-I subset mnemonics.
type Kind int

const (
	ADD Kind = iota
	SUB
	AND
	OR
	XOR
	SLL
	SRL
	SRA
	JR
	ADDI
	ANDI
	ORI
	XORI
	LW
	SW
	BEQ
	BNE
	LUI
	J
	JAL
)

type form int

const (
	formR form = iota
	formI
	formJ
)

type kindInfo struct {
	kind     Kind
	mnemonic string
	opcode   int32
	funct    *int32 // nil for non-R-type
	form     form
}

func fi(v int32) *int32 { return &v }

// kindTable is declared in the exact order the reference implementation's
// INST enum declares its members. Decode relies on this order: the *last*
// matching entry wins, which is load-bearing for opcode 0 (see DecodeWord).
var kindTable = []kindInfo{
	{ADD, "add", 0, fi(32), formR},
	{SUB, "sub", 0, fi(34), formR},
	{AND, "and", 0, fi(36), formR},
	{OR, "or", 0, fi(37), formR},
	{XOR, "xor", 0, fi(38), formR},
	{SLL, "sll", 0, fi(0), formR},
	{SRL, "srl", 0, fi(2), formR},
	{SRA, "sra", 0, fi(3), formR},
	{JR, "jr", 0, fi(8), formR},
	{ADDI, "addi", 8, nil, formI},
	{ANDI, "andi", 12, nil, formI},
	{ORI, "ori", 13, nil, formI},
	{XORI, "xori", 14, nil, formI},
	{LW, "lw", 35, nil, formI},
	{SW, "sw", 43, nil, formI},
	{BEQ, "beq", 4, nil, formI},
	{BNE, "bne", 5, nil, formI},
	{LUI, "lui", 15, nil, formI},
	{J, "j", 2, nil, formJ},
	{JAL, "jal", 3, nil, formJ},
}

var kindByMnemonic map[string]*kindInfo
var infoByKind map[Kind]*kindInfo

func init() {
	kindByMnemonic = make(map[string]*kindInfo, len(kindTable))
	infoByKind = make(map[Kind]*kindInfo, len(kindTable))
	for i := range kindTable {
		k := &kindTable[i]
		kindByMnemonic[k.mnemonic] = k
		infoByKind[k.kind] = k
	}
}

func (k Kind) String() string {
	if info, ok := infoByKind[k]; ok {
		return info.mnemonic
	}
	return "?"
}

// KindByMnemonic resolves a case-insensitive mnemonic to its Kind.
func KindByMnemonic(mnemonic string) (Kind, bool) {
	info, ok := kindByMnemonic[strings.ToLower(mnemonic)]
	if !ok {
		return 0, false
	}
	return info.kind, true
}

// Instruction is the central tagged entity: a variant (Kind) plus operand
// fields and source-location metadata. Only the slots relevant to the
// instruction's form carry meaning; the rest are zero.
type Instruction struct {
	Kind   Kind
	LineNo int
	StepNo int

	Rs        int32
	Rt        int32
	Rd        int32
	Sa        int32
	Immediate int32
	Address   int32

	// Jumpto, when non-nil, shadows Immediate (BEQ/BNE) or Address
	// (J/JAL) until the instruction is encoded against a label table.
	Jumpto *string
}

// NewInstruction constructs an empty instruction of the given kind at the
// given source/step location.
func NewInstruction(kind Kind, lineNo, stepNo int) *Instruction {
	return &Instruction{Kind: kind, LineNo: lineNo, StepNo: stepNo}
}

var integerFormPattern = regexp.MustCompile(`^-?\d+$`)

// isIntegerForm reports whether str consists solely of an optional leading
// minus and decimal digits -- the rule used to decide whether a BEQ/BNE or
// J/JAL operand is a literal address or a symbolic label.
func isIntegerForm(str string) bool {
	return integerFormPattern.MatchString(str)
}

// parseIntLiteral accepts decimal (with optional leading '-') or a
// 0x/0-prefixed hex/octal general integer literal.
func parseIntLiteral(s string) (int64, error) {
	return strconv.ParseInt(s, 0, 64)
}

func parseImmediate(s string, bits uint) (int32, error) {
	v, err := parseIntLiteral(s)
	if err != nil {
		return 0, err
	}
	return FitSigned(v, bits)
}

// DecodeWord decodes a raw 32-bit instruction word into an Instruction.
// The kind lookup deliberately keeps scanning kindTable after finding an
// opcode match: a funct-exact match always wins if one exists, but when
// no R-type funct matches (opcode 0, unrecognized funct), decoding still
// succeeds using the *last* kindTable entry that shares that opcode --
// this reproduces the reference implementation's documented fallback
// (spec §9, note 3) rather than failing.
func DecodeWord(word uint32, lineNo, stepNo int) (*Instruction, error) {
	opcode := int32((word >> 26) & 0x3f)
	rs := int32((word >> 21) & 0x1f)
	rt := int32((word >> 16) & 0x1f)
	rd := int32((word >> 11) & 0x1f)
	sa := int32((word >> 6) & 0x1f)
	funct := int32(word & 0x3f)
	imm := SignExtend(int32(word&0xffff), 16)
	addr := SignExtend(int32(word&0x3ffffff), 26)

	var exact, opcodeFallback *kindInfo
	for i := range kindTable {
		k := &kindTable[i]
		if k.opcode != opcode {
			continue
		}
		if k.funct == nil {
			exact = k
			opcodeFallback = k
			continue
		}
		opcodeFallback = k
		if *k.funct == funct {
			exact = k
		}
	}
	match := exact
	if match == nil {
		match = opcodeFallback
	}
	if match == nil {
		return nil, NewInvalidInstructionError(BitsToHexWord(word), lineNo)
	}

	inst := NewInstruction(match.kind, lineNo, stepNo)
	switch match.form {
	case formR:
		inst.Rs, inst.Rt, inst.Rd, inst.Sa = rs, rt, rd, sa
	case formI:
		inst.Rs, inst.Rt, inst.Immediate = rs, rt, imm
	case formJ:
		inst.Address = addr
	}
	return inst, nil
}

// DecodeInstruction decodes an 8 hex character instruction word.
func DecodeInstruction(hex string, lineNo, stepNo int) (*Instruction, error) {
	word, err := HexWordToBits(hex)
	if err != nil {
		return nil, NewInvalidInstructionError(hex, lineNo)
	}
	return DecodeWord(word, lineNo, stepNo)
}

// ParseArgs parses the operand tokens of an assembly statement and fills
// in the instruction's slots. Operand count is exact per form; any
// mismatch or unresolved register/immediate fails InvalidArgument.
func (i *Instruction) ParseArgs(args []string) error {
	info := infoByKind[i.Kind]
	fail := func(detail string) error {
		return NewInvalidArgumentError(detail, i.LineNo)
	}

	reg := func(tok string) (int32, error) {
		idx, ok := ResolveRegister(tok)
		if !ok {
			return 0, fail(fmt.Sprintf("not a register: %q", tok))
		}
		return int32(idx), nil
	}

	switch i.Kind {
	case ADD, SUB, AND, OR, XOR:
		if len(args) != 3 {
			return fail("expected 3 arguments")
		}
		rd, err := reg(args[0])
		if err != nil {
			return err
		}
		rs, err := reg(args[1])
		if err != nil {
			return err
		}
		rt, err := reg(args[2])
		if err != nil {
			return err
		}
		i.Rd, i.Rs, i.Rt = rd, rs, rt

	case SLL, SRL, SRA:
		if len(args) != 3 {
			return fail("expected 3 arguments")
		}
		rd, err := reg(args[0])
		if err != nil {
			return err
		}
		rt, err := reg(args[1])
		if err != nil {
			return err
		}
		sa, err := parseImmediate(args[2], 5)
		if err != nil {
			return fail(fmt.Sprintf("bad shift amount %q", args[2]))
		}
		i.Rd, i.Rt, i.Sa = rd, rt, sa

	case JR:
		if len(args) != 1 {
			return fail("expected 1 argument")
		}
		rs, err := reg(args[0])
		if err != nil {
			return err
		}
		i.Rs = rs

	case ADDI, ANDI, ORI, XORI:
		if len(args) != 3 {
			return fail("expected 3 arguments")
		}
		rt, err := reg(args[0])
		if err != nil {
			return err
		}
		rs, err := reg(args[1])
		if err != nil {
			return err
		}
		imm, err := parseImmediate(args[2], 16)
		if err != nil {
			return fail(fmt.Sprintf("bad immediate %q", args[2]))
		}
		i.Rt, i.Rs, i.Immediate = rt, rs, imm

	case LW, SW:
		if len(args) != 2 {
			return fail("expected 2 arguments")
		}
		rt, err := reg(args[0])
		if err != nil {
			return err
		}
		rs, imm, err := parseOffsetOperand(args[1])
		if err != nil {
			return fail(err.Error())
		}
		i.Rt, i.Rs, i.Immediate = rt, rs, imm

	case BEQ, BNE:
		if len(args) != 3 {
			return fail("expected 3 arguments")
		}
		rs, err := reg(args[0])
		if err != nil {
			return err
		}
		rt, err := reg(args[1])
		if err != nil {
			return err
		}
		i.Rs, i.Rt = rs, rt
		if isIntegerForm(args[2]) {
			imm, err := parseImmediate(args[2], 16)
			if err != nil {
				return fail(fmt.Sprintf("bad immediate %q", args[2]))
			}
			i.Immediate = imm
		} else {
			target := args[2]
			i.Jumpto = &target
		}

	case LUI:
		if len(args) != 2 {
			return fail("expected 2 arguments")
		}
		rt, err := reg(args[0])
		if err != nil {
			return err
		}
		imm, err := parseImmediate(args[1], 16)
		if err != nil {
			return fail(fmt.Sprintf("bad immediate %q", args[1]))
		}
		i.Rt, i.Immediate = rt, imm

	case J, JAL:
		if len(args) != 1 {
			return fail("expected 1 argument")
		}
		if isIntegerForm(args[0]) {
			addr, err := parseImmediate(args[0], 26)
			if err != nil {
				return fail(fmt.Sprintf("bad address %q", args[0]))
			}
			i.Address = addr
		} else {
			target := args[0]
			i.Jumpto = &target
		}

	default:
		return fail(fmt.Sprintf("unhandled kind %v", info.kind))
	}
	return nil
}

var lwSwOperandPattern = regexp.MustCompile(`^(.+)\((\$[a-zA-Z0-9]+)\)$`)

// parseOffsetOperand parses the "<imm>($<reg>)" syntax used by LW/SW. The
// register slot accepts the same "$<n>"/"$<name>" forms as any other
// register operand.
func parseOffsetOperand(tok string) (rs int32, imm int32, err error) {
	m := lwSwOperandPattern.FindStringSubmatch(tok)
	if m == nil {
		return 0, 0, fmt.Errorf("expected <imm>($<reg>), got %q", tok)
	}
	idx, ok := ResolveRegister(m[2])
	if !ok {
		return 0, 0, fmt.Errorf("not a register in %q", tok)
	}
	v, err := parseImmediate(m[1], 16)
	if err != nil {
		return 0, 0, fmt.Errorf("bad offset in %q", tok)
	}
	return int32(idx), v, nil
}

// Render renders the instruction as a tab-indented disassembly line (no
// trailing newline): lowercase mnemonic, a tab, then a comma-separated
// operand list in the form appropriate to the instruction's kind.
func (i *Instruction) Render() string {
	mnemonic := i.Kind.String()
	var operands string
	switch i.Kind {
	case ADD, SUB, AND, OR, XOR:
		operands = fmt.Sprintf("$%d, $%d, $%d", i.Rd, i.Rs, i.Rt)
	case SLL, SRL, SRA:
		operands = fmt.Sprintf("$%d, $%d, %d", i.Rd, i.Rt, i.Sa)
	case JR:
		operands = fmt.Sprintf("$%d", i.Rs)
	case ADDI:
		operands = fmt.Sprintf("$%d, $%d, %d", i.Rt, i.Rs, SignExtend(i.Immediate, 16))
	case ANDI, ORI, XORI:
		operands = fmt.Sprintf("$%d, $%d, %d", i.Rt, i.Rs, ZeroExtend(i.Immediate, 16))
	case LW, SW:
		operands = fmt.Sprintf("$%d, %d($%d)", i.Rt, SignExtend(i.Immediate, 16), i.Rs)
	case BEQ, BNE:
		target := strconv.Itoa(int(i.Immediate))
		if i.Jumpto != nil {
			target = *i.Jumpto
		}
		operands = fmt.Sprintf("$%d, $%d, %s", i.Rs, i.Rt, target)
	case LUI:
		operands = fmt.Sprintf("$%d, %d", i.Rt, i.Immediate)
	case J, JAL:
		target := strconv.Itoa(int(i.Address))
		if i.Jumpto != nil {
			target = *i.Jumpto
		}
		operands = target
	}
	return "\t" + mnemonic + "\t" + operands
}

// EncodeWord packs the instruction into its 32-bit binary representation,
// resolving any symbolic Jumpto against labels.
func (i *Instruction) EncodeWord(labels map[string]int) (uint32, error) {
	info := infoByKind[i.Kind]

	switch info.form {
	case formR:
		return packR(info.opcode, i.Rs, i.Rt, i.Rd, i.Sa, *info.funct), nil

	case formI:
		imm := i.Immediate
		if i.Kind == BEQ || i.Kind == BNE {
			if i.Jumpto != nil {
				target, ok := labels[*i.Jumpto]
				if !ok {
					return 0, NewLabelNotFoundError(*i.Jumpto, i.LineNo)
				}
				signed, err := FitSigned(int64(target-1-i.StepNo), 16)
				if err != nil {
					return 0, err
				}
				imm = signed
			}
		}
		return packI(info.opcode, i.Rs, i.Rt, imm), nil

	case formJ:
		addr := i.Address
		if i.Jumpto != nil {
			target, ok := labels[*i.Jumpto]
			if !ok {
				return 0, NewLabelNotFoundError(*i.Jumpto, i.LineNo)
			}
			signed, err := FitSigned(int64(target), 26)
			if err != nil {
				return 0, err
			}
			addr = signed
		}
		return packJ(info.opcode, addr), nil
	}
	return 0, fmt.Errorf("unreachable: unknown form for kind %v", i.Kind)
}

// EncodeHex encodes the instruction as an 8-char lowercase hex word.
func (i *Instruction) EncodeHex(labels map[string]int) (string, error) {
	word, err := i.EncodeWord(labels)
	if err != nil {
		return "", err
	}
	return BitsToHexWord(word), nil
}

func packR(opcode, rs, rt, rd, sa, funct int32) uint32 {
	return uint32(opcode&0x3f)<<26 |
		uint32(rs&0x1f)<<21 |
		uint32(rt&0x1f)<<16 |
		uint32(rd&0x1f)<<11 |
		uint32(sa&0x1f)<<6 |
		uint32(funct&0x3f)
}

func packI(opcode, rs, rt, imm int32) uint32 {
	return uint32(opcode&0x3f)<<26 |
		uint32(rs&0x1f)<<21 |
		uint32(rt&0x1f)<<16 |
		uint32(imm)&0xffff
}

func packJ(opcode, addr int32) uint32 {
	return uint32(opcode&0x3f)<<26 | uint32(addr)&0x3ffffff
}

// Run executes the instruction against the given register file and
// memory, starting from pc, and returns the next program counter. All
// arithmetic is 32-bit modular (the natural behavior of int32).
//
// SRL/SRA are intentionally swapped relative to canonical MIPS: SRL is an
// arithmetic (sign-preserving) right shift, SRA a logical (zero-fill)
// right shift. This mirrors the reference implementation and must not be
// "corrected" (spec §9, note 1).
func (i *Instruction) Run(pc int32, rf *RegisterFile, mem *Memory) int32 {
	newPc := pc
	advance := true

	switch i.Kind {
	case ADD:
		rf.Set(int(i.Rd), rf.Get(int(i.Rs))+rf.Get(int(i.Rt)))
	case SUB:
		rf.Set(int(i.Rd), rf.Get(int(i.Rs))-rf.Get(int(i.Rt)))
	case AND:
		rf.Set(int(i.Rd), rf.Get(int(i.Rs))&rf.Get(int(i.Rt)))
	case OR:
		rf.Set(int(i.Rd), rf.Get(int(i.Rs))|rf.Get(int(i.Rt)))
	case XOR:
		rf.Set(int(i.Rd), rf.Get(int(i.Rs))^rf.Get(int(i.Rt)))
	case SLL:
		rf.Set(int(i.Rd), rf.Get(int(i.Rt))<<uint(i.Sa))
	case SRL:
		rf.Set(int(i.Rd), rf.Get(int(i.Rt))>>uint(i.Sa))
	case SRA:
		rf.Set(int(i.Rd), int32(uint32(rf.Get(int(i.Rt)))>>uint(i.Sa)))
	case JR:
		newPc = rf.Get(int(i.Rs))
		advance = false
	case ADDI:
		rf.Set(int(i.Rt), rf.Get(int(i.Rs))+i.Immediate)
	case ANDI:
		rf.Set(int(i.Rt), rf.Get(int(i.Rs))&i.Immediate)
	case ORI:
		rf.Set(int(i.Rt), rf.Get(int(i.Rs))|i.Immediate)
	case XORI:
		rf.Set(int(i.Rt), rf.Get(int(i.Rs))^i.Immediate)
	case LW:
		rf.Set(int(i.Rt), mem.Read(rf.Get(int(i.Rs))+i.Immediate))
	case SW:
		mem.Write(rf.Get(int(i.Rs))+i.Immediate, rf.Get(int(i.Rt)))
	case BEQ:
		if rf.Get(int(i.Rs)) == rf.Get(int(i.Rt)) {
			newPc += i.Immediate
		}
	case BNE:
		if rf.Get(int(i.Rs)) != rf.Get(int(i.Rt)) {
			newPc += i.Immediate
		}
	case LUI:
		rf.Set(int(i.Rt), i.Immediate<<16)
	case JAL:
		rf.Set(31, newPc+1)
		fallthrough
	case J:
		// (address<<2)/4 recovers address exactly for this 26-bit range;
		// kept as an addition (not OR) since address may be negative.
		newPc = int32(uint32(newPc+1)&0xF0000000) + i.Address
		advance = false
	}

	if advance {
		newPc++
	}
	return newPc
}
