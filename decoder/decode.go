package decoder

import (
	"github.com/brackenfield/tc162core/image"
)

// op1 dispatch values, per SPEC_FULL.md §4.2's opcode table. Where the
// distilled spec names a form but not a concrete op1 byte (the two 16-bit
// ADD forms), this implementation picks an otherwise-unused even byte and
// records the choice here rather than in a scattered comment.
const (
	op1LdGroup      = 0x09
	op1AddRR        = 0x0B
	op1LogicalRR    = 0x0F
	op1AddihA       = 0x11
	op1Addi         = 0x1B
	op1Jdisp24      = 0x1D
	op1MovRLC       = 0x3B
	op1JltJltuBRR   = 0x3F
	op1LeaBO        = 0x49
	op1JeqJneBRR    = 0x5F
	op1MovhRLC      = 0x7B
	op1JgeJgeuBRR   = 0x7F
	op1StGroup      = 0x89
	op1AddRC        = 0x8B
	op1LogicalRC    = 0x8F
	op1MovhARLC     = 0x91
	op1AddihRLC     = 0x9B
	op1MovURLC      = 0xBB
	op1JltJltuBRC   = 0xBF
	op1LeaBOL       = 0xD9
	op1JeqJneBRC    = 0xDF
	op1JgeJgeuBRC   = 0xFF

	op1Nop       = 0x00
	op1MovRRSRR  = 0x02
	op1JltSBR    = 0x1E
	op1JdispSB   = 0x3C
	op1JeqSBR    = 0x3E
	op1AddSRR    = 0x42
	op1JgeSBR    = 0x5E
	op1JneSBR    = 0x7E
	op1MovSRC    = 0x82
	op1JltSBC    = 0x9E
	op1AndSRR    = 0x26
	op1JeqSBC    = 0xBE
	op1AddSRC    = 0xC2
	op1XorSRR    = 0xC6
	op1JgeSBC    = 0xDE
	op1OrSRR     = 0xA6
	op1JneSBC    = 0xFE
)

const (
	op2AddRR  = 0x00
	op2MovRR  = 0x1F
	op2AndRR  = 0x08
	op2OrRR   = 0x0A
	op2XorRR  = 0x0C

	op2LdB  = 0x20
	op2LdBU = 0x21
	op2LdH  = 0x22
	op2LdHU = 0x23
	op2LdW  = 0x24

	op2StB = 0x20
	op2StH = 0x22
	op2StW = 0x24

	op2LeaBO = 0x28
)

// Decode classifies the byte window at pc and returns a decoded
// instruction, or an *Error if no encoding matches or the bytes could not
// be fully read. Decode is a pure function of (view, pc): it never
// mutates view and never advances pc itself.
func Decode(view *image.MemoryView, pc uint32) (Instruction, error) {
	first, ok := view.ReadU8(pc)
	if !ok {
		return Instruction{}, &Error{Address: pc, Reason: "first byte absent"}
	}

	if first&1 == 0 {
		return decode16(view, pc)
	}
	return decode32(view, pc)
}

func decode16(view *image.MemoryView, pc uint32) (Instruction, error) {
	w, ok := view.ReadU16LE(pc)
	if !ok {
		b, _ := view.ReadU8(pc)
		return Instruction{}, &Error{Address: pc, Width: 2, Raw32: uint32(b), Reason: "16-bit window incomplete"}
	}
	raw := uint32(w)
	op1 := raw & 0xFF

	switch op1 {
	case op1Nop:
		return Instruction{Address: pc, Width: 2, Op: Nop, Form: FormSRC, Raw: raw}, nil
	case op1MovRRSRR:
		f := parseSRR(w)
		return Instruction{
			Address: pc, Width: 2, Op: Mov, Form: FormSRR, Raw: raw,
			DstD: int8(f.s1), SrcD1: int8(f.s2),
			Flags: FlagDstD | FlagSrcD1,
		}, nil
	case op1AddSRR:
		f := parseSRR(w)
		return Instruction{
			Address: pc, Width: 2, Op: Add, Form: FormSRR, Raw: raw,
			DstD: int8(f.s1), SrcD1: int8(f.s1), SrcD2: int8(f.s2),
			Flags: FlagDstD | FlagSrcD1 | FlagSrcD2,
		}, nil
	case op1AndSRR, op1OrSRR, op1XorSRR:
		f := parseSRR(w)
		op := And
		if op1 == op1OrSRR {
			op = Or
		} else if op1 == op1XorSRR {
			op = Xor
		}
		return Instruction{
			Address: pc, Width: 2, Op: op, Form: FormSRR, Raw: raw,
			DstD: int8(f.s1), SrcD1: int8(f.s1), SrcD2: int8(f.s2),
			Flags: FlagDstD | FlagSrcD1 | FlagSrcD2,
		}, nil
	case op1MovSRC:
		f := parseSRC(w)
		return Instruction{
			Address: pc, Width: 2, Op: Mov, Form: FormSRC, Raw: raw,
			DstD: int8(f.d), Imm: zeroExtend(f.const4, 4),
			Flags: FlagDstD | FlagImm | FlagZeroExtend,
		}, nil
	case op1AddSRC:
		f := parseSRC(w)
		return Instruction{
			Address: pc, Width: 2, Op: Add, Form: FormSRC, Raw: raw,
			DstD: int8(f.d), SrcD1: int8(f.d), Imm: signExtend(f.const4, 4),
			Flags: FlagDstD | FlagSrcD1 | FlagImm | FlagSignExtend,
		}, nil
	case op1JdispSB:
		f := parseSB(w)
		disp := signExtend(f.disp8, 8) << 1
		return Instruction{
			Address: pc, Width: 2, Op: J, Form: FormSB, Raw: raw,
			Displacement: disp, Flags: FlagDisplacement,
		}, nil
	case op1JeqSBR, op1JneSBR, op1JltSBR, op1JgeSBR:
		f := parseSBR(w)
		return Instruction{
			Address: pc, Width: 2, Op: sbOpcode(op1), Form: FormSBR, Raw: raw,
			SrcD1: int8(f.reg), Displacement: signExtend(f.disp4, 4) << 1,
			Flags: FlagSrcD1 | FlagDisplacement | FlagCond,
			Cond:  sbCond(op1),
		}, nil
	case op1JeqSBC, op1JneSBC, op1JltSBC, op1JgeSBC:
		f := parseSBC(w)
		return Instruction{
			Address: pc, Width: 2, Op: sbOpcode(op1), Form: FormSBC, Raw: raw,
			Imm: zeroExtend(f.const4, 4), Displacement: signExtend(f.disp4, 4) << 1,
			Flags: FlagImm | FlagZeroExtend | FlagDisplacement | FlagCond,
			Cond:  sbCond(op1),
		}, nil
	}

	return Instruction{}, &Error{Address: pc, Width: 2, Raw32: raw, Reason: "unrecognized 16-bit opcode"}
}

func sbOpcode(op1 uint32) Opcode {
	switch op1 {
	case op1JeqSBR, op1JeqSBC:
		return Jeq
	case op1JneSBR, op1JneSBC:
		return Jne
	case op1JltSBR, op1JltSBC:
		return Jlt
	case op1JgeSBR, op1JgeSBC:
		return Jge
	}
	return Unknown
}

func sbCond(op1 uint32) Cond {
	switch op1 {
	case op1JeqSBR, op1JeqSBC:
		return CondEQ
	case op1JneSBR, op1JneSBC:
		return CondNE
	case op1JltSBR, op1JltSBC:
		return CondLT
	case op1JgeSBR, op1JgeSBC:
		return CondGE
	}
	return CondNone
}

func decode32(view *image.MemoryView, pc uint32) (Instruction, error) {
	w, ok := view.ReadU32LE(pc)
	if !ok {
		b, _ := view.ReadU8(pc)
		return Instruction{}, &Error{Address: pc, Width: 4, Raw32: uint32(b), Reason: "32-bit window incomplete"}
	}
	op1 := w & 0xFF

	switch op1 {
	case op1AddRR:
		f := parseRR(w)
		switch f.op2 {
		case op2MovRR:
			return Instruction{
				Address: pc, Width: 4, Op: Mov, Form: FormRR, Raw: w,
				DstD: int8(f.d), SrcD1: int8(f.s1),
				Flags: FlagDstD | FlagSrcD1,
			}, nil
		default:
			return Instruction{
				Address: pc, Width: 4, Op: Add, Form: FormRR, Raw: w,
				DstD: int8(f.d), SrcD1: int8(f.s1), SrcD2: int8(f.s2),
				Flags: FlagDstD | FlagSrcD1 | FlagSrcD2,
			}, nil
		}
	case op1LogicalRR:
		f := parseRR(w)
		op, ok := logicalOpFromOp2(f.op2)
		if !ok {
			break
		}
		return Instruction{
			Address: pc, Width: 4, Op: op, Form: FormRR, Raw: w,
			DstD: int8(f.d), SrcD1: int8(f.s1), SrcD2: int8(f.s2),
			Flags: FlagDstD | FlagSrcD1 | FlagSrcD2,
		}, nil
	case op1Addi:
		f := parseRLC(w)
		return Instruction{
			Address: pc, Width: 4, Op: Addi, Form: FormRLC, Raw: w,
			DstD: int8(f.d), SrcD1: int8(f.d), Imm: signExtend(f.const16, 16),
			Flags: FlagDstD | FlagSrcD1 | FlagImm | FlagSignExtend,
		}, nil
	case op1AddihA:
		f := parseRLC(w)
		return Instruction{
			Address: pc, Width: 4, Op: AddihA, Form: FormRLC, Raw: w,
			DstA: int8(f.d), SrcA: int8(f.d), Imm: int32(f.const16) << 16,
			Flags: FlagDstA | FlagSrcA | FlagImm,
		}, nil
	case op1MovRLC:
		f := parseRLC(w)
		return Instruction{
			Address: pc, Width: 4, Op: Mov, Form: FormRLC, Raw: w,
			DstD: int8(f.d), Imm: signExtend(f.const16, 16),
			Flags: FlagDstD | FlagImm | FlagSignExtend,
		}, nil
	case op1MovURLC:
		f := parseRLC(w)
		return Instruction{
			Address: pc, Width: 4, Op: MovU, Form: FormRLC, Raw: w,
			DstD: int8(f.d), Imm: zeroExtend(f.const16, 16),
			Flags: FlagDstD | FlagImm | FlagZeroExtend,
		}, nil
	case op1MovhRLC:
		f := parseRLC(w)
		return Instruction{
			Address: pc, Width: 4, Op: Movh, Form: FormRLC, Raw: w,
			DstD: int8(f.d), Imm: int32(f.const16) << 16,
			Flags: FlagDstD | FlagImm,
		}, nil
	case op1MovhARLC:
		f := parseRLC(w)
		return Instruction{
			Address: pc, Width: 4, Op: MovhA, Form: FormRLC, Raw: w,
			DstA: int8(f.d), Imm: int32(f.const16) << 16,
			Flags: FlagDstA | FlagImm,
		}, nil
	case op1AddihRLC:
		f := parseRLC(w)
		return Instruction{
			Address: pc, Width: 4, Op: Addih, Form: FormRLC, Raw: w,
			DstD: int8(f.d), SrcD1: int8(f.d), Imm: int32(f.const16) << 16,
			Flags: FlagDstD | FlagSrcD1 | FlagImm,
		}, nil
	case op1LdGroup:
		f := parseBO(w)
		op, ok := loadOpFromOp2(f.op2)
		if !ok {
			break
		}
		return Instruction{
			Address: pc, Width: 4, Op: op, Form: FormBO, Raw: w,
			DstD: int8(f.d), SrcA: int8(f.base), Offset: signExtend(f.offset10, 10),
			Flags: FlagDstD | FlagSrcA | FlagOffset,
		}, nil
	case op1StGroup:
		f := parseBO(w)
		op, ok := storeOpFromOp2(f.op2)
		if !ok {
			break
		}
		return Instruction{
			Address: pc, Width: 4, Op: op, Form: FormBO, Raw: w,
			SrcD1: int8(f.d), SrcA: int8(f.base), Offset: signExtend(f.offset10, 10),
			Flags: FlagSrcD1 | FlagSrcA | FlagOffset,
		}, nil
	case op1LeaBO:
		f := parseBO(w)
		if f.op2 != op2LeaBO {
			break
		}
		return Instruction{
			Address: pc, Width: 4, Op: Lea, Form: FormBO, Raw: w,
			DstA: int8(f.d), SrcA: int8(f.base), Offset: signExtend(f.offset10, 10),
			Flags: FlagDstA | FlagSrcA | FlagOffset,
		}, nil
	case op1LeaBOL:
		f := parseBOL(w)
		return Instruction{
			Address: pc, Width: 4, Op: Lea, Form: FormBOL, Raw: w,
			DstA: int8(f.d), SrcA: int8(f.base), Offset: signExtend(f.offset16, 16),
			Flags: FlagDstA | FlagSrcA | FlagOffset,
		}, nil
	case op1Jdisp24:
		f := parseB(w)
		return Instruction{
			Address: pc, Width: 4, Op: J, Form: FormB, Raw: w,
			Displacement: signExtend(f.disp24, 24) << 1, Flags: FlagDisplacement,
		}, nil
	case op1JeqJneBRR, op1JgeJgeuBRR, op1JltJltuBRR:
		f := parseBRR(w)
		op, cond := brrOpcode(op1, f.op2)
		return Instruction{
			Address: pc, Width: 4, Op: op, Form: FormBRR, Raw: w,
			SrcD1: int8(f.s1), SrcD2: int8(f.regOrConst4),
			Displacement: signExtend(f.disp15, 15) << 1,
			Cond:         cond,
			Flags:        FlagSrcD1 | FlagSrcD2 | FlagDisplacement | FlagCond,
		}, nil
	case op1JeqJneBRC, op1JgeJgeuBRC, op1JltJltuBRC:
		f := parseBRC(w)
		op, cond := brcOpcode(op1, f.op2)
		return Instruction{
			Address: pc, Width: 4, Op: op, Form: FormBRC, Raw: w,
			SrcD1: int8(f.s1), Imm: zeroExtend(f.regOrConst4, 4),
			Displacement: signExtend(f.disp15, 15) << 1,
			Cond:         cond,
			Flags:        FlagSrcD1 | FlagImm | FlagZeroExtend | FlagDisplacement | FlagCond,
		}, nil
	case op1AddRC:
		f := parseRC(w)
		return Instruction{
			Address: pc, Width: 4, Op: Add, Form: FormRC, Raw: w,
			DstD: int8(f.d), SrcD1: int8(f.d), Imm: signExtend(f.const9, 9),
			Flags: FlagDstD | FlagSrcD1 | FlagImm | FlagSignExtend,
		}, nil
	case op1LogicalRC:
		f := parseRC(w)
		op, ok := logicalOpFromOp2(f.op2)
		if !ok {
			break
		}
		return Instruction{
			Address: pc, Width: 4, Op: op, Form: FormRC, Raw: w,
			DstD: int8(f.d), SrcD1: int8(f.d), Imm: zeroExtend(f.const9, 9),
			Flags: FlagDstD | FlagSrcD1 | FlagImm | FlagZeroExtend,
		}, nil
	}

	return Instruction{}, &Error{Address: pc, Width: 4, Raw32: w, Reason: "unrecognized 32-bit opcode"}
}

func logicalOpFromOp2(op2 uint32) (Opcode, bool) {
	switch op2 {
	case op2AndRR:
		return And, true
	case op2OrRR:
		return Or, true
	case op2XorRR:
		return Xor, true
	}
	return Unknown, false
}

func loadOpFromOp2(op2 uint32) (Opcode, bool) {
	switch op2 {
	case op2LdB:
		return LdB, true
	case op2LdBU:
		return LdBU, true
	case op2LdH:
		return LdH, true
	case op2LdHU:
		return LdHU, true
	case op2LdW:
		return LdW, true
	}
	return Unknown, false
}

func storeOpFromOp2(op2 uint32) (Opcode, bool) {
	switch op2 {
	case op2StB:
		return StB, true
	case op2StH:
		return StH, true
	case op2StW:
		return StW, true
	}
	return Unknown, false
}

func brrOpcode(op1, op2 uint32) (Opcode, Cond) {
	switch op1 {
	case op1JeqJneBRR:
		if op2 == 0 {
			return Jeq, CondEQ
		}
		return Jne, CondNE
	case op1JgeJgeuBRR:
		if op2 == 0 {
			return Jge, CondGE
		}
		return JgeU, CondGEU
	case op1JltJltuBRR:
		if op2 == 0 {
			return Jlt, CondLT
		}
		return JltU, CondLTU
	}
	return Unknown, CondNone
}

func brcOpcode(op1, op2 uint32) (Opcode, Cond) {
	switch op1 {
	case op1JeqJneBRC:
		if op2 == 0 {
			return Jeq, CondEQ
		}
		return Jne, CondNE
	case op1JgeJgeuBRC:
		if op2 == 0 {
			return Jge, CondGE
		}
		return JgeU, CondGEU
	case op1JltJltuBRC:
		if op2 == 0 {
			return Jlt, CondLT
		}
		return JltU, CondLTU
	}
	return Unknown, CondNone
}
