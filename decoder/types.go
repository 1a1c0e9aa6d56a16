// Package decoder turns a byte window from an image.MemoryView into a
// decoded TC1.6.2 instruction record. It never advances PC and never
// panics: a byte pattern it cannot classify comes back as an *Error value.
package decoder

import "fmt"

// Opcode is the closed set of instruction tags the core understands.
type Opcode int

const (
	Unknown Opcode = iota
	Nop
	Add
	Addi
	Addih
	And
	Or
	Xor
	Mov
	MovU
	Movh
	MovhA
	AddihA
	Lea
	LdB
	LdBU
	LdH
	LdHU
	LdW
	StB
	StH
	StW
	J
	Jeq
	Jne
	Jlt
	JltU
	Jge
	JgeU
)

func (o Opcode) String() string {
	switch o {
	case Nop:
		return "nop"
	case Add:
		return "add"
	case Addi:
		return "addi"
	case Addih:
		return "addih"
	case And:
		return "and"
	case Or:
		return "or"
	case Xor:
		return "xor"
	case Mov:
		return "mov"
	case MovU:
		return "mov.u"
	case Movh:
		return "movh"
	case MovhA:
		return "movh.a"
	case AddihA:
		return "addih.a"
	case Lea:
		return "lea"
	case LdB:
		return "ld.b"
	case LdBU:
		return "ld.bu"
	case LdH:
		return "ld.h"
	case LdHU:
		return "ld.hu"
	case LdW:
		return "ld.w"
	case StB:
		return "st.b"
	case StH:
		return "st.h"
	case StW:
		return "st.w"
	case J:
		return "j"
	case Jeq:
		return "jeq"
	case Jne:
		return "jne"
	case Jlt:
		return "jlt"
	case JltU:
		return "jlt.u"
	case Jge:
		return "jge"
	case JgeU:
		return "jge.u"
	default:
		return "unknown"
	}
}

// Form is the encoding shape an instruction was parsed from.
type Form int

const (
	FormNone Form = iota
	FormSRR
	FormSRC
	FormSBR
	FormSBC
	FormSB
	FormRR
	FormRC
	FormRLC
	FormBO
	FormBOL
	FormBRR
	FormBRC
	FormB
)

// Cond is the comparison predicate carried by a conditional branch.
type Cond int

const (
	CondNone Cond = iota
	CondEQ
	CondNE
	CondLT
	CondLTU
	CondGE
	CondGEU
)

// Flags marks which operand slots of an Instruction are meaningful.
type Flags uint16

const (
	FlagDstD Flags = 1 << iota
	FlagDstA
	FlagSrcD1
	FlagSrcD2
	FlagSrcA
	FlagImm
	FlagOffset
	FlagDisplacement
	FlagSignExtend
	FlagZeroExtend
	FlagCond
)

func (f Flags) Has(want Flags) bool { return f&want == want }

// Instruction is the decoder's output: an immutable, pure function of the
// byte window it was read from.
type Instruction struct {
	Address uint32
	Width   uint8
	Op      Opcode
	Form    Form
	Flags   Flags

	DstD  int8 // data register index 0..15, valid iff FlagDstD
	DstA  int8 // address register index 0..15, valid iff FlagDstA
	SrcD1 int8 // valid iff FlagSrcD1
	SrcD2 int8 // valid iff FlagSrcD2
	SrcA  int8 // base/source address register, valid iff FlagSrcA

	Imm          int32 // generic immediate, valid iff FlagImm
	Offset       int32 // BO/BOL byte offset, valid iff FlagOffset
	Displacement int32 // final byte offset added to (Address+Width) to get a branch target
	Cond         Cond  // valid iff FlagCond

	Raw uint32 // the raw encoded bits, zero-extended to 32 bits for 2-byte windows
}

// IsBranch reports whether this instruction carries a normalized
// displacement to a target address.
func (d Instruction) IsBranch() bool {
	return d.Flags.Has(FlagDisplacement)
}

// IsConditional reports whether this instruction is a conditional branch
// (as opposed to the unconditional J).
func (d Instruction) IsConditional() bool {
	return d.Flags.Has(FlagCond)
}

// Target returns the absolute branch target for an instruction carrying a
// displacement: the address of the instruction following this one, plus
// the normalized byte displacement.
func (d Instruction) Target() uint32 {
	return d.Address + uint32(d.Width) + uint32(d.Displacement)
}

// Error is returned, never panicked, when a byte window cannot be
// classified as any known encoding, or could not be fully read.
type Error struct {
	Address uint32
	Width   uint8 // 0 if width selection itself failed (first byte absent)
	Raw32   uint32
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("decode error at %#08x: %s", e.Address, e.Reason)
}
