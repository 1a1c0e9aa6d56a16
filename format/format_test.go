package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brackenfield/tc162core/decoder"
	"github.com/brackenfield/tc162core/format"
)

func TestFormatUnknownIsWordDirective(t *testing.T) {
	d := decoder.Instruction{Op: decoder.Unknown, Raw: 0xFFFFFFFF}
	assert.Equal(t, ".word\t0xffffffff", format.Format(d))
}

func TestFormatAddRR(t *testing.T) {
	d := decoder.Instruction{
		Op: decoder.Add, Form: decoder.FormRR,
		SrcD1: 1, SrcD2: 2, DstD: 0,
		Flags: decoder.FlagDstD | decoder.FlagSrcD1 | decoder.FlagSrcD2,
	}
	assert.Equal(t, "add\td1, d2, d0", format.Format(d))
}

func TestFormatNopHasNoOperands(t *testing.T) {
	d := decoder.Instruction{Op: decoder.Nop, Form: decoder.FormSRC}
	assert.Equal(t, "nop", format.Format(d))
}

func TestFormatBranchShowsAbsoluteTarget(t *testing.T) {
	d := decoder.Instruction{
		Address: 0, Width: 2, Op: decoder.J, Form: decoder.FormSB,
		Displacement: -2, Flags: decoder.FlagDisplacement,
	}
	assert.Equal(t, "j\t0x00000000", format.Format(d))
}

func TestFormatLoadEffectiveAddress(t *testing.T) {
	d := decoder.Instruction{
		Op: decoder.LdW, Form: decoder.FormBO,
		DstD: 3, SrcA: 4, Offset: 16,
		Flags: decoder.FlagDstD | decoder.FlagSrcA | decoder.FlagOffset,
	}
	assert.Equal(t, "ld.w\t[a4+0x10], d3", format.Format(d))
}

func TestFormatConditionalBranchCompare(t *testing.T) {
	d := decoder.Instruction{
		Address: 0, Width: 4, Op: decoder.Jeq, Form: decoder.FormBRR,
		SrcD1: 1, SrcD2: 2, Displacement: 4,
		Flags: decoder.FlagSrcD1 | decoder.FlagSrcD2 | decoder.FlagDisplacement | decoder.FlagCond,
		Cond:  decoder.CondEQ,
	}
	assert.Equal(t, "jeq\td1, d2, 0x00000008", format.Format(d))
}
