// Package format renders a decoder.Instruction to its canonical mnemonic
// text. Format is a pure function of the record: it never touches memory
// and never needs the rest of the instruction stream.
package format

import (
	"fmt"
	"strings"

	"github.com/brackenfield/tc162core/decoder"
)

// Format renders d as "<mnemonic>\t<operand>, <operand>, ...".
func Format(d decoder.Instruction) string {
	if d.Op == decoder.Unknown {
		return fmt.Sprintf(".word\t0x%08x", d.Raw)
	}

	var ops []string
	switch d.Form {
	case decoder.FormSRR, decoder.FormRR:
		ops = rrOperands(d)
	case decoder.FormSRC, decoder.FormRC, decoder.FormRLC:
		ops = rcOperands(d)
	case decoder.FormBO, decoder.FormBOL:
		ops = boOperands(d)
	case decoder.FormB, decoder.FormSB:
		ops = []string{hex32(d.Target())}
	case decoder.FormBRR, decoder.FormBRC:
		ops = branchCompareOperands(d)
	case decoder.FormSBR, decoder.FormSBC:
		ops = d15CompareOperands(d)
	}

	mn := d.Op.String()
	if len(ops) == 0 {
		return mn
	}
	return mn + "\t" + strings.Join(ops, ", ")
}

func dReg(i int8) string { return fmt.Sprintf("d%d", i) }
func aReg(i int8) string { return fmt.Sprintf("a%d", i) }
func hex32(v uint32) string {
	return fmt.Sprintf("0x%08x", v)
}
func immText(v int32) string {
	if v < 0 {
		return fmt.Sprintf("-0x%x", -int64(v))
	}
	return fmt.Sprintf("0x%x", v)
}

func rrOperands(d decoder.Instruction) []string {
	var ops []string
	if d.Flags.Has(decoder.FlagSrcD1) {
		ops = append(ops, dReg(d.SrcD1))
	}
	if d.Flags.Has(decoder.FlagSrcD2) {
		ops = append(ops, dReg(d.SrcD2))
	}
	switch {
	case d.Flags.Has(decoder.FlagDstD):
		ops = append(ops, dReg(d.DstD))
	case d.Flags.Has(decoder.FlagDstA):
		ops = append(ops, aReg(d.DstA))
	}
	return ops
}

func rcOperands(d decoder.Instruction) []string {
	var ops []string
	if d.Flags.Has(decoder.FlagSrcD1) {
		ops = append(ops, dReg(d.SrcD1))
	}
	if d.Flags.Has(decoder.FlagImm) {
		ops = append(ops, immText(d.Imm))
	}
	switch {
	case d.Flags.Has(decoder.FlagDstD):
		ops = append(ops, dReg(d.DstD))
	case d.Flags.Has(decoder.FlagDstA):
		ops = append(ops, aReg(d.DstA))
	}
	return ops
}

// boOperands renders the BO/BOL effective-address syntax [a_b+offset].
// Loads and LEA list the effective address first and the destination
// register (data or address) last; stores list the source data register
// first, then the effective address.
func boOperands(d decoder.Instruction) []string {
	ea := fmt.Sprintf("[a%d+%s]", d.SrcA, immText(d.Offset))
	switch {
	case d.Flags.Has(decoder.FlagDstD):
		return []string{ea, dReg(d.DstD)}
	case d.Flags.Has(decoder.FlagDstA):
		return []string{ea, aReg(d.DstA)}
	case d.Flags.Has(decoder.FlagSrcD1):
		return []string{dReg(d.SrcD1), ea}
	}
	return []string{ea}
}

func branchCompareOperands(d decoder.Instruction) []string {
	ops := []string{dReg(d.SrcD1)}
	if d.Flags.Has(decoder.FlagSrcD2) {
		ops = append(ops, dReg(d.SrcD2))
	} else if d.Flags.Has(decoder.FlagImm) {
		ops = append(ops, immText(d.Imm))
	}
	ops = append(ops, hex32(d.Target()))
	return ops
}

func d15CompareOperands(d decoder.Instruction) []string {
	var ops []string
	if d.Flags.Has(decoder.FlagSrcD1) {
		ops = append(ops, dReg(d.SrcD1))
	} else if d.Flags.Has(decoder.FlagImm) {
		ops = append(ops, immText(d.Imm))
	}
	ops = append(ops, "d15", hex32(d.Target()))
	return ops
}
