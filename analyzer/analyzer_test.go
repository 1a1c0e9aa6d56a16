package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brackenfield/tc162core/analyzer"
	"github.com/brackenfield/tc162core/decoder"
	"github.com/brackenfield/tc162core/image"
)

func imageFromBytes(t *testing.T, b []byte) *image.Image {
	t.Helper()
	img, err := image.New([]*image.Segment{
		{Name: "code", Base: 0, Data: b, Perms: image.PermRead | image.PermExecute},
	})
	require.NoError(t, err)
	return img
}

// S1: one ADD, max_instructions=1 closes the block with no outgoing edge.
func TestAnalyzerSingleInstructionLimit(t *testing.T) {
	img := imageFromBytes(t, []byte{0x0B, 0x12, 0x00, 0x00})
	a := analyzer.New(img, analyzer.Limits{MaxInstructions: 1})
	res := a.Run(nil, []uint32{0})

	require.Len(t, res.Blocks, 1)
	b := res.Blocks[0]
	assert.EqualValues(t, 0, b.Start)
	assert.EqualValues(t, 4, b.End)
	assert.Len(t, b.Insns, 1)
	assert.Empty(t, b.Edges)

	require.Len(t, res.Functions, 1)
	assert.EqualValues(t, 0, res.Functions[0].Entry)
}

// S2: unconditional 16-bit jump to self.
func TestAnalyzerSelfBranch(t *testing.T) {
	img := imageFromBytes(t, []byte{0x3C, 0xFF})
	a := analyzer.New(img, analyzer.Limits{})
	res := a.Run(nil, []uint32{0})

	require.Len(t, res.Blocks, 1)
	b := res.Blocks[0]
	assert.EqualValues(t, 0, b.Start)
	assert.EqualValues(t, 2, b.End)
	require.Len(t, b.Edges, 1)
	assert.Equal(t, analyzer.Edge{To: 0, Kind: analyzer.EdgeBR}, b.Edges[0])

	require.Len(t, res.Functions, 1)
	assert.Equal(t, []uint32{0}, res.Functions[0].Blocks)
}

// S3: conditional branch at 0x0 with a +4 displacement, one ADD at 0x4,
// then the ADD's own block closes on a tight instruction limit.
func TestAnalyzerConditionalBranchFallthrough(t *testing.T) {
	// BRR JEQ: op1=0x5F, op2=0 -> JEQ, disp15=2 (normalized to +4).
	word := uint32(0x5F) | uint32(2)<<16
	brr := []byte{byte(word), byte(word >> 8), byte(word >> 16), byte(word >> 24)}
	add := []byte{0x0B, 0x12, 0x00, 0x00}
	img := imageFromBytes(t, append(brr, add...))

	a := analyzer.New(img, analyzer.Limits{MaxInstructions: 1})
	res := a.Run(nil, []uint32{0})

	require.Len(t, res.Blocks, 2)
	first := res.Blocks[0]
	assert.EqualValues(t, 4, first.End)
	require.Len(t, first.Edges, 2)
	assert.Contains(t, first.Edges, analyzer.Edge{To: 8, Kind: analyzer.EdgeCBR})
	assert.Contains(t, first.Edges, analyzer.Edge{To: 4, Kind: analyzer.EdgeFT})

	second := res.Blocks[4]
	assert.EqualValues(t, 4, second.Start)
	assert.EqualValues(t, 8, second.End)
	assert.Empty(t, second.Edges)

	require.Len(t, res.Functions, 1)
	fn := res.Functions[0]
	assert.EqualValues(t, 0, fn.Entry)
	assert.ElementsMatch(t, []uint32{0, 4}, fn.Blocks)
}

// S4: an unrecognized word becomes a synthetic .word instruction and an
// oob diagnostic, closing the block with no outgoing edges.
func TestAnalyzerDecodeFailureBecomesWord(t *testing.T) {
	img := imageFromBytes(t, []byte{0xFF, 0xFF, 0xFF, 0xFF})
	a := analyzer.New(img, analyzer.Limits{})
	res := a.Run(nil, []uint32{0})

	require.Len(t, res.Blocks, 1)
	b := res.Blocks[0]
	assert.EqualValues(t, 0, b.Start)
	assert.EqualValues(t, 4, b.End)
	require.Len(t, b.Insns, 1)
	assert.Equal(t, decoder.Unknown, b.Insns[0].Op)
	assert.EqualValues(t, 0xFFFFFFFF, b.Insns[0].Raw)
	assert.Empty(t, b.Edges)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, analyzer.DiagOOB, res.Diagnostics[0].Kind)
}

// S5: four sequential ADDs then a J at 0x10 back to the third
// instruction's address; the post-pass split must leave two disjoint blocks.
func TestAnalyzerSplitAtBranchTarget(t *testing.T) {
	add := func() []byte { return []byte{0x0B, 0x12, 0x00, 0x00} }
	var code []byte
	for i := 0; i < 4; i++ {
		code = append(code, add()...)
	}
	// J at 0x10 to 0x8: end_addr=0x14, displacement = 0x8-0x14 = -12 -> disp24 = -6 (halfword units)
	disp24 := uint32(int32(-6)) & 0xFFFFFF
	word := uint32(0x1D) | disp24<<8
	jmp := []byte{byte(word), byte(word >> 8), byte(word >> 16), byte(word >> 24)}
	code = append(code, jmp...)

	img := imageFromBytes(t, code)
	a := analyzer.New(img, analyzer.Limits{})
	res := a.Run(nil, []uint32{0})

	require.Len(t, res.Blocks, 2)
	lower, ok := res.Blocks[0]
	require.True(t, ok)
	assert.EqualValues(t, 0, lower.Start)
	assert.EqualValues(t, 8, lower.End)
	require.Len(t, lower.Edges, 1)
	assert.Equal(t, analyzer.Edge{To: 8, Kind: analyzer.EdgeFT}, lower.Edges[0])

	upper, ok := res.Blocks[8]
	require.True(t, ok)
	assert.EqualValues(t, 8, upper.Start)
	assert.EqualValues(t, 0x14, upper.End)
	require.Len(t, upper.Edges, 1)
	assert.Equal(t, analyzer.Edge{To: 8, Kind: analyzer.EdgeBR}, upper.Edges[0])

	// every edge target is the start of some block (invariant 3).
	for _, b := range res.Blocks {
		for _, e := range b.Edges {
			_, ok := res.Blocks[e.To]
			assert.True(t, ok, "edge target %#x has no block", e.To)
		}
	}
	// blocks are pairwise disjoint (invariant 4).
	assert.LessOrEqual(t, lower.End, upper.Start)
}

// S6: the image ends mid-instruction; decode fails on absent bytes and
// the analyzer records an oob diagnostic instead of aborting.
func TestAnalyzerOOBStop(t *testing.T) {
	data := []byte{0x0B, 0x12, 0x00, 0x00, 0xFF, 0xFF} // ADD, then 2 trailing bytes -> [0x0,0x6)
	img := imageFromBytes(t, data)

	a := analyzer.New(img, analyzer.Limits{})
	res := a.Run(nil, []uint32{0})

	require.Len(t, res.Blocks, 1)
	b := res.Blocks[0]
	assert.EqualValues(t, 0, b.Start)
	require.Len(t, b.Insns, 2) // the ADD, then the synthetic .word
	assert.Equal(t, uint8(4), b.Insns[1].Width)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, analyzer.DiagOOB, res.Diagnostics[0].Kind)
}

func TestAnalyzerNonExecutableSeedIsDiagnosedNotCrashed(t *testing.T) {
	img, err := image.New([]*image.Segment{
		{Name: "data", Base: 0, Data: []byte{0, 0, 0, 0}, Perms: image.PermRead},
	})
	require.NoError(t, err)

	a := analyzer.New(img, analyzer.Limits{})
	res := a.Run(nil, []uint32{0})

	assert.Empty(t, res.Blocks)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, analyzer.DiagNonExecutable, res.Diagnostics[0].Kind)
}
