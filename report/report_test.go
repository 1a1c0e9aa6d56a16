package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brackenfield/tc162core/analyzer"
	"github.com/brackenfield/tc162core/image"
	"github.com/brackenfield/tc162core/report"
)

func imageFromBytes(t *testing.T, b []byte) *image.Image {
	t.Helper()
	img, err := image.New([]*image.Segment{
		{Name: "code", Base: 0, Data: b, Perms: image.PermRead | image.PermExecute},
	})
	require.NoError(t, err)
	return img
}

// S1: single block, one function, default label sub_00000000.
func TestAssembleDefaultFunctionLabel(t *testing.T) {
	img := imageFromBytes(t, []byte{0x0B, 0x12, 0x00, 0x00})
	a := analyzer.New(img, analyzer.Limits{MaxInstructions: 1})
	res := a.Run(nil, []uint32{0})

	rep := report.Assemble(img, res, nil)
	require.Len(t, rep.Blocks, 1)
	assert.Equal(t, "sub_00000000", rep.Blocks[0].Label)
	assert.Equal(t, "add\td1, d2, d0", rep.Blocks[0].Insns[0].Text)

	require.Len(t, rep.Functions, 1)
	assert.EqualValues(t, 0, rep.Functions[0].Entry)
}

// S5: branch-target block gets a loc_ label, not sub_.
func TestAssembleBranchTargetLabel(t *testing.T) {
	add := func() []byte { return []byte{0x0B, 0x12, 0x00, 0x00} }
	var code []byte
	for i := 0; i < 4; i++ {
		code = append(code, add()...)
	}
	disp24 := uint32(int32(-6)) & 0xFFFFFF
	word := uint32(0x1D) | disp24<<8
	code = append(code, byte(word), byte(word>>8), byte(word>>16), byte(word>>24))

	img := imageFromBytes(t, code)
	a := analyzer.New(img, analyzer.Limits{})
	res := a.Run(nil, []uint32{0})

	rep := report.Assemble(img, res, nil)
	require.Len(t, rep.Blocks, 2)

	var locLabel, subLabel string
	for _, b := range rep.Blocks {
		if b.Start == 0 {
			subLabel = b.Label
		}
		if b.Start == 8 {
			locLabel = b.Label
		}
	}
	assert.Equal(t, "sub_00000000", subLabel)
	assert.Equal(t, "loc_00000008", locLabel)
}

func TestExternalLabelOverlayAndCollisionSuffix(t *testing.T) {
	img := imageFromBytes(t, []byte{0x0B, 0x12, 0x00, 0x00, 0x3C, 0xFF})
	a := analyzer.New(img, analyzer.Limits{MaxInstructions: 1})
	res := a.Run(nil, []uint32{0, 4})

	rep := report.Assemble(img, res, []report.LabelEntry{
		{Addr: 0, Name: "entry_point"},
		{Addr: 4, Name: "entry_point"}, // collides with the 0x0 rename
	})

	var nameAt0, nameAt4 string
	for _, l := range rep.Labels {
		if l.Addr == 0 {
			nameAt0 = l.Name
		}
		if l.Addr == 4 {
			nameAt4 = l.Name
		}
	}
	assert.Equal(t, "entry_point", nameAt0)
	assert.NotEqual(t, nameAt4, nameAt0)
}

func TestValidLabelName(t *testing.T) {
	assert.True(t, report.ValidLabelName("_foo"))
	assert.True(t, report.ValidLabelName("foo123"))
	assert.False(t, report.ValidLabelName(""))
	assert.False(t, report.ValidLabelName("1foo"))
	assert.False(t, report.ValidLabelName("foo-bar"))
}

func TestToJSONDocProjectsAllFields(t *testing.T) {
	img := imageFromBytes(t, []byte{0x3C, 0xFF})
	a := analyzer.New(img, analyzer.Limits{})
	res := a.Run(nil, []uint32{0})
	rep := report.Assemble(img, res, nil)

	doc := report.ToJSONDoc(rep)
	require.Len(t, doc.Segments, 1)
	require.Len(t, doc.Blocks, 1)
	require.Len(t, doc.Blocks[0].Edges, 1)
	assert.Equal(t, "br", doc.Blocks[0].Edges[0].Kind)
	assert.False(t, doc.Cancelled)
}
