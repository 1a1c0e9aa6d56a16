package image_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brackenfield/tc162core/image"
)

func TestNewRejectsOverlap(t *testing.T) {
	segs := []*image.Segment{
		{Name: "a", Base: 0x1000, Data: make([]byte, 0x100), Perms: image.PermRead},
		{Name: "b", Base: 0x1080, Data: make([]byte, 0x100), Perms: image.PermRead},
	}
	_, err := image.New(segs)
	assert.Error(t, err)
}

func TestNewSortsByBase(t *testing.T) {
	segs := []*image.Segment{
		{Name: "hi", Base: 0x2000, Data: make([]byte, 0x10)},
		{Name: "lo", Base: 0x1000, Data: make([]byte, 0x10)},
	}
	img, err := image.New(segs)
	require.NoError(t, err)
	got := img.Segments()
	require.Len(t, got, 2)
	assert.Equal(t, "lo", got[0].Name)
	assert.Equal(t, "hi", got[1].Name)
}

func TestSegmentContaining(t *testing.T) {
	img, err := image.New([]*image.Segment{
		{Name: "flash", Base: 0x1000, Data: make([]byte, 0x100), Perms: image.PermRead | image.PermExecute},
	})
	require.NoError(t, err)

	seg, ok := img.SegmentContaining(0x1000)
	require.True(t, ok)
	assert.Equal(t, "flash", seg.Name)

	seg, ok = img.SegmentContaining(0x10FF)
	require.True(t, ok)
	assert.Equal(t, "flash", seg.Name)

	_, ok = img.SegmentContaining(0x1100)
	assert.False(t, ok)

	_, ok = img.SegmentContaining(0x0FFF)
	assert.False(t, ok)
}

func TestPermString(t *testing.T) {
	assert.Equal(t, "rwx", (image.PermRead | image.PermWrite | image.PermExecute).String())
	assert.Equal(t, "r-x", (image.PermRead | image.PermExecute).String())
	assert.Equal(t, "---", image.Perm(0).String())
}
