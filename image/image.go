// Package image holds the immutable byte-segment model that everything else
// in the core reads from: a firmware image is a set of named, permissioned
// segments, never mutated once built.
package image

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// Perm is a bitmask of segment access permissions.
type Perm uint8

const (
	PermRead Perm = 1 << iota
	PermWrite
	PermExecute
)

// Has reports whether all bits in want are set in p.
func (p Perm) Has(want Perm) bool {
	return p&want == want
}

func (p Perm) String() string {
	s := [3]byte{'-', '-', '-'}
	if p.Has(PermRead) {
		s[0] = 'r'
	}
	if p.Has(PermWrite) {
		s[1] = 'w'
	}
	if p.Has(PermExecute) {
		s[2] = 'x'
	}
	return string(s[:])
}

// Kind tags the provenance of a segment for display purposes.
type Kind int

const (
	KindOther Kind = iota
	KindFlash
	KindRam
)

func (k Kind) String() string {
	switch k {
	case KindFlash:
		return "flash"
	case KindRam:
		return "ram"
	default:
		return "other"
	}
}

// Segment is a contiguous, named, permissioned byte range.
type Segment struct {
	Name  string
	Base  uint32
	Data  []byte
	Perms Perm
	Kind  Kind
}

// End is the address one past the last byte of the segment.
func (s *Segment) End() uint32 {
	return s.Base + uint32(len(s.Data))
}

func (s *Segment) contains(addr uint32) bool {
	return addr >= s.Base && addr < s.End()
}

// Image is an immutable collection of non-overlapping segments.
type Image struct {
	segs []*Segment // sorted by Base
}

// New builds an Image from the given segments, sorted by base address.
// It returns an error if any two segments overlap.
func New(segs []*Segment) (*Image, error) {
	cp := make([]*Segment, len(segs))
	copy(cp, segs)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Base < cp[j].Base })

	for i := 1; i < len(cp); i++ {
		if cp[i].Base < cp[i-1].End() {
			return nil, errors.Errorf("image: segment %q [%#08x,%#08x) overlaps %q [%#08x,%#08x)",
				cp[i].Name, cp[i].Base, cp[i].End(), cp[i-1].Name, cp[i-1].Base, cp[i-1].End())
		}
	}
	return &Image{segs: cp}, nil
}

// Segments returns the image's segments in ascending base-address order.
// The returned slice is shared; callers must not mutate it.
func (img *Image) Segments() []*Segment {
	return img.segs
}

// SegmentContaining returns the segment holding addr, if any.
func (img *Image) SegmentContaining(addr uint32) (*Segment, bool) {
	segs := img.segs
	i := sort.Search(len(segs), func(i int) bool { return segs[i].Base > addr })
	if i == 0 {
		return nil, false
	}
	s := segs[i-1]
	if s.contains(addr) {
		return s, true
	}
	return nil, false
}

func (img *Image) String() string {
	return fmt.Sprintf("image(%d segments)", len(img.segs))
}
