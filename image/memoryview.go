package image

// MemoryView is a read capability over an Image, addressed absolutely.
// Reads outside any segment, or straddling two segments that do not abut
// exactly, come back as "absent" (ok=false) rather than a zero byte.
type MemoryView struct {
	img *Image
}

// NewMemoryView wraps img for address-based reads.
func NewMemoryView(img *Image) *MemoryView {
	return &MemoryView{img: img}
}

// Image returns the underlying image.
func (v *MemoryView) Image() *Image {
	return v.img
}

// BytesAt returns the n bytes starting at addr, or ok=false if any byte in
// the range is absent from the image, the range straddles a gap between
// segments that do not abut exactly, or it straddles two abutting segments
// with different permissions. Crossing a permission boundary mid-read would
// let a caller fetch bytes under permissions neither segment actually
// grants, so "compatible" here means identical Perms.
func (v *MemoryView) BytesAt(addr uint32, n uint32) ([]byte, bool) {
	if n == 0 {
		return nil, true
	}
	out := make([]byte, 0, n)
	cur := addr
	remaining := n
	var prevPerms Perm
	havePrev := false
	for remaining > 0 {
		seg, ok := v.img.SegmentContaining(cur)
		if !ok {
			return nil, false
		}
		if havePrev && seg.Perms != prevPerms {
			return nil, false
		}
		prevPerms = seg.Perms
		havePrev = true

		avail := seg.End() - cur
		take := remaining
		if avail < take {
			take = avail
		}
		off := cur - seg.Base
		out = append(out, seg.Data[off:off+take]...)
		cur += take
		remaining -= take
	}
	return out, true
}

// ReadU8 reads a single byte at addr.
func (v *MemoryView) ReadU8(addr uint32) (uint8, bool) {
	b, ok := v.BytesAt(addr, 1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

// ReadU16LE reads a little-endian halfword at addr. The read is tolerant of
// misalignment; alignment policy belongs to the decoder, not the view.
func (v *MemoryView) ReadU16LE(addr uint32) (uint16, bool) {
	b, ok := v.BytesAt(addr, 2)
	if !ok {
		return 0, false
	}
	return uint16(b[0]) | uint16(b[1])<<8, true
}

// ReadU32LE reads a little-endian word at addr.
func (v *MemoryView) ReadU32LE(addr uint32) (uint32, bool) {
	b, ok := v.BytesAt(addr, 4)
	if !ok {
		return 0, false
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, true
}

// SegmentContaining exposes the underlying image's segment lookup so callers
// (the analyzer, in particular) can check permissions before fetching.
func (v *MemoryView) SegmentContaining(addr uint32) (*Segment, bool) {
	return v.img.SegmentContaining(addr)
}
