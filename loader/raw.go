// Package loader builds an *image.Image from bytes on disk. It is the
// one place in the core that does file I/O, so it is also the one
// place that returns wrapped input errors instead of Diagnostics.
package loader

import (
	"os"

	"github.com/pkg/errors"

	"github.com/brackenfield/tc162core/image"
)

// LoadRaw maps a flat binary file as one segment named "raw" at base,
// skipping the first skip bytes of the file and truncating to *length
// bytes if length is non-nil. Permissions are R+X, kind Flash, matching
// a firmware image mapped directly into flash.
func LoadRaw(path string, base, skip uint32, length *uint32) (*image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loader: open %q", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "loader: stat %q", path)
	}
	size := uint32(info.Size())
	if uint64(skip) > uint64(size) {
		return nil, errors.Errorf("loader: skip %d exceeds file size %d for %q", skip, size, path)
	}

	want := size - skip
	if length != nil {
		if *length > want {
			return nil, errors.Errorf("loader: skip %d + length %d exceeds file size %d for %q",
				skip, *length, size, path)
		}
		want = *length
	}

	data := make([]byte, want)
	if want > 0 {
		n, err := f.ReadAt(data, int64(skip))
		if err != nil {
			return nil, errors.Wrapf(err, "loader: read %q at offset %d", path, skip)
		}
		if uint32(n) != want {
			return nil, errors.Errorf("loader: short read of %q: got %d bytes, wanted %d", path, n, want)
		}
	}

	seg := &image.Segment{
		Name:  "raw",
		Base:  base,
		Data:  data,
		Perms: image.PermRead | image.PermExecute,
		Kind:  image.KindFlash,
	}
	return image.New([]*image.Segment{seg})
}
