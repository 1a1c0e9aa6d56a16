// Package addr parses user-supplied address strings for CLI front ends.
package addr

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse accepts a hexadecimal address ("0x" or "0X" prefixed) or a plain
// decimal address, and rejects anything else. The base is chosen
// explicitly rather than left to strconv.ParseUint's base-0 inference,
// which would otherwise treat an unprefixed, zero-padded string like
// "010" as octal instead of the decimal value a user typed.
func Parse(s string) (uint32, error) {
	base := 10
	rest := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		rest = s[len("0x"):]
		base = 16
	}

	v, err := strconv.ParseUint(rest, base, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "addr: invalid address %q", s)
	}
	return uint32(v), nil
}
