package addr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brackenfield/tc162core/addr"
)

func TestParseHex(t *testing.T) {
	v, err := addr.Parse("0x8000")
	require.NoError(t, err)
	assert.EqualValues(t, 0x8000, v)
}

func TestParseUppercaseHexPrefix(t *testing.T) {
	v, err := addr.Parse("0X10")
	require.NoError(t, err)
	assert.EqualValues(t, 0x10, v)
}

func TestParseDecimal(t *testing.T) {
	v, err := addr.Parse("4096")
	require.NoError(t, err)
	assert.EqualValues(t, 4096, v)
}

func TestParseZeroPaddedDecimalIsNotOctal(t *testing.T) {
	v, err := addr.Parse("010")
	require.NoError(t, err)
	assert.EqualValues(t, 10, v)
}

func TestParseInvalidErrors(t *testing.T) {
	_, err := addr.Parse("not-an-address")
	assert.Error(t, err)
}
