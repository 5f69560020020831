package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitSignedBoundary(t *testing.T) {
	t.Run("accepts 2^n-1", func(t *testing.T) {
		v, err := FitSigned(31, 5)
		require.NoError(t, err)
		assert.EqualValues(t, 31, v)
	})

	t.Run("rejects -2^n", func(t *testing.T) {
		_, err := FitSigned(-32, 5)
		require.Error(t, err)
		var oor *OutOfRangeError
		require.ErrorAs(t, err, &oor)
	})

	t.Run("accepts -(2^n-1)", func(t *testing.T) {
		v, err := FitSigned(-31, 5)
		require.NoError(t, err)
		assert.EqualValues(t, -31, v)
	})
}

func TestToBitsAndFromBitsSignedRoundTrip(t *testing.T) {
	cases := []int32{0, 1, -1, 15, -16, 100, -100}
	for _, v := range cases {
		bits := ToBits(v, 16)
		assert.Len(t, bits, 16)
		back, err := FromBitsSigned(bits, 16)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}
}

func TestSignExtendAndZeroExtend(t *testing.T) {
	assert.Equal(t, int32(-1), SignExtend(0xffff, 16))
	assert.Equal(t, int32(1), SignExtend(0x0001, 16))
	assert.Equal(t, int32(0xffff), ZeroExtend(-1, 16))
}

func TestHexWordRoundTrip(t *testing.T) {
	hex := BitsToHexWord(0xdeadbeef)
	assert.Equal(t, "deadbeef", hex)

	v, err := HexWordToBits(hex)
	require.NoError(t, err)
	assert.EqualValues(t, 0xdeadbeef, v)
}

func TestHexWordToBitsRejectsMalformed(t *testing.T) {
	_, err := HexWordToBits("not-hex!")
	require.Error(t, err)
	var bad *BadHexError
	require.ErrorAs(t, err, &bad)
}
