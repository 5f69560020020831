package isa

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FitSigned returns v unchanged if it fits in a signed n-bit field, using
// the reference implementation's exact (slightly asymmetric) rule: the
// value must satisfy |v| < 2^n. This rejects -2^n but accepts 2^n-1; that
// asymmetry is intentional and must not be "fixed" (see spec §9 note 4).
func FitSigned(v int64, n uint) (int32, error) {
	limit := int64(1) << n
	if v < 0 {
		if -v >= limit {
			return 0, &OutOfRangeError{Value: v, Bits: int(n)}
		}
	} else if v >= limit {
		return 0, &OutOfRangeError{Value: v, Bits: int(n)}
	}
	return int32(v), nil
}

// ToBits renders the low n bits of v as a binary string, zero-padded on
// the left to exactly n characters.
func ToBits(v int32, n uint) string {
	mask := uint64(1)<<n - 1
	s := strconv.FormatUint(uint64(uint32(v))&mask, 2)
	if pad := int(n) - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}
	return s
}

// FromBitsSigned interprets s, a string of exactly n bits, as the two's
// complement representation of an n-bit signed integer: parse unsigned,
// then subtract 2^n if the top bit is set.
func FromBitsSigned(s string, n uint) (int32, error) {
	if uint(len(s)) != n {
		return 0, fmt.Errorf("expected %d bits, got %d", n, len(s))
	}
	val, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		return 0, err
	}
	if s[0] == '1' {
		val -= uint64(1) << n
	}
	return int32(val), nil
}

// SignExtend extends the low n bits of v to a full 32-bit signed value:
// if bit n-1 is set, the higher bits are set; otherwise they are cleared.
func SignExtend(v int32, n uint) int32 {
	mask := int32(uint64(1)<<n - 1)
	low := v & mask
	signBit := int32(1) << (n - 1)
	if low&signBit != 0 {
		return low | ^mask
	}
	return low
}

// ZeroExtend masks v to its low n bits, clearing everything above.
func ZeroExtend(v int32, n uint) int32 {
	mask := int32(uint64(1)<<n - 1)
	return v & mask
}

var hexWordPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}$`)

// HexWordToBits converts an 8 hex digit word into its 32-bit value.
func HexWordToBits(hex string) (uint32, error) {
	if !hexWordPattern.MatchString(hex) {
		return 0, &BadHexError{Hex: hex}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, &BadHexError{Hex: hex}
	}
	return uint32(v), nil
}

// BitsToHexWord renders a 32-bit value as 8 lowercase hex digits,
// zero-padded on the left.
func BitsToHexWord(v uint32) string {
	return fmt.Sprintf("%08x", v)
}
