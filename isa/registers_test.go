package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRegister(t *testing.T) {
	cases := []struct {
		tok   string
		index int
		ok    bool
	}{
		{"$0", 0, true},
		{"$31", 31, true},
		{"$zero", 0, true},
		{"$ra", 31, true},
		{"$t0", 8, true},
		{"$32", 0, false},
		{"t0", 0, false},
		{"$bogus", 0, false},
	}
	for _, c := range cases {
		idx, ok := ResolveRegister(c.tok)
		assert.Equal(t, c.ok, ok, c.tok)
		if c.ok {
			assert.Equal(t, c.index, idx, c.tok)
		}
	}
}
