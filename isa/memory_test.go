package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryDefaultsToZero(t *testing.T) {
	var m Memory
	assert.Equal(t, int32(0), m.Read(1234))
}

func TestMemoryWriteReturnsPreviousValue(t *testing.T) {
	var m Memory
	old := m.Write(8, 5)
	assert.Equal(t, int32(0), old)

	old = m.Write(8, 9)
	assert.Equal(t, int32(5), old)
	assert.Equal(t, int32(9), m.Read(8))
}
