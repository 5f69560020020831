package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFileZeroIsHardwired(t *testing.T) {
	var rf RegisterFile
	rf.Set(0, 42)
	assert.Equal(t, int32(0), rf.Get(0))
}

func TestRegisterFileSetGet(t *testing.T) {
	var rf RegisterFile
	rf.Set(3, -7)
	assert.Equal(t, int32(-7), rf.Get(3))
	assert.Equal(t, 32, rf.Size())
}
