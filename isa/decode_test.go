package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImageSkipsBlankLines(t *testing.T) {
	src := "00 :     00221820; % (00) %\n\n01 :     00832020; % (04) %\n"
	instructions, err := DecodeImage(src)
	require.NoError(t, err)
	require.Len(t, instructions, 2)
}

func TestDecodeImageRejectsMalformedLine(t *testing.T) {
	src := "00 :     00221820; % (00) %\nthis is not a hex image line\n"
	_, err := DecodeImage(src)
	require.Error(t, err)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "Invalid format")
}
