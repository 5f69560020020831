package disassembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipsasm/assembler"
)

func TestDisassembleRendersEveryInstruction(t *testing.T) {
	src := "\tadd $1, $2, $3\n\taddi $4, $4, 1\n"
	hex, err := assembler.Assemble(src)
	require.NoError(t, err)

	text, err := Disassemble(hex)
	require.NoError(t, err)

	lines := splitNonEmpty(text)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "add")
	assert.Contains(t, lines[1], "addi")
}

func TestRoundTripAssembleDisassembleReassembleIsIdempotent(t *testing.T) {
	src := `
	lw $1, 0($0)
	lw $2, 4($0)
	add $3, $0, $0
loop:
	beq $2, $0, done
	add $3, $3, $1
	addi $2, $2, -1
	j loop
done:
	sw $3, 8($0)
`
	firstHex, err := assembler.Assemble(src)
	require.NoError(t, err)

	text, err := Disassemble(firstHex)
	require.NoError(t, err)

	secondHex, err := assembler.Assemble(text)
	require.NoError(t, err)

	assert.Equal(t, firstHex, secondHex)
}

func TestDisassembleRejectsMalformedLine(t *testing.T) {
	_, err := Disassemble("not a hex image line at all\n")
	require.Error(t, err)
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
