package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipsasm/isa"
)

func TestAssembleSimpleProgram(t *testing.T) {
	src := `
	add $1, $2, $3
	addi $4, $4, 1
`
	hex, err := Assemble(src)
	require.NoError(t, err)

	lines := splitNonEmptyLines(hex)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "00")
	assert.Contains(t, lines[1], "01")
}

func TestAssembleResolvesForwardLabel(t *testing.T) {
	src := `
	beq $1, $2, done
	add $3, $3, $3
done:
	sw $3, 0($0)
`
	a := New()
	require.NoError(t, a.FirstPass(src))
	assert.Equal(t, 2, a.Labels()["done"])

	hex, err := a.SecondPass()
	require.NoError(t, err)
	assert.Len(t, splitNonEmptyLines(hex), 3)
}

func TestAssembleUnresolvedLabelFails(t *testing.T) {
	src := "\tj nowhere\n"
	_, err := Assemble(src)
	require.Error(t, err)
	var lnf *isa.LabelNotFoundError
	require.ErrorAs(t, err, &lnf)
}

func TestAssembleUnknownMnemonicFails(t *testing.T) {
	src := "\tfrobnicate $1, $2\n"
	_, err := Assemble(src)
	require.Error(t, err)
	var se *isa.SyntaxError
	require.ErrorAs(t, err, &se)
}

func TestAssembleIntegerLabelFails(t *testing.T) {
	src := "123:\n\tadd $1, $2, $3\n"
	_, err := Assemble(src)
	require.Error(t, err)
	var se *isa.SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "Label cannot be an integer")
}

func TestAssembleMissingLeadingWhitespaceFailsAsLabel(t *testing.T) {
	src := "add $1, $2, $3\n"
	_, err := Assemble(src)
	require.Error(t, err)
	var se *isa.SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "Label must be followed by ':'")
}

func splitNonEmptyLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
