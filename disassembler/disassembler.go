// Package disassembler renders a hex image back to assembly text. Labels
// are never recovered -- branch and jump targets are rendered as the raw
// numeric offset/address that was encoded, per spec.
//
// Grounded on Disassembler.java, which decodes through the same shared
// line decoder as the simulator.
package disassembler

import (
	"strings"

	"mipsasm/isa"
)

// Disassemble decodes src and renders every instruction on its own line.
func Disassemble(src string) (string, error) {
	instructions, err := isa.DecodeImage(src)
	if err != nil {
		return "", err
	}
	lines := make([]string, len(instructions))
	for i, inst := range instructions {
		lines[i] = inst.Render()
	}
	return strings.Join(lines, "\n"), nil
}

// Decode decodes src into its instruction list without rendering,
// exposed for callers (such as the simulator and the CLI) that need the
// decoded program rather than its text form.
func Decode(src string) ([]*isa.Instruction, error) {
	return isa.DecodeImage(src)
}
