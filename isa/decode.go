package isa

import (
	"regexp"
	"strings"
)

// imageLinePattern matches one line of a hex image: a leading step label,
// a colon, the 8 hex digit word, and a trailing comment of any shape.
// Grounded on Utilites.java's linePattern, which both the reference
// Disassembler and Simulator decode through.
var imageLinePattern = regexp.MustCompile(`^\s*([a-zA-Z0-9]+)\s*:\s*([a-zA-Z0-9]{8});.*$`)

// DecodeImage decodes every instruction line of a hex image in order,
// assigning each a zero-based step number equal to its position among
// matched lines. Blank lines are skipped; a non-blank line that still
// doesn't match imageLinePattern fails with Syntax("Invalid format"),
// mirroring Utilites.decodeInstruction's else-branch throw. This is the
// single decoder shared by the disassembler and the simulator.
func DecodeImage(src string) ([]*Instruction, error) {
	var out []*Instruction
	stepNo := 0
	for lineNo, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := imageLinePattern.FindStringSubmatch(line)
		if m == nil {
			return nil, NewSyntaxError("Invalid format", lineNo+1)
		}
		inst, err := DecodeInstruction(m[2], lineNo+1, stepNo)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
		stepNo++
	}
	return out, nil
}
