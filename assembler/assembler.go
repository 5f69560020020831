// Package assembler turns MIPS-I subset assembly text into the flat hex
// image format consumed by the disassembler and simulator.
//
// Grounded on shared/assembler/assembler.go's two-phase Info/FirstPass/
// SecondPass structure, simplified to this ISA's needs: no macro
// expansion or object-file directives, since the target format is the
// flat hex image rather than a DULF object file.
package assembler

import (
	"fmt"
	"regexp"
	"strings"

	"mipsasm/isa"
)

// Assembler holds the state accumulated across the two assembly passes:
// the label table built in FirstPass, consumed by SecondPass to resolve
// every symbolic branch/jump target.
type Assembler struct {
	labels       map[string]int
	instructions []*isa.Instruction
}

// New returns an empty Assembler ready for FirstPass.
func New() *Assembler {
	return &Assembler{labels: make(map[string]int)}
}

// Assemble runs both passes over src and returns the rendered hex image.
func Assemble(src string) (string, error) {
	a := New()
	if err := a.FirstPass(src); err != nil {
		return "", err
	}
	return a.SecondPass()
}

// FirstPass parses every line of src into zero or one Instruction,
// recording label definitions against the step number of the next
// instruction. Instructions with symbolic operands are left unresolved
// (Instruction.Jumpto set) until SecondPass.
//
// Tokenization follows original_source/src/mips/Assembler.java:76-84's
// `code.split("[\t ]+", 3)` exactly: the comment-stripped line (not
// trimmed) is split on runs of space/tab into at most three tokens. A
// label-less instruction line therefore needs a leading tab/space -- it
// is what produces the empty token[0] that signals "no label" -- a line
// with no leading whitespace splits its mnemonic into token[0] instead,
// which fails as an unterminated label.
func (a *Assembler) FirstPass(src string) error {
	stepNo := 0
	for lineNo, rawLine := range strings.Split(src, "\n") {
		line := stripComment(rawLine)
		if strings.TrimSpace(line) == "" {
			continue
		}

		tokens := wsSplitPattern.Split(line, 3)
		if len(tokens) != 1 && len(tokens) != 3 {
			return isa.NewSyntaxError("No arguments given (maybe you're missing head tab/space?)", lineNo+1)
		}

		label := tokens[0]
		switch {
		case strings.HasSuffix(label, ":"):
			name := label[:len(label)-1]
			if integerFormPattern.MatchString(name) {
				return isa.NewSyntaxError("Label cannot be an integer", lineNo+1)
			}
			a.labels[name] = stepNo
		case label != "":
			return isa.NewSyntaxError("Label must be followed by ':'", lineNo+1)
		}

		if len(tokens) != 3 {
			continue
		}

		mnemonic, operandsField := tokens[1], tokens[2]
		kind, ok := isa.KindByMnemonic(mnemonic)
		if !ok {
			return isa.NewSyntaxError("Invalid mnemonic", lineNo+1)
		}

		args := splitArgs(operandsField)
		inst := isa.NewInstruction(kind, lineNo+1, stepNo)
		if err := inst.ParseArgs(args); err != nil {
			return err
		}
		a.instructions = append(a.instructions, inst)
		stepNo++
	}
	return nil
}

var wsSplitPattern = regexp.MustCompile(`[ \t]+`)
var integerFormPattern = regexp.MustCompile(`^-?\d+$`)

// SecondPass encodes every instruction collected by FirstPass against
// the now-complete label table and renders the hex image.
func (a *Assembler) SecondPass() (string, error) {
	var b strings.Builder
	for _, inst := range a.instructions {
		hex, err := inst.EncodeHex(a.labels)
		if err != nil {
			return "", err
		}
		byteAddr := inst.StepNo * 4
		fmt.Fprintf(&b, "%2X :     %s; %% (%02X) %%\n", inst.StepNo, hex, byteAddr)
	}
	return b.String(), nil
}

// Labels exposes the label table built by FirstPass.
func (a *Assembler) Labels() map[string]int {
	return a.labels
}

// Instructions exposes the instructions collected by FirstPass.
func (a *Assembler) Instructions() []*isa.Instruction {
	return a.instructions
}

func stripComment(line string) string {
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		return line[:idx]
	}
	return line
}

func splitArgs(argsField string) []string {
	if argsField == "" {
		return nil
	}
	parts := strings.Split(argsField, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
