package isa

import (
	"strconv"
	"strings"
)

// RegisterNames is the frozen, ordered MIPS register alias table: index i
// names register i. Grounded on Utilites.java's regname array in the
// reference implementation.
var RegisterNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

var registerIndexByName map[string]int

func init() {
	registerIndexByName = make(map[string]int, len(RegisterNames))
	for i, name := range RegisterNames {
		registerIndexByName[name] = i
	}
}

// ResolveRegister maps a register operand token ("$2", "$t0", ...) to its
// index in [0, 32). The second return value is false when str does not
// name a register at all.
func ResolveRegister(str string) (int, bool) {
	if !strings.HasPrefix(str, "$") {
		return 0, false
	}
	rest := str[1:]
	if n, err := strconv.Atoi(rest); err == nil {
		if n >= 0 && n < len(RegisterNames) {
			return n, true
		}
		return 0, false
	}
	if idx, ok := registerIndexByName[rest]; ok {
		return idx, true
	}
	return 0, false
}
