// Command mipsasm runs the full assemble/disassemble/simulate pipeline
// over a MIPS-I subset assembly file and prints a trace of every stage.
//
// Grounded on Main.java's driver: Loaded File, Assembly Result,
// Disassembly Result, Re-Assembly Result (confirming the round trip is
// idempotent), then Simulation Result with every register dumped.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"mipsasm/assembler"
	"mipsasm/disassembler"
	"mipsasm/internal/report"
	"mipsasm/isa"
	"mipsasm/simulator"
)

const defaultPath = "testdata/multiplication.s"

func main() {
	verbose := flag.Bool("v", false, "enable verbose tracing to stderr")
	flag.Parse()

	path := defaultPath
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	report.Verbose = *verbose

	if err := run(path); err != nil {
		report.Errorf("%v", err)
		os.Exit(1)
	}
}

// run executes the pipeline and buffers its stdout output, flushing it
// only once every stage has succeeded -- a failed run produces no
// partial trace on stdout, only the error on stderr.
func run(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "Loaded File: %s\n%s\n", path, src)
	report.Section("Loaded File")
	report.Dump("source", string(src))

	hexImage, err := assembler.Assemble(string(src))
	if err != nil {
		return err
	}
	fmt.Fprintf(&out, "\nAssembly Result:\n%s", hexImage)
	report.Section("Assembly Result")
	report.Dump("hex image", hexImage)

	disasmText, err := disassembler.Disassemble(hexImage)
	if err != nil {
		return err
	}
	fmt.Fprintf(&out, "\nDisassembly Result:\n%s\n", disasmText)
	report.Section("Disassembly Result")
	report.Dump("disassembly", disasmText)

	reassembledHex, err := assembler.Assemble(disasmText)
	if err != nil {
		return err
	}
	fmt.Fprintf(&out, "\nRe-Assembly Result:\n%s", reassembledHex)
	report.Section("Re-Assembly Result")
	report.Dump("hex image", reassembledHex)

	instructions, err := disassembler.Decode(reassembledHex)
	if err != nil {
		return err
	}
	report.Section("Decoded Program")
	report.Dump("instructions", instructions)

	sim := simulator.New(instructions)
	if path == defaultPath {
		sim.SetMemory(0, 5)
		sim.SetMemory(4, 7)
	}

	runSimulator(sim)
	if err := sim.Err(); err != nil {
		return err
	}

	fmt.Fprintf(&out, "\nSimulation Result:\n")
	fmt.Fprintf(&out, "PC = %d\n", sim.GetPc()*4)
	for i, name := range isa.RegisterNames {
		fmt.Fprintf(&out, "$%d (%s) = %d\n", i, name, sim.GetRegister(i))
	}

	_, err = os.Stdout.Write(out.Bytes())
	return err
}

// runSimulator starts sim and waits for it to halt, using a two-phase
// timeout: a short soft wait, after which the simulator is killed, then
// a longer hard wait for it to stop at its next instruction boundary.
func runSimulator(sim *simulator.Simulator) {
	sim.Start()
	select {
	case <-sim.Done():
		return
	case <-time.After(1 * time.Second):
	}
	sim.Kill()
	select {
	case <-sim.Done():
	case <-time.After(3 * time.Second):
	}
}
