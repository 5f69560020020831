// Package simulator executes a decoded MIPS-I subset program against a
// register file and sparse memory until it halts, runs off the end of
// its instruction list, or is killed.
//
// Grounded on Simulator.java, which implements Runnable and loops
// "while (!kill) { ...; pc = inst.run(...); Thread.yield(); }". The kill
// flag there is plain, checked only from the same thread that calls
// kill() synchronously after join(); here it is an atomic.Bool so a
// supervisor goroutine can request cancellation concurrently with
// execution, and runtime.Gosched() stands in for Thread.yield().
package simulator

import (
	"runtime"
	"sync"
	"sync/atomic"

	"mipsasm/isa"
)

// Simulator runs a fixed instruction list against one register file and
// one memory. It is safe to query from another goroutine while the
// program started by Start is executing.
type Simulator struct {
	instructions []*isa.Instruction

	mu   sync.Mutex
	mem  isa.Memory
	regs isa.RegisterFile
	pc   int32
	err  error

	kill atomic.Bool
	done chan struct{}
}

// New returns a Simulator positioned at pc 0 over the given program.
func New(instructions []*isa.Instruction) *Simulator {
	return &Simulator{
		instructions: instructions,
		done:         make(chan struct{}),
	}
}

// Decode decodes src through the shared hex-image decoder and appends
// the resulting instructions to the program, mirroring Simulator.java's
// decode(src), which does `instList.addAll(decodeInstruction(src))`.
// Like the reference, this must be called before Start; it does not
// lock s.mu since the run goroutine only ever reads s.instructions
// after Start has been called.
func (s *Simulator) Decode(src string) error {
	instructions, err := isa.DecodeImage(src)
	if err != nil {
		return err
	}
	s.instructions = append(s.instructions, instructions...)
	return nil
}

// SetMemory seeds memory at addr with value, returning the value
// previously stored there. Intended for pre-run setup before Start.
func (s *Simulator) SetMemory(addr, value int32) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem.Write(addr, value)
}

// GetMemory reads memory at addr.
func (s *Simulator) GetMemory(addr int32) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem.Read(addr)
}

// GetRegister reads register i.
func (s *Simulator) GetRegister(i int) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs.Get(i)
}

// GetPc reads the current program counter, in step units (not bytes).
func (s *Simulator) GetPc() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pc
}

// Err reports the error that stopped execution, if any. It is nil both
// while running and after a normal or killed halt.
func (s *Simulator) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Kill requests cooperative cancellation. The running goroutine observes
// this at its next instruction boundary and stops without finishing the
// program; Done() closes once it has done so.
func (s *Simulator) Kill() {
	s.kill.Store(true)
}

// Done returns a channel that closes once execution has stopped, for
// any reason.
func (s *Simulator) Done() <-chan struct{} {
	return s.done
}

// Start launches execution on its own goroutine and returns immediately.
func (s *Simulator) Start() {
	go s.run()
}

func (s *Simulator) run() {
	defer close(s.done)
	for {
		if s.kill.Load() {
			return
		}

		s.mu.Lock()
		pc := s.pc
		switch {
		case int(pc) == len(s.instructions):
			s.mu.Unlock()
			return
		case pc < 0 || int(pc) > len(s.instructions):
			s.err = isa.NewSimulationError("no instructions here", pc)
			s.mu.Unlock()
			return
		}
		inst := s.instructions[pc]
		s.pc = inst.Run(pc, &s.regs, &s.mem)
		s.mu.Unlock()

		runtime.Gosched()
	}
}
