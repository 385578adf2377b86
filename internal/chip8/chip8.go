// Package chip8 implements the CHIP-8 interpretation core: processor state,
// opcode decoding, instruction dispatch and the fetch-execute loop.
package chip8

import (
	"errors"
	"fmt"
	"log"
)

// Machine geometry constants
const (
	// MemorySize is the full byte-addressable memory
	MemorySize = 0x1000
	// ProgramStart is the conventional program entry point; addresses below
	// are the interpreter-reserved region
	ProgramStart = 0x200
	// MaxProgramSize is the loader's capacity bound. Note the decimal 200:
	// the historical check is 4096-200, not 4096-0x200.
	MaxProgramSize = MemorySize - 200
	// RegisterCount is the number of general-purpose registers V0-VF
	RegisterCount = 16
	// ScreenWidth and ScreenHeight describe the monochrome display grid
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Screen is the 64x32 row-major pixel grid owned by the processor state.
type Screen [ScreenHeight][ScreenWidth]bool

// Renderer is the display collaborator capability. The core passes its own
// screen buffer by reference so the collaborator can reset all cells.
// A Chip8 with no renderer attached is valid; the clear instruction is then
// a no-op.
type Renderer interface {
	Clear(screen *Screen)
}

// RandomSource supplies one uniformly distributed byte per call. It is
// injectable so tests can substitute a deterministic stub for the
// process-wide generator.
type RandomSource interface {
	NextByte() uint8
}

// Core fault conditions. Execution-loop faults are not recoverable
// mid-instruction-stream; callers should stop the run.
var (
	// ErrProgramTooLarge is returned by Load when the image does not fit
	// between the program origin and the top of memory
	ErrProgramTooLarge = errors.New("program image too large")
	// ErrStackUnderflow is returned when a return instruction pops an
	// empty call stack
	ErrStackUnderflow = errors.New("stack underflow on return")
	// ErrCounterOutOfRange is returned when the program counter leaves
	// addressable memory
	ErrCounterOutOfRange = errors.New("program counter out of range")
	// ErrMemoryOutOfRange is returned when a block transfer would run past
	// the top of memory
	ErrMemoryOutOfRange = errors.New("memory access out of range")
)

// Chip8 is the processor state: registers, memory, stack, program counter,
// index register, timers and display buffer. It is constructed once and
// owned by the execution loop for the process lifetime.
type Chip8 struct {
	// Registers are the sixteen 8-bit registers V0-VF
	Registers [RegisterCount]uint8

	// Stack holds return addresses, LIFO. Unbounded by design; the real
	// architecture's depth limit is not enforced here.
	Stack []uint16

	// Memory is the flat 4KB address space. Program code and data occupy
	// 0x200 upward.
	Memory [MemorySize]uint8

	// Index is the 16-bit address register I
	Index uint16

	// Counter is the program counter, stepped by two each cycle
	Counter uint16

	// Delay and Sound are the 8-bit countdown timers. The core only
	// implements their set/read instructions; the 60Hz decrement is driven
	// externally through TickTimers.
	Delay uint8
	Sound uint8

	// Screen is the display buffer, mutated only by the draw/clear
	// instructions and presented by the renderer collaborator
	Screen Screen

	renderer Renderer
	random   RandomSource

	// Unimplemented-instruction tracking. Opcodes the dispatcher does not
	// implement are a reportable condition, not a silent no-op.
	unimplementedCount uint64
	lastUnimplemented  Opcode

	enableTraceLogging bool
}

// New creates a zeroed machine with the program counter at the entry point.
// The renderer may be nil for display-less operation.
func New(renderer Renderer) *Chip8 {
	return &Chip8{
		Counter:  ProgramStart,
		Stack:    make([]uint16, 0, 16),
		renderer: renderer,
		random:   defaultRandomSource{},
	}
}

// SetRandomSource replaces the uniform byte generator used by the
// random-mask instruction.
func (c *Chip8) SetRandomSource(source RandomSource) {
	if source != nil {
		c.random = source
	}
}

// SetTraceLogging enables logging of each reported unimplemented opcode.
func (c *Chip8) SetTraceLogging(enabled bool) {
	c.enableTraceLogging = enabled
}

// Load validates a program image and copies it into memory at the program
// origin. It fails with ErrProgramTooLarge before modifying any state when
// the image exceeds the capacity bound. Call it once, before Run.
func (c *Chip8) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	// The historical capacity bound is decimal 4096-200, slightly larger
	// than the physical window above the origin; the copy stops at the top
	// of memory.
	copy(c.Memory[ProgramStart:], program)
	return nil
}

// Fetch reads the two bytes at the program counter and combines them into
// a big-endian opcode. It fails when the counter has left addressable
// memory, keeping the loop's failure mode deterministic.
func (c *Chip8) Fetch() (Opcode, error) {
	if int(c.Counter)+1 >= MemorySize {
		return 0, fmt.Errorf("%w: 0x%04X", ErrCounterOutOfRange, c.Counter)
	}
	high := uint16(c.Memory[c.Counter])
	low := uint16(c.Memory[c.Counter+1])
	return Opcode(high<<8 | low), nil
}

// Step runs one fetch-dispatch-advance cycle. The counter advance happens
// after dispatch even when the instruction itself set the counter, so
// control-transfer opcodes must name the exact destination address.
func (c *Chip8) Step() error {
	op, err := c.Fetch()
	if err != nil {
		return err
	}
	if err := c.Execute(op); err != nil {
		return err
	}
	c.Counter += 2
	return nil
}

// Run drives the fetch-execute cycle until a fault. There is no normal
// termination; a conforming program loops forever.
func (c *Chip8) Run() error {
	for {
		if err := c.Step(); err != nil {
			return err
		}
	}
}

// TickTimers performs one 60Hz countdown tick on both timers. It is the
// entry point for the external timer-driving collaborator and is never
// called by the execution loop itself.
func (c *Chip8) TickTimers() {
	if c.Delay > 0 {
		c.Delay--
	}
	if c.Sound > 0 {
		c.Sound--
	}
}

// UnimplementedCount returns how many unimplemented opcodes have been
// dispatched so far.
func (c *Chip8) UnimplementedCount() uint64 {
	return c.unimplementedCount
}

// LastUnimplemented returns the most recently reported unimplemented opcode.
func (c *Chip8) LastUnimplemented() Opcode {
	return c.lastUnimplemented
}

// reportUnimplemented records an opcode whose instruction is not implemented.
// The condition stays observable through the counter so coverage gaps can be
// detected mechanically.
func (c *Chip8) reportUnimplemented(op Opcode) {
	c.unimplementedCount++
	c.lastUnimplemented = op
	if c.enableTraceLogging {
		log.Printf("chip8: opcode 0x%04X is not implemented", uint16(op))
	}
}

// Execute applies exactly one instruction's effect to the machine state.
// Primary dispatch is on the top nibble; the 0x8 and 0xF families dispatch
// again on their mode sub-field. The two-level structure mirrors the
// instruction encoding and keeps the mapping auditable.
func (c *Chip8) Execute(op Opcode) error {
	switch op & 0xF000 {
	case 0x0000:
		switch op {
		case 0x00E0:
			// Clear the screen through the display collaborator.
			if c.renderer != nil {
				c.renderer.Clear(&c.Screen)
			}
		case 0x00EE:
			// Return from subroutine.
			if len(c.Stack) == 0 {
				return fmt.Errorf("%w: opcode 0x%04X at 0x%04X", ErrStackUnderflow, uint16(op), c.Counter)
			}
			c.Counter = c.Stack[len(c.Stack)-1]
			c.Stack = c.Stack[:len(c.Stack)-1]
		default:
			// 0NNN machine code routine call.
			c.reportUnimplemented(op)
		}

	case 0x1000:
		// Jump to address.
		c.Counter = op.NNN()

	case 0x2000:
		// Call subroutine at address.
		c.Stack = append(c.Stack, c.Counter)
		c.Counter = op.NNN()

	case 0x3000:
		// Skip next instruction if VX equals NN.
		if c.Registers[op.X()] == op.NN() {
			c.Counter += 2
		}

	case 0x4000:
		// Skip next instruction if VX does not equal NN.
		if c.Registers[op.X()] != op.NN() {
			c.Counter += 2
		}

	case 0x5000:
		// Skip next instruction if VX equals VY.
		if c.Registers[op.X()] == c.Registers[op.Y()] {
			c.Counter += 2
		}

	case 0x6000:
		// Set VX to NN.
		c.Registers[op.X()] = op.NN()

	case 0x7000:
		// Add NN to VX with modulo-256 wraparound, no flag effect.
		c.Registers[op.X()] += op.NN()

	case 0x8000:
		return c.executeRegisterOp(op)

	case 0x9000:
		// Skip if VX != VY: not implemented.
		c.reportUnimplemented(op)

	case 0xA000:
		// Set I to address.
		c.Index = op.NNN()

	case 0xB000:
		// Jump to address plus V0.
		c.Counter = op.NNN() + uint16(c.Registers[0])

	case 0xC000:
		// Set VX to a random byte masked with NN.
		c.Registers[op.X()] = c.random.NextByte() & op.NN()

	case 0xD000:
		// Sprite draw with collision flag: not implemented.
		c.reportUnimplemented(op)

	case 0xE000:
		// Skip-on-key instructions: not implemented.
		c.reportUnimplemented(op)

	case 0xF000:
		return c.executeTimerMemoryOp(op)

	default:
		c.reportUnimplemented(op)
	}

	return nil
}

// executeRegisterOp handles the 0x8XYN family, dispatching on the low
// nibble mode field.
func (c *Chip8) executeRegisterOp(op Opcode) error {
	x, y := op.X(), op.Y()

	switch op.N() {
	case 0x0:
		c.Registers[x] = c.Registers[y]
	case 0x1:
		c.Registers[x] |= c.Registers[y]
	case 0x2:
		c.Registers[x] &= c.Registers[y]
	case 0x3:
		c.Registers[x] ^= c.Registers[y]
	case 0x4:
		// Add with carry into VF: not implemented. Must not corrupt state.
		c.reportUnimplemented(op)
	default:
		c.reportUnimplemented(op)
	}

	return nil
}

// executeTimerMemoryOp handles the 0xFXNN family, dispatching on the low
// byte mode field.
func (c *Chip8) executeTimerMemoryOp(op Opcode) error {
	x := op.X()

	switch op.NN() {
	case 0x07:
		// Read the delay timer into VX.
		c.Registers[x] = c.Delay

	case 0x0A:
		// Blocking key wait: not implemented.
		c.reportUnimplemented(op)

	case 0x15:
		// Set the delay timer from VX.
		c.Delay = c.Registers[x]

	case 0x18:
		// Set the sound timer from VX.
		c.Sound = c.Registers[x]

	case 0x1E:
		// Add VX to I as 16-bit addition; overflow past 0xFFF is allowed.
		c.Index += uint16(c.Registers[x])

	case 0x29:
		// Built-in glyph sprite address: not implemented.
		c.reportUnimplemented(op)

	case 0x33:
		// BCD decomposition store: not implemented.
		c.reportUnimplemented(op)

	case 0x55:
		// Store V0..=VX into memory starting at I, ascending.
		if int(c.Index)+int(x) >= MemorySize {
			return fmt.Errorf("%w: store 0x%04X..0x%04X", ErrMemoryOutOfRange, c.Index, int(c.Index)+int(x))
		}
		for i := uint8(0); i <= x; i++ {
			c.Memory[c.Index+uint16(i)] = c.Registers[i]
		}

	case 0x65:
		// Load memory starting at I into V0..=VX, ascending.
		if int(c.Index)+int(x) >= MemorySize {
			return fmt.Errorf("%w: load 0x%04X..0x%04X", ErrMemoryOutOfRange, c.Index, int(c.Index)+int(x))
		}
		for i := uint8(0); i <= x; i++ {
			c.Registers[i] = c.Memory[c.Index+uint16(i)]
		}

	default:
		c.reportUnimplemented(op)
	}

	return nil
}
