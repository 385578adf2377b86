package app

import (
	"fmt"
	"time"

	"gochip8/internal/audio"
	"gochip8/internal/chip8"
	"gochip8/internal/graphics"
)

// Emulator paces the interpretation core: a fixed number of instruction
// steps per 60Hz frame, followed by one timer tick, a beeper update and a
// frame presentation.
type Emulator struct {
	machine *chip8.Chip8
	display graphics.Display
	beeper  audio.Beeper

	stepsPerFrame int

	// Performance tracking
	frameCount    uint64
	stepCount     uint64
	emulationTime time.Duration
	startTime     time.Time
}

// NewEmulator creates an emulator driving the given machine.
func NewEmulator(machine *chip8.Chip8, display graphics.Display, beeper audio.Beeper, config *Config) *Emulator {
	return &Emulator{
		machine:       machine,
		display:       display,
		beeper:        beeper,
		stepsPerFrame: config.StepsPerFrame(),
		startTime:     time.Now(),
	}
}

// StepFrame executes one frame: instruction steps, timer tick, beeper and
// display updates. A core fault stops the frame and propagates.
func (e *Emulator) StepFrame() error {
	frameStart := time.Now()

	for i := 0; i < e.stepsPerFrame; i++ {
		if err := e.machine.Step(); err != nil {
			return fmt.Errorf("execution fault at frame %d: %w", e.frameCount, err)
		}
		e.stepCount++
	}

	// The core leaves timer countdown to this driver
	e.machine.TickTimers()
	e.beeper.SetActive(e.machine.Sound > 0)

	if err := e.display.RenderFrame(&e.machine.Screen); err != nil {
		return fmt.Errorf("frame presentation failed: %v", err)
	}

	e.frameCount++
	e.emulationTime += time.Since(frameStart)
	return nil
}

// FrameCount returns the number of completed frames
func (e *Emulator) FrameCount() uint64 {
	return e.frameCount
}

// StepCount returns the number of executed instructions
func (e *Emulator) StepCount() uint64 {
	return e.stepCount
}

// UnimplementedCount returns the machine's unimplemented-opcode tally
func (e *Emulator) UnimplementedCount() uint64 {
	return e.machine.UnimplementedCount()
}

// Uptime returns the wall-clock time since the emulator was created
func (e *Emulator) Uptime() time.Duration {
	return time.Since(e.startTime)
}

// EmulationTime returns the cumulative time spent inside frames
func (e *Emulator) EmulationTime() time.Duration {
	return e.emulationTime
}
