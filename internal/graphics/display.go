// Package graphics provides display backends for presenting the CHIP-8
// screen buffer.
package graphics

import (
	"fmt"

	"gochip8/internal/chip8"
)

// Display presents the machine's pixel grid. It also satisfies the core's
// renderer capability: the machine delegates screen clearing here.
type Display interface {
	// Clear resets every cell of the shared screen buffer
	Clear(screen *chip8.Screen)

	// RenderFrame presents the current screen buffer
	RenderFrame(screen *chip8.Screen) error

	// Run drives the presentation loop, invoking update once per frame
	// until the display closes or update fails
	Run(update func() error) error

	// ShouldClose reports whether the display has been closed
	ShouldClose() bool

	// Cleanup releases display resources
	Cleanup() error
}

// Config contains configuration shared by all display backends.
type Config struct {
	WindowTitle string
	Scale       int // pixel multiplier for the 64x32 grid
	VSync       bool
	Debug       bool
}

// BackendType selects a display backend implementation.
type BackendType string

const (
	BackendEbitengine BackendType = "ebitengine"
	BackendTerminal   BackendType = "terminal"
	BackendHeadless   BackendType = "headless"
)

// CreateDisplay creates a display backend of the specified type.
func CreateDisplay(backendType BackendType, config Config) (Display, error) {
	switch backendType {
	case BackendEbitengine:
		return NewEbitengineDisplay(config)
	case BackendTerminal:
		return NewTerminalDisplay(config), nil
	case BackendHeadless:
		return NewHeadlessDisplay(config), nil
	default:
		return nil, fmt.Errorf("unknown display backend %q", backendType)
	}
}
