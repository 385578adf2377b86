package graphics

import (
	"time"

	"gochip8/internal/chip8"
)

// HeadlessDisplay implements Display for display-less operation. Clearing
// still resets the shared buffer so the machine's observable state stays
// correct; presentation is a counted no-op.
type HeadlessDisplay struct {
	config     Config
	running    bool
	clearCount int
	frameCount int
}

// NewHeadlessDisplay creates a headless display backend.
func NewHeadlessDisplay(config Config) *HeadlessDisplay {
	return &HeadlessDisplay{
		config:  config,
		running: true,
	}
}

// Clear resets every cell of the screen buffer.
func (d *HeadlessDisplay) Clear(screen *chip8.Screen) {
	d.clearCount++
	for row := range screen {
		for col := range screen[row] {
			screen[row][col] = false
		}
	}
}

// RenderFrame counts the frame and discards it.
func (d *HeadlessDisplay) RenderFrame(screen *chip8.Screen) error {
	d.frameCount++
	return nil
}

// Run invokes update at roughly 60Hz until the display closes or update
// fails. Pacing matches the terminal backend so an unbounded run does not
// spin a core.
func (d *HeadlessDisplay) Run(update func() error) error {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for d.running {
		if err := update(); err != nil {
			return err
		}
		<-ticker.C
	}
	return nil
}

// ShouldClose reports whether the display has been closed.
func (d *HeadlessDisplay) ShouldClose() bool {
	return !d.running
}

// Cleanup stops the display.
func (d *HeadlessDisplay) Cleanup() error {
	d.running = false
	return nil
}

// ClearCount returns how many clear operations were requested.
func (d *HeadlessDisplay) ClearCount() int {
	return d.clearCount
}

// FrameCount returns how many frames were presented.
func (d *HeadlessDisplay) FrameCount() int {
	return d.frameCount
}
