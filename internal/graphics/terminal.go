package graphics

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"gochip8/internal/chip8"
)

// TerminalDisplay implements Display with ANSI rendering on stdout. Each
// screen pixel becomes one block character cell.
type TerminalDisplay struct {
	config  Config
	running bool
	isTTY   bool
}

// NewTerminalDisplay creates a terminal display backend.
func NewTerminalDisplay(config Config) *TerminalDisplay {
	return &TerminalDisplay{
		config:  config,
		running: true,
		isTTY:   term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Clear resets every cell of the screen buffer and wipes the terminal.
func (d *TerminalDisplay) Clear(screen *chip8.Screen) {
	for row := range screen {
		for col := range screen[row] {
			screen[row][col] = false
		}
	}
	if d.isTTY {
		fmt.Print("\033[2J\033[H")
	}
}

// RenderFrame draws the screen buffer as block characters. Without a real
// TTY the frame is skipped rather than flooding a pipe with control codes.
func (d *TerminalDisplay) RenderFrame(screen *chip8.Screen) error {
	if !d.isTTY {
		return nil
	}

	var frame strings.Builder
	frame.Grow((chip8.ScreenWidth + 1) * chip8.ScreenHeight)

	// Home the cursor instead of clearing to avoid flicker
	frame.WriteString("\033[H")
	for row := range screen {
		for col := range screen[row] {
			if screen[row][col] {
				frame.WriteString("█")
			} else {
				frame.WriteByte(' ')
			}
		}
		frame.WriteByte('\n')
	}

	_, err := fmt.Print(frame.String())
	return err
}

// Run invokes update at roughly 60Hz until the display closes or update
// fails.
func (d *TerminalDisplay) Run(update func() error) error {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	if d.isTTY {
		fmt.Printf("\033]0;%s\007", d.config.WindowTitle)
		fmt.Print("\033[2J\033[H")
	}

	for d.running {
		if err := update(); err != nil {
			return err
		}
		<-ticker.C
	}
	return nil
}

// ShouldClose reports whether the display has been closed.
func (d *TerminalDisplay) ShouldClose() bool {
	return !d.running
}

// Cleanup stops the display and restores the cursor position.
func (d *TerminalDisplay) Cleanup() error {
	d.running = false
	if d.isTTY {
		fmt.Print("\033[0m\n")
	}
	return nil
}
