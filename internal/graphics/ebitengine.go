//go:build !headless
// +build !headless

package graphics

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"gochip8/internal/chip8"
)

// EbitengineDisplay implements Display using an Ebitengine window. The
// machine's screen buffer is copied into an RGBA frame on each render and
// scaled up to the window size.
type EbitengineDisplay struct {
	config  Config
	game    *ebitengineGame
	running bool
}

// ebitengineGame implements ebiten.Game for the CHIP-8 display
type ebitengineGame struct {
	display    *EbitengineDisplay
	updateFunc func() error
	frameImage *ebiten.Image
	// Reusable pixel buffer so Draw does not allocate per frame
	imageBuffer *image.RGBA
	scale       int
}

// NewEbitengineDisplay creates an Ebitengine display backend.
func NewEbitengineDisplay(config Config) (Display, error) {
	scale := config.Scale
	if scale <= 0 {
		scale = 10
	}

	display := &EbitengineDisplay{
		config:  config,
		running: true,
	}
	display.game = &ebitengineGame{
		display:     display,
		frameImage:  ebiten.NewImage(chip8.ScreenWidth, chip8.ScreenHeight),
		imageBuffer: image.NewRGBA(image.Rect(0, 0, chip8.ScreenWidth, chip8.ScreenHeight)),
		scale:       scale,
	}

	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowSize(chip8.ScreenWidth*scale, chip8.ScreenHeight*scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(config.VSync)

	return display, nil
}

// Clear resets every cell of the screen buffer.
func (d *EbitengineDisplay) Clear(screen *chip8.Screen) {
	for row := range screen {
		for col := range screen[row] {
			screen[row][col] = false
		}
	}
}

// RenderFrame copies the screen buffer into the frame image for the next
// Draw call.
func (d *EbitengineDisplay) RenderFrame(screen *chip8.Screen) error {
	if d.game == nil {
		return fmt.Errorf("display not initialized")
	}

	buffer := d.game.imageBuffer
	for row := 0; row < chip8.ScreenHeight; row++ {
		for col := 0; col < chip8.ScreenWidth; col++ {
			c := color.RGBA{A: 0xFF}
			if screen[row][col] {
				c = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
			}
			buffer.SetRGBA(col, row, c)
		}
	}
	d.game.frameImage.WritePixels(buffer.Pix)
	return nil
}

// Run hands control to Ebitengine's game loop; update runs once per frame.
func (d *EbitengineDisplay) Run(update func() error) error {
	d.game.updateFunc = update
	if err := ebiten.RunGame(d.game); err != nil {
		return fmt.Errorf("display loop failed: %v", err)
	}
	return nil
}

// ShouldClose reports whether the display has been closed.
func (d *EbitengineDisplay) ShouldClose() bool {
	return !d.running
}

// Cleanup stops the display.
func (d *EbitengineDisplay) Cleanup() error {
	d.running = false
	return nil
}

// Update advances the emulation by one frame.
func (g *ebitengineGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		g.display.running = false
	}
	if !g.display.running {
		return ebiten.Termination
	}
	if g.updateFunc != nil {
		return g.updateFunc()
	}
	return nil
}

// Draw presents the last rendered frame scaled to the window.
func (g *ebitengineGame) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.frameImage, nil)
}

// Layout fixes the logical resolution to the CHIP-8 grid; Ebitengine
// handles the scaling to the window size.
func (g *ebitengineGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return chip8.ScreenWidth, chip8.ScreenHeight
}
