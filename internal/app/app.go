package app

import (
	"fmt"
	"log"

	"gochip8/internal/audio"
	"gochip8/internal/chip8"
	"gochip8/internal/graphics"
	"gochip8/internal/rom"
)

// Application wires the configuration, machine, display, beeper and
// emulator together and owns their lifecycle.
type Application struct {
	config   *Config
	machine  *chip8.Chip8
	display  graphics.Display
	beeper   audio.Beeper
	emulator *Emulator

	romLoaded bool
}

// NewApplication creates an application from the given config file.
// Headless mode forces the headless display backend regardless of config.
func NewApplication(configPath string, headless bool) (*Application, error) {
	config := NewConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}

	if headless {
		config.Video.Backend = "headless"
	}

	display, err := graphics.CreateDisplay(
		graphics.BackendType(config.Video.Backend),
		graphics.Config{
			WindowTitle: config.Window.Title,
			Scale:       config.Window.Scale,
			VSync:       config.Video.VSync,
			Debug:       config.Debug.EnableLogging,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create display backend: %v", err)
	}

	machine := chip8.New(display)
	machine.SetTraceLogging(config.Debug.TraceUnimplemented)

	beeper := newBeeper(config, headless)

	application := &Application{
		config:  config,
		machine: machine,
		display: display,
		beeper:  beeper,
	}
	application.emulator = NewEmulator(machine, display, beeper, config)

	return application, nil
}

// newBeeper selects the audio collaborator. Audio failures downgrade to the
// silent beeper instead of aborting startup.
func newBeeper(config *Config, headless bool) audio.Beeper {
	if headless || !config.Audio.Enabled {
		return audio.NullBeeper{}
	}

	beeper, err := audio.NewOtoBeeper(
		config.Audio.SampleRate,
		config.Audio.ToneFrequency,
		config.Audio.Volume,
	)
	if err != nil {
		log.Printf("audio unavailable, continuing silent: %v", err)
		return audio.NullBeeper{}
	}
	return beeper
}

// LoadROM reads a program image from disk and loads it into the machine.
func (a *Application) LoadROM(path string) error {
	image, err := rom.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("failed to load ROM %s: %w", path, err)
	}

	if err := a.machine.Load(image); err != nil {
		return fmt.Errorf("failed to load program into memory: %w", err)
	}

	a.romLoaded = true
	return nil
}

// Run drives the emulation through the display's presentation loop.
// maxFrames limits the run for automation; zero means run until the
// display closes or the machine faults.
func (a *Application) Run(maxFrames uint64) error {
	if !a.romLoaded {
		return fmt.Errorf("no ROM loaded")
	}

	return a.display.Run(func() error {
		if maxFrames > 0 && a.emulator.FrameCount() >= maxFrames {
			return a.display.Cleanup()
		}
		return a.emulator.StepFrame()
	})
}

// Cleanup releases display and audio resources.
func (a *Application) Cleanup() error {
	if err := a.beeper.Close(); err != nil {
		return fmt.Errorf("audio cleanup failed: %v", err)
	}
	return a.display.Cleanup()
}

// GetConfig returns the application configuration
func (a *Application) GetConfig() *Config {
	return a.config
}

// GetMachine returns the interpretation core
func (a *Application) GetMachine() *chip8.Chip8 {
	return a.machine
}

// GetEmulator returns the frame-pacing emulator
func (a *Application) GetEmulator() *Emulator {
	return a.emulator
}
