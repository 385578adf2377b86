// Package app provides configuration management and emulator integration
// for the main application.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all application configuration
type Config struct {
	Window    WindowConfig    `json:"window"`
	Video     VideoConfig     `json:"video"`
	Audio     AudioConfig     `json:"audio"`
	Emulation EmulationConfig `json:"emulation"`
	Debug     DebugConfig     `json:"debug"`
	Paths     PathsConfig     `json:"paths"`

	// Internal state
	configPath string
	loaded     bool
}

// WindowConfig contains window-related configuration
type WindowConfig struct {
	Title string `json:"title"`
	Scale int    `json:"scale"` // screen-grid pixel multiplier
}

// VideoConfig contains display configuration
type VideoConfig struct {
	Backend string `json:"backend"` // "ebitengine", "terminal", "headless"
	VSync   bool   `json:"vsync"`
}

// AudioConfig contains beeper configuration
type AudioConfig struct {
	Enabled       bool    `json:"enabled"`
	SampleRate    int     `json:"sample_rate"`
	ToneFrequency float64 `json:"tone_frequency"` // beep pitch in Hz
	Volume        float32 `json:"volume"`
}

// EmulationConfig contains emulation-specific settings
type EmulationConfig struct {
	ClockHz int `json:"clock_hz"` // instruction rate
	TimerHz int `json:"timer_hz"` // delay/sound countdown rate
}

// DebugConfig contains debugging and development options
type DebugConfig struct {
	EnableLogging      bool `json:"enable_logging"`
	TraceUnimplemented bool `json:"trace_unimplemented"`
}

// PathsConfig contains file and directory paths
type PathsConfig struct {
	ROMs   string `json:"roms"`
	Config string `json:"config"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title: "gochip8",
			Scale: 10, // 640x320 window
		},
		Video: VideoConfig{
			Backend: "ebitengine",
			VSync:   true,
		},
		Audio: AudioConfig{
			Enabled:       true,
			SampleRate:    44100,
			ToneFrequency: 440.0,
			Volume:        0.25,
		},
		Emulation: EmulationConfig{
			ClockHz: 700, // common CHIP-8 interpreter speed
			TimerHz: 60,
		},
		Debug: DebugConfig{
			EnableLogging:      false,
			TraceUnimplemented: false,
		},
		Paths: PathsConfig{
			ROMs:   "./roms",
			Config: "./config",
		},
		loaded: false,
	}
}

// LoadFromFile loads configuration from a JSON file. A missing file saves
// the defaults instead of failing.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %v", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %v", err)
	}

	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}

	c.loaded = true
	return nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %v", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}

	c.configPath = path
	return nil
}

// validate checks configuration values and falls back to defaults for
// out-of-range entries
func (c *Config) validate() error {
	if c.Window.Scale <= 0 {
		c.Window.Scale = 10
	}

	switch c.Video.Backend {
	case "ebitengine", "terminal", "headless":
	case "":
		c.Video.Backend = "ebitengine"
	default:
		return fmt.Errorf("unknown video backend %q", c.Video.Backend)
	}

	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 44100
	}
	if c.Audio.ToneFrequency <= 0 {
		c.Audio.ToneFrequency = 440.0
	}
	if c.Audio.Volume < 0.0 || c.Audio.Volume > 1.0 {
		c.Audio.Volume = 0.25
	}

	if c.Emulation.ClockHz <= 0 {
		c.Emulation.ClockHz = 700
	}
	if c.Emulation.TimerHz <= 0 {
		c.Emulation.TimerHz = 60
	}

	return nil
}

// StepsPerFrame returns how many instructions run per timer frame
func (c *Config) StepsPerFrame() int {
	steps := c.Emulation.ClockHz / c.Emulation.TimerHz
	if steps < 1 {
		steps = 1
	}
	return steps
}

// IsLoaded returns whether the configuration was loaded from file
func (c *Config) IsLoaded() bool {
	return c.loaded
}

// GetConfigPath returns the path to the config file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	return "./config/gochip8.json"
}
