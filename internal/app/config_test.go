package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	config := NewConfig()

	if config.Window.Scale != 10 {
		t.Errorf("Expected default scale 10, got %d", config.Window.Scale)
	}
	if config.Video.Backend != "ebitengine" {
		t.Errorf("Expected default backend ebitengine, got %q", config.Video.Backend)
	}
	if config.Emulation.ClockHz != 700 {
		t.Errorf("Expected default clock 700Hz, got %d", config.Emulation.ClockHz)
	}
	if config.Emulation.TimerHz != 60 {
		t.Errorf("Expected default timer rate 60Hz, got %d", config.Emulation.TimerHz)
	}
	if config.IsLoaded() {
		t.Error("Expected fresh config to report not loaded")
	}
}

func TestStepsPerFrame(t *testing.T) {
	tests := []struct {
		name     string
		clockHz  int
		timerHz  int
		expected int
	}{
		{"Default", 700, 60, 11},
		{"Exact", 600, 60, 10},
		{"SlowClockClampsToOne", 30, 60, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewConfig()
			config.Emulation.ClockHz = tt.clockHz
			config.Emulation.TimerHz = tt.timerHz
			if got := config.StepsPerFrame(); got != tt.expected {
				t.Errorf("Expected %d steps per frame, got %d", tt.expected, got)
			}
		})
	}
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "gochip8.json")

	original := NewConfig()
	original.Window.Scale = 4
	original.Video.Backend = "terminal"
	original.Emulation.ClockHz = 500
	if err := original.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded := NewConfig()
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if loaded.Window.Scale != 4 {
		t.Errorf("Expected scale 4, got %d", loaded.Window.Scale)
	}
	if loaded.Video.Backend != "terminal" {
		t.Errorf("Expected backend terminal, got %q", loaded.Video.Backend)
	}
	if loaded.Emulation.ClockHz != 500 {
		t.Errorf("Expected clock 500Hz, got %d", loaded.Emulation.ClockHz)
	}
	if !loaded.IsLoaded() {
		t.Error("Expected loaded config to report loaded")
	}
}

// A missing config file writes the defaults instead of failing
func TestConfigLoadMissingFileSavesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gochip8.json")

	config := NewConfig()
	if err := config.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected defaults to be saved: %v", err)
	}
}

func TestConfigValidationClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gochip8.json")
	raw := `{"window":{"scale":-1},"video":{"backend":"headless"},` +
		`"audio":{"enabled":true,"sample_rate":0,"tone_frequency":-5,"volume":2.0},` +
		`"emulation":{"clock_hz":0,"timer_hz":0}}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config := NewConfig()
	if err := config.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Window.Scale != 10 {
		t.Errorf("Expected clamped scale 10, got %d", config.Window.Scale)
	}
	if config.Audio.SampleRate != 44100 {
		t.Errorf("Expected clamped sample rate, got %d", config.Audio.SampleRate)
	}
	if config.Audio.Volume != 0.25 {
		t.Errorf("Expected clamped volume, got %f", config.Audio.Volume)
	}
	if config.Emulation.ClockHz != 700 || config.Emulation.TimerHz != 60 {
		t.Errorf("Expected clamped emulation rates, got %d/%d",
			config.Emulation.ClockHz, config.Emulation.TimerHz)
	}
}

func TestConfigRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gochip8.json")
	if err := os.WriteFile(path, []byte(`{"video":{"backend":"sdl2"}}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config := NewConfig()
	if err := config.LoadFromFile(path); err == nil {
		t.Fatal("Expected error for unknown backend")
	}
}
