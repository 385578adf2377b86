package rom

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gochip8/internal/chip8"
)

func TestLoadFromReader(t *testing.T) {
	image := []byte{0x12, 0x00, 0x00, 0xE0}

	loaded, err := LoadFromReader(bytes.NewReader(image))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if loaded.Size() != len(image) {
		t.Errorf("Expected size %d, got %d", len(image), loaded.Size())
	}
	if !bytes.Equal(loaded, image) {
		t.Errorf("Expected image %X, got %X", image, loaded)
	}
}

func TestLoadFromReaderEmpty(t *testing.T) {
	_, err := LoadFromReader(bytes.NewReader(nil))
	if !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("Expected ErrEmptyImage, got %v", err)
	}
}

// Test the capacity boundary: exactly 4096-200 bytes loads, one more fails
func TestLoadFromReaderBoundary(t *testing.T) {
	exact := bytes.Repeat([]byte{0xAA}, chip8.MaxProgramSize)
	if _, err := LoadFromReader(bytes.NewReader(exact)); err != nil {
		t.Fatalf("Expected exact-size image to load, got %v", err)
	}

	oversized := bytes.Repeat([]byte{0xAA}, chip8.MaxProgramSize+1)
	_, err := LoadFromReader(bytes.NewReader(oversized))
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("Expected ErrImageTooLarge, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ch8")
	image := []byte{0x60, 0x42, 0x12, 0x00}
	if err := os.WriteFile(path, image, 0644); err != nil {
		t.Fatalf("Failed to write test ROM: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if !bytes.Equal(loaded, image) {
		t.Errorf("Expected image %X, got %X", image, loaded)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.ch8"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}
