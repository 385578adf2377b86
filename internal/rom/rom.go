// Package rom implements program image loading and validation for the
// CHIP-8 machine.
package rom

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gochip8/internal/chip8"
)

// ROM is a validated program image ready to be copied into machine memory.
type ROM []byte

var (
	// ErrEmptyImage is returned for a zero-length program image
	ErrEmptyImage = errors.New("program image is empty")
	// ErrImageTooLarge is returned when the image cannot fit between the
	// program origin and the top of memory
	ErrImageTooLarge = errors.New("program image exceeds memory capacity")
)

// LoadFromFile reads and validates a program image from disk.
func LoadFromFile(filename string) (ROM, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadFromReader(file)
}

// LoadFromReader reads and validates a program image from an io.Reader.
// The source is opaque to the machine; only the size contract is enforced
// here, before any machine state is touched.
func LoadFromReader(r io.Reader) (ROM, error) {
	// Read one byte past the limit so oversized images are detected
	// without buffering arbitrarily large input.
	data, err := io.ReadAll(io.LimitReader(r, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read program image: %v", err)
	}

	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if len(data) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrImageTooLarge, chip8.MaxProgramSize)
	}

	return ROM(data), nil
}

// Size returns the image length in bytes.
func (r ROM) Size() int {
	return len(r)
}
