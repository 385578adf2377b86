package chip8

// Opcode is a single 16-bit CHIP-8 instruction word, fetched big-endian
// from memory and decomposed into fields on demand.
type Opcode uint16

// Field extraction uses the fixed masks of the CHIP-8 encoding. All
// accessors are pure and total over the full 16-bit range.

// NNN returns the 12-bit address field (low 12 bits).
func (op Opcode) NNN() uint16 {
	return uint16(op & 0x0FFF)
}

// NN returns the 8-bit immediate field (low byte).
func (op Opcode) NN() uint8 {
	return uint8(op & 0x00FF)
}

// N returns the 4-bit immediate field (low nibble).
func (op Opcode) N() uint8 {
	return uint8(op & 0x000F)
}

// X returns the first register selector (bits 8-11).
func (op Opcode) X() uint8 {
	return uint8((op & 0x0F00) >> 8)
}

// Y returns the second register selector (bits 4-7).
func (op Opcode) Y() uint8 {
	return uint8((op & 0x00F0) >> 4)
}

// Family returns the top nibble used for primary dispatch.
func (op Opcode) Family() uint8 {
	return uint8(op >> 12)
}
