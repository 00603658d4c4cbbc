package internal

import "fmt"

// Memory layout constants
const (
	TotalMemory      = 0x1000
	ReservedEnd      = 0x200 // first address available to programs
	PCStartAddr      = 0x200
	PCStartAddrETI   = 0x600 // programs written for the ETI 660
	FontStartAddr    = 0x000
	FontGlyphSize    = 5
	maxAddress       = TotalMemory - 1
	fontGlyphCount   = 16
	fontsetTotalSize = fontGlyphCount * FontGlyphSize
)

var fontset = [fontsetTotalSize]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4 KB address space of the VM. The array makes a plain
// assignment a deep copy.
type Memory [TotalMemory]uint8

func newMemory() Memory {
	var m Memory
	copy(m[FontStartAddr:], fontset[:])
	return m
}

// checkReadable verifies that count bytes starting at addr are inside memory.
func (m *Memory) checkReadable(addr uint16, count int) error {
	if count == 0 {
		return nil
	}
	if int(addr)+count-1 > maxAddress {
		return fmt.Errorf("reading %d bytes at %04X: %w", count, addr, ErrOutOfBounds)
	}
	return nil
}

// checkWritable verifies that count bytes starting at addr are inside program memory.
func (m *Memory) checkWritable(addr uint16, count int) error {
	if addr < ReservedEnd || int(addr)+count-1 > maxAddress {
		return fmt.Errorf("writing %d bytes at %04X: %w", count, addr, ErrOutOfBounds)
	}
	return nil
}

// load copies a program image into memory starting at entry.
func (m *Memory) load(data []byte, entry uint16) error {
	if entry < ReservedEnd || entry > maxAddress {
		return fmt.Errorf("entry %04X: %w", entry, ErrInvalidEntryAddress)
	}
	if len(data) > TotalMemory-int(entry) {
		return fmt.Errorf("%d bytes at %04X: %w", len(data), entry, ErrProgramTooLarge)
	}
	copy(m[entry:], data)
	return nil
}

// FontAddress returns the address of the glyph for the hex digit in the low
// nibble of digit.
func FontAddress(digit uint8) uint16 {
	return FontStartAddr + uint16(digit&0x0F)*FontGlyphSize
}
