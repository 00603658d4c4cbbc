// Package rom reads raw CHIP-8 program images from disk.
package rom

import (
	"errors"
	"fmt"
	"os"

	"github.com/mnafees/chopper/internal"
)

// ErrEmpty is returned for a program file without any content.
var ErrEmpty = errors.New("program file is empty")

// Load reads the program file at path and verifies that it fits into memory
// when loaded at entry. The file has no header, its bytes are the program.
func Load(path string, entry uint16) ([]byte, error) {
	if entry < internal.ReservedEnd || entry >= internal.TotalMemory {
		return nil, fmt.Errorf("entry %04X: %w", entry, internal.ErrInvalidEntryAddress)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	if maxSize := internal.TotalMemory - int(entry); len(data) > maxSize {
		return nil, fmt.Errorf("%s has %d bytes, %d available: %w",
			path, len(data), maxSize, internal.ErrProgramTooLarge)
	}
	return data, nil
}
