package rom

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mnafees/chopper/internal"
	"github.com/retroenv/retrogolib/assert"
)

func writeFile(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.ch8")
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i)
	}
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		entry   uint16
		wantErr error
	}{
		{"small program", 32, internal.PCStartAddr, nil},
		{"largest program", internal.TotalMemory - internal.PCStartAddr, internal.PCStartAddr, nil},
		{"too large", internal.TotalMemory - internal.PCStartAddr + 1, internal.PCStartAddr, internal.ErrProgramTooLarge},
		{"too large for eti", internal.TotalMemory - internal.PCStartAddrETI + 1, internal.PCStartAddrETI, internal.ErrProgramTooLarge},
		{"empty", 0, internal.PCStartAddr, ErrEmpty},
		{"reserved entry", 32, 0x1FE, internal.ErrInvalidEntryAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.size)
			data, err := Load(path, tt.entry)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Equal(t, 0, len(data))
				return
			}
			assert.NoError(t, err)
			assert.Len(t, data, tt.size)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.ch8"), internal.PCStartAddr)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadIntoVM(t *testing.T) {
	path := writeFile(t, 16)
	data, err := Load(path, internal.PCStartAddrETI)
	assert.NoError(t, err)

	vm := internal.NewC8VM()
	assert.NoError(t, vm.LoadProgram(data, internal.PCStartAddrETI))
	assert.Equal(t, uint16(internal.PCStartAddrETI), vm.PC())
}
