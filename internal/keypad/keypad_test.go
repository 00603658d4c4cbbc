package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestForRune(t *testing.T) {
	tests := []struct {
		r   rune
		key uint8
		ok  bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'q', 0x4, true},
		{'R', 0xD, true},
		{'f', 0xE, true},
		{'x', 0x0, true},
		{'V', 0xF, true},
		{'5', 0, false},
		{'p', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			key, ok := ForRune(tt.r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestAllKeysMapped(t *testing.T) {
	var seen [16]bool
	for _, key := range qwerty {
		seen[key] = true
	}
	for _, ok := range seen {
		assert.True(t, ok, "every keypad key needs a keyboard key")
	}
}
