// Package disasm converts CHIP-8 instruction words into assembly mnemonics.
package disasm

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction returns the mnemonic with operands for an instruction word,
// for example "LD V1, $0A". Words that are not instructions are rendered as
// a data word.
func Instruction(opcode uint16) string {
	name, ok := Name(opcode)
	if !ok {
		return fmt.Sprintf("DW $%04X", opcode)
	}
	if params := formatParams(opcode); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// Name returns the upper case instruction name for an instruction word.
func Name(opcode uint16) (string, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return strings.ToUpper(op.Instruction.Name), true
		}
	}
	return "", false
}

// formatParams formats the operands of an instruction word.
func formatParams(opcode uint16) string {
	x := extractRegisterX(opcode)
	y := extractRegisterY(opcode)
	kk := opcode & 0x00FF
	nnn := opcode & 0x0FFF

	switch opcode & 0xF000 {
	case 0x0000:
		if opcode == 0x00E0 || opcode == 0x00EE {
			return ""
		}
		return fmt.Sprintf("$%03X", nnn)
	case 0x1000, 0x2000:
		return fmt.Sprintf("$%03X", nnn)
	case 0x3000, 0x4000, 0x6000, 0x7000, 0xC000:
		return fmt.Sprintf("V%X, $%02X", x, kk)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0x8000:
		switch opcode & 0x000F {
		case 0x6, 0xE:
			return fmt.Sprintf("V%X", x)
		default:
			return fmt.Sprintf("V%X, V%X", x, y)
		}
	case 0xA000:
		return fmt.Sprintf("I, $%03X", nnn)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", nnn)
	case 0xD000:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, opcode&0x000F)
	case 0xE000:
		return fmt.Sprintf("V%X", x)
	case 0xF000:
		return formatMiscParams(x, kk)
	}
	return ""
}

// formatMiscParams formats the Fx.. timer, keypad and memory instructions.
func formatMiscParams(x, kk uint16) string {
	switch kk {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x1E:
		return fmt.Sprintf("I, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return fmt.Sprintf("V%X", x)
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
