package internal

import "fmt"

// Op identifies the operation encoded by an instruction word.
type Op uint8

// Operations, named after their mnemonic and operand form.
const (
	OpUnknown Op = iota
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1nnn
	OpCall       // 2nnn
	OpSeByte     // 3xkk
	OpSneByte    // 4xkk
	OpSeReg      // 5xy0
	OpLdByte     // 6xkk
	OpAddByte    // 7xkk
	OpLdReg      // 8xy0
	OpOr         // 8xy1
	OpAnd        // 8xy2
	OpXor        // 8xy3
	OpAddReg     // 8xy4
	OpSub        // 8xy5
	OpShr        // 8xy6
	OpSubn       // 8xy7
	OpShl        // 8xyE
	OpSneReg     // 9xy0
	OpLdI        // Annn
	OpJpV0       // Bnnn
	OpRnd        // Cxkk
	OpDrw        // Dxyn
	OpSkp        // Ex9E
	OpSknp       // ExA1
	OpLdVxDT     // Fx07
	OpLdVxK      // Fx0A
	OpLdDTVx     // Fx15
	OpLdSTVx     // Fx18
	OpAddI       // Fx1E
	OpLdF        // Fx29
	OpLdB        // Fx33
	OpLdIVx      // Fx55
	OpLdVxI      // Fx65
)

var opNames = [...]string{
	OpUnknown: "UNKNOWN",
	OpCls:     "CLS",
	OpRet:     "RET",
	OpJp:      "JP",
	OpCall:    "CALL",
	OpSeByte:  "SE",
	OpSneByte: "SNE",
	OpSeReg:   "SE",
	OpLdByte:  "LD",
	OpAddByte: "ADD",
	OpLdReg:   "LD",
	OpOr:      "OR",
	OpAnd:     "AND",
	OpXor:     "XOR",
	OpAddReg:  "ADD",
	OpSub:     "SUB",
	OpShr:     "SHR",
	OpSubn:    "SUBN",
	OpShl:     "SHL",
	OpSneReg:  "SNE",
	OpLdI:     "LD",
	OpJpV0:    "JP",
	OpRnd:     "RND",
	OpDrw:     "DRW",
	OpSkp:     "SKP",
	OpSknp:    "SKNP",
	OpLdVxDT:  "LD",
	OpLdVxK:   "LD",
	OpLdDTVx:  "LD",
	OpLdSTVx:  "LD",
	OpAddI:    "ADD",
	OpLdF:     "LD",
	OpLdB:     "LD",
	OpLdIVx:   "LD",
	OpLdVxI:   "LD",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Instruction is a decoded instruction word with its operand fields.
type Instruction struct {
	Opcode uint16 // raw 16-bit instruction word
	Op     Op
	X      uint8  // the lower 4 bits of the high byte of the instruction
	Y      uint8  // the upper 4 bits of the low byte of the instruction
	N      uint8  // the lowest 4 bits of the instruction
	KK     uint8  // the lowest 8 bits of the instruction
	NNN    uint16 // the lowest 12 bits of the instruction
}

// Decode fetches the instruction word at pc and decodes it. It never
// modifies memory. Words with no defined operation decode to OpUnknown.
func Decode(mem *Memory, pc uint16) (Instruction, error) {
	if int(pc)+1 > maxAddress {
		return Instruction{}, fmt.Errorf("fetching at %04X: %w", pc, ErrDecode)
	}
	return DecodeWord(uint16(mem[pc])<<8 | uint16(mem[pc+1])), nil
}

// DecodeWord decodes a 16-bit instruction word.
func DecodeWord(opcode uint16) Instruction {
	ins := Instruction{
		Opcode: opcode,
		X:      uint8((opcode >> 8) & 0x000F),
		Y:      uint8((opcode >> 4) & 0x000F),
		N:      uint8(opcode & 0x000F),
		KK:     uint8(opcode & 0x00FF),
		NNN:    opcode & 0x0FFF,
	}
	ins.Op = decodeOp(opcode, ins.N, ins.KK)
	return ins
}

func decodeOp(opcode uint16, n, kk uint8) Op {
	switch opcode & 0xF000 { // Compare against the first 4 bits of the instruction only
	case 0x0000:
		switch opcode {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
	case 0x1000:
		return OpJp
	case 0x2000:
		return OpCall
	case 0x3000:
		return OpSeByte
	case 0x4000:
		return OpSneByte
	case 0x5000:
		if n == 0x0 {
			return OpSeReg
		}
	case 0x6000:
		return OpLdByte
	case 0x7000:
		return OpAddByte
	case 0x8000:
		switch n {
		case 0x0:
			return OpLdReg
		case 0x1:
			return OpOr
		case 0x2:
			return OpAnd
		case 0x3:
			return OpXor
		case 0x4:
			return OpAddReg
		case 0x5:
			return OpSub
		case 0x6:
			return OpShr
		case 0x7:
			return OpSubn
		case 0xE:
			return OpShl
		}
	case 0x9000:
		if n == 0x0 {
			return OpSneReg
		}
	case 0xA000:
		return OpLdI
	case 0xB000:
		return OpJpV0
	case 0xC000:
		return OpRnd
	case 0xD000:
		return OpDrw
	case 0xE000:
		switch kk {
		case 0x9E:
			return OpSkp
		case 0xA1:
			return OpSknp
		}
	case 0xF000:
		switch kk {
		case 0x07:
			return OpLdVxDT
		case 0x0A:
			return OpLdVxK
		case 0x15:
			return OpLdDTVx
		case 0x18:
			return OpLdSTVx
		case 0x1E:
			return OpAddI
		case 0x29:
			return OpLdF
		case 0x33:
			return OpLdB
		case 0x55:
			return OpLdIVx
		case 0x65:
			return OpLdVxI
		}
	}
	return OpUnknown
}
