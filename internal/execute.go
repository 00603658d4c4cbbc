package internal

import "fmt"

// execute applies the semantics of a decoded instruction. Every check that can
// fail runs before the first write so a failing instruction changes nothing.
func (vm *C8VM) execute(ins Instruction) error {
	regs := &vm.state.Registers
	mem := &vm.state.Memory
	x, y := ins.X, ins.Y
	vx, vy := regs.V[x], regs.V[y] // operands are read before any register is written

	switch ins.Op {
	case OpCls: // CLS
		vm.state.Display.clear()
		vm.drawFlag = true
	case OpRet: // RET
		addr, err := vm.state.Stack.Pop()
		if err != nil {
			return err
		}
		vm.state.PC = addr
		return nil
	case OpJp: // JP nnn
		vm.state.PC = ins.NNN
		return nil
	case OpCall: // CALL nnn
		if err := vm.state.Stack.Push(vm.state.PC + 2); err != nil {
			return err
		}
		vm.state.PC = ins.NNN
		return nil
	case OpSeByte: // SE Vx, kk
		vm.skipIf(vx == ins.KK)
		return nil
	case OpSneByte: // SNE Vx, kk
		vm.skipIf(vx != ins.KK)
		return nil
	case OpSeReg: // SE Vx, Vy
		vm.skipIf(vx == vy)
		return nil
	case OpSneReg: // SNE Vx, Vy
		vm.skipIf(vx != vy)
		return nil
	case OpLdByte: // LD Vx, kk
		regs.V[x] = ins.KK
	case OpAddByte: // ADD Vx, kk
		regs.V[x] = vx + ins.KK
	case OpLdReg: // LD Vx, Vy
		regs.V[x] = vy
	case OpOr: // OR Vx, Vy
		regs.V[x] = vx | vy
	case OpAnd: // AND Vx, Vy
		regs.V[x] = vx & vy
	case OpXor: // XOR Vx, Vy
		regs.V[x] = vx ^ vy
	case OpAddReg: // ADD Vx, Vy
		sum := uint16(vx) + uint16(vy)
		regs.V[x] = uint8(sum)
		regs.setFlag(sum > 0xFF)
	case OpSub: // SUB Vx, Vy
		regs.V[x] = vx - vy
		regs.setFlag(vx >= vy)
	case OpShr: // SHR Vx {, Vy}
		regs.V[x] = vx >> 1
		regs.setFlag(vx&0x01 == 0x01)
	case OpSubn: // SUBN Vx, Vy
		regs.V[x] = vy - vx
		regs.setFlag(vy >= vx)
	case OpShl: // SHL Vx {, Vy}
		regs.V[x] = vx << 1
		regs.setFlag(vx&0x80 == 0x80)
	case OpLdI: // LD I, nnn
		regs.I = ins.NNN
	case OpJpV0: // JP V0, nnn
		target := ins.NNN + uint16(regs.V[0])
		if target > maxAddress {
			return fmt.Errorf("jump to %04X: %w", target, ErrOutOfBounds)
		}
		vm.state.PC = target
		return nil
	case OpRnd: // RND Vx, kk
		regs.V[x] = uint8(vm.rnd.Uint32()) & ins.KK
	case OpDrw: // DRW Vx, Vy, n
		if err := mem.checkReadable(regs.I, int(ins.N)); err != nil {
			return err
		}
		sprite := mem[regs.I : int(regs.I)+int(ins.N)]
		collision := vm.state.Display.draw(vx, vy, sprite)
		regs.setFlag(collision)
		vm.drawFlag = true
	case OpSkp: // SKP Vx
		vm.skipIf(vm.isKeyPressed(vx))
		return nil
	case OpSknp: // SKNP Vx
		vm.skipIf(!vm.isKeyPressed(vx))
		return nil
	case OpLdVxDT: // LD Vx, DT
		regs.V[x] = regs.DelayTimer
	case OpLdVxK: // LD Vx, K
		key, ok := vm.firstPressedKey()
		if !ok {
			return errWaitingForKey
		}
		regs.V[x] = key
	case OpLdDTVx: // LD DT, Vx
		regs.DelayTimer = vx
	case OpLdSTVx: // LD ST, Vx
		regs.SoundTimer = vx
	case OpAddI: // ADD I, Vx
		target := regs.I + uint16(vx)
		if target > maxAddress {
			return fmt.Errorf("address register %04X: %w", target, ErrOutOfBounds)
		}
		regs.I = target
	case OpLdF: // LD F, Vx
		regs.I = FontAddress(vx)
	case OpLdB: // LD B, Vx
		if err := mem.checkWritable(regs.I, 3); err != nil {
			return err
		}
		mem[regs.I] = vx / 100
		mem[regs.I+1] = (vx / 10) % 10
		mem[regs.I+2] = vx % 10
	case OpLdIVx: // LD [I], Vx
		if err := mem.checkWritable(regs.I, int(x)+1); err != nil {
			return err
		}
		copy(mem[regs.I:], regs.V[:x+1])
	case OpLdVxI: // LD Vx, [I]
		if err := mem.checkReadable(regs.I, int(x)+1); err != nil {
			return err
		}
		copy(regs.V[:x+1], mem[regs.I:])
	default:
		return ErrUnsupportedInstruction
	}

	vm.state.PC += 2
	return nil
}

// skipIf advances past the current instruction and, when cond holds, past
// the following one as well.
func (vm *C8VM) skipIf(cond bool) {
	vm.state.PC += 2
	if cond {
		vm.state.PC += 2
	}
}

// firstPressedKey returns the lowest key id that is held down.
func (vm *C8VM) firstPressedKey() (uint8, bool) {
	for key := range uint8(KeyCount) {
		if vm.keys[key] {
			return key, true
		}
	}
	return 0, false
}
