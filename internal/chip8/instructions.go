package chip8

// execute dispatches a decoded Instruction. Every handler that does not
// itself assign pc has it advanced by 2 on success; skip-style handlers
// advance it by 4. Any error short-circuits the tick and leaves state as it
// was at the failing handler's entry (except partially completed FX55/FX65
// writes, which are not rolled back).
func (vm *VM[H]) execute(in Instruction) error {
	switch in.Op {
	case OpClearScreen:
		vm.gfx.Clear()
		vm.pc += 2
		return nil

	case OpReturn:
		if vm.sp == 0 {
			return ErrReturnWithoutCall
		}
		vm.sp--
		vm.pc = vm.stack[vm.sp]
		return nil

	case OpMachineSubroutine:
		return ErrUnsupportedMachineSubroutine

	case OpJump:
		if in.NNN < ProgramStart {
			return ErrJumpBeforeProgram
		}
		vm.pc = in.NNN
		return nil

	case OpCall:
		if in.NNN < ProgramStart {
			return ErrJumpBeforeProgram
		}
		if vm.sp >= StackCapacity {
			return ErrStackOverflow
		}
		vm.stack[vm.sp] = vm.pc
		vm.sp++
		vm.pc = in.NNN
		return nil

	case OpSkipEqImm:
		vm.skip(vm.v[in.X] == in.NN)
		return nil

	case OpSkipNeqImm:
		vm.skip(vm.v[in.X] != in.NN)
		return nil

	case OpSkipEqReg:
		vm.skip(vm.v[in.X] == vm.v[in.Y])
		return nil

	case OpLoadImm:
		vm.v[in.X] = in.NN
		vm.pc += 2
		return nil

	case OpAddImm:
		vm.v[in.X] += in.NN
		vm.pc += 2
		return nil

	case OpLoadReg:
		vm.v[in.X] = vm.v[in.Y]
		vm.pc += 2
		return nil

	case OpOr:
		vm.v[in.X] |= vm.v[in.Y]
		vm.pc += 2
		return nil

	case OpAnd:
		vm.v[in.X] &= vm.v[in.Y]
		vm.pc += 2
		return nil

	case OpXor:
		vm.v[in.X] ^= vm.v[in.Y]
		vm.pc += 2
		return nil

	case OpAddReg:
		sum := uint16(vm.v[in.X]) + uint16(vm.v[in.Y])
		vm.v[0xF] = boolByte(sum > 0xFF)
		vm.v[in.X] = byte(sum)
		vm.pc += 2
		return nil

	case OpSubReg:
		vm.v[0xF] = boolByte(vm.v[in.X] >= vm.v[in.Y])
		vm.v[in.X] = vm.v[in.X] - vm.v[in.Y]
		vm.pc += 2
		return nil

	case OpShiftRight:
		lsb := vm.v[in.Y] & 0x01
		vm.v[in.Y] = vm.v[in.Y] >> 1
		vm.v[in.X] = vm.v[in.Y]
		vm.v[0xF] = lsb
		vm.pc += 2
		return nil

	case OpSubRegReverse:
		vm.v[0xF] = boolByte(vm.v[in.Y] >= vm.v[in.X])
		vm.v[in.X] = vm.v[in.Y] - vm.v[in.X]
		vm.pc += 2
		return nil

	case OpShiftLeft:
		msb := (vm.v[in.Y] & 0x80) >> 7
		vm.v[in.Y] = vm.v[in.Y] << 1
		vm.v[in.X] = vm.v[in.Y]
		vm.v[0xF] = msb
		vm.pc += 2
		return nil

	case OpSkipNeqReg:
		vm.skip(vm.v[in.X] != vm.v[in.Y])
		return nil

	case OpLoadIndex:
		vm.i = in.NNN
		vm.pc += 2
		return nil

	case OpJumpPlusV0:
		target := in.NNN + uint16(vm.v[0])
		if target < ProgramStart {
			return ErrJumpBeforeProgram
		}
		if target >= MemoryLen {
			return ErrOutOfAddressSpace
		}
		vm.pc = target
		return nil

	case OpRandom:
		vm.v[in.X] = vm.host.Random() & in.NN
		vm.pc += 2
		return nil

	case OpDraw:
		return vm.draw(in)

	case OpSkipKeyPressed:
		vm.skip(vm.keyHeld(in.X))
		return nil

	case OpSkipKeyNotPressed:
		vm.skip(!vm.keyHeld(in.X))
		return nil

	case OpLoadDelay:
		vm.v[in.X] = vm.delay.Load()
		vm.pc += 2
		return nil

	case OpWaitKey:
		for k, st := range vm.keys {
			if st == Released {
				vm.v[in.X] = uint8(k)
				vm.pc += 2
				return nil
			}
		}
		// No release observed this tick: leave pc unchanged so the same
		// instruction re-executes next tick.
		return nil

	case OpSetDelay:
		vm.delay.Store(vm.v[in.X])
		vm.pc += 2
		return nil

	case OpSetSound:
		vm.sound.Store(vm.v[in.X])
		vm.pc += 2
		return nil

	case OpAddIndex:
		next := uint32(vm.i) + uint32(vm.v[in.X])
		if next >= MemoryLen {
			return ErrOutOfAddressSpace
		}
		vm.i = uint16(next)
		vm.pc += 2
		return nil

	case OpLoadFontGlyph:
		vm.i = FontsetStart + uint16(vm.v[in.X]&0x0F)*glyphBytes
		vm.pc += 2
		return nil

	case OpStoreBCD:
		if int(vm.i)+2 >= MemoryLen {
			return ErrOutOfAddressSpace
		}
		val := vm.v[in.X]
		vm.memory[vm.i] = val / 100
		vm.memory[vm.i+1] = (val / 10) % 10
		vm.memory[vm.i+2] = val % 10
		vm.pc += 2
		return nil

	case OpStoreRegisters:
		x := uint16(in.X)
		if vm.i+x >= MemoryLen-1 {
			return ErrOutOfAddressSpace
		}
		for k := uint16(0); k <= x; k++ {
			vm.memory[vm.i+k] = vm.v[k]
		}
		vm.i += x + 1
		vm.pc += 2
		return nil

	case OpLoadRegisters:
		x := uint16(in.X)
		if vm.i+x >= MemoryLen-1 {
			return ErrOutOfAddressSpace
		}
		for k := uint16(0); k <= x; k++ {
			vm.v[k] = vm.memory[vm.i+k]
		}
		vm.i += x + 1
		vm.pc += 2
		return nil

	default:
		return ErrMalformedOp
	}
}

// skip advances pc by 4 if cond holds, else by 2, implementing the
// skip-next-instruction family of opcodes.
func (vm *VM[H]) skip(cond bool) {
	if cond {
		vm.pc += 4
	} else {
		vm.pc += 2
	}
}

// keyHeld reports whether the key named by Vx is currently Pressed or Down.
// A Vx value of 16 or greater names no key and never reports held.
func (vm *VM[H]) keyHeld(x uint8) bool {
	idx := vm.v[x]
	if idx >= KeyCount {
		return false
	}
	st := vm.keys[idx]
	return st == Pressed || st == Down
}

// draw implements DXYN: an 8xN sprite read from memory[I:], XORed onto the
// framebuffer starting at (Vx mod 64, Vy mod 32) and clipped (not wrapped)
// at the right and bottom edges. VF is set if any source bit collided with
// an already-set framebuffer bit.
func (vm *VM[H]) draw(in Instruction) error {
	n := uint16(in.N)
	if uint32(vm.i)+uint32(n) > MemoryLen {
		return ErrOutOfAddressSpace
	}

	sx := int(vm.v[in.X]) % FrameWidth
	sy := int(vm.v[in.Y]) % FrameHeight

	rows := int(n)
	if sy+rows > FrameHeight {
		rows = FrameHeight - sy
	}
	cols := 8
	if sx+cols > FrameWidth {
		cols = FrameWidth - sx
	}

	collision := false
	for r := 0; r < rows; r++ {
		rowByte := vm.memory[vm.i+uint16(r)]
		for c := 0; c < cols; c++ {
			srcBit := rowByte&(0x80>>uint(c)) != 0
			if !srcBit {
				continue
			}
			px, py := sx+c, sy+r
			cur, _ := vm.gfx.Get(px, py)
			if cur {
				collision = true
			}
			_ = vm.gfx.Xor(px, py, true)
		}
	}

	vm.v[0xF] = boolByte(collision)
	vm.pc += 2
	return nil
}

// boolByte converts a bool to 0 or 1, matching the VF carry/borrow/collision
// convention used throughout the instruction set.
func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
