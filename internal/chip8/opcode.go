package chip8

// Op names every decoded instruction shape. The payload each carries is
// documented per constant below; Decode fills in an Instruction value with
// exactly the fields the shape needs.
type Op int

const (
	OpClearScreen         Op = iota // 00E0
	OpReturn                        // 00EE
	OpMachineSubroutine              // 0NNN, nnn
	OpJump                          // 1NNN, nnn
	OpCall                          // 2NNN, nnn
	OpSkipEqImm                     // 3XNN, x, nn
	OpSkipNeqImm                    // 4XNN, x, nn
	OpSkipEqReg                     // 5XY0, x, y
	OpLoadImm                       // 6XNN, x, nn
	OpAddImm                        // 7XNN, x, nn
	OpLoadReg                       // 8XY0, x, y
	OpOr                            // 8XY1, x, y
	OpAnd                           // 8XY2, x, y
	OpXor                           // 8XY3, x, y
	OpAddReg                        // 8XY4, x, y
	OpSubReg                        // 8XY5, x, y
	OpShiftRight                    // 8XY6, x, y
	OpSubRegReverse                 // 8XY7, x, y
	OpShiftLeft                     // 8XYE, x, y
	OpSkipNeqReg                    // 9XY0, x, y
	OpLoadIndex                     // ANNN, nnn
	OpJumpPlusV0                    // BNNN, nnn
	OpRandom                        // CXNN, x, nn
	OpDraw                          // DXYN, x, y, n
	OpSkipKeyPressed                // EX9E, x
	OpSkipKeyNotPressed             // EXA1, x
	OpLoadDelay                     // FX07, x
	OpWaitKey                       // FX0A, x
	OpSetDelay                      // FX15, x
	OpSetSound                      // FX18, x
	OpAddIndex                      // FX1E, x
	OpLoadFontGlyph                 // FX29, x
	OpStoreBCD                      // FX33, x
	OpStoreRegisters                // FX55, x
	OpLoadRegisters                 // FX65, x
)

// Instruction is a decoded 16-bit CHIP-8 opcode. Only the fields relevant to
// Op are meaningful; the rest are zero.
type Instruction struct {
	Op  Op
	X   uint8
	Y   uint8
	N   uint8
	NN  uint8
	NNN uint16
}

// Decode splits a big-endian 16-bit instruction word into a tagged
// Instruction, or reports ErrMalformedOp if the word does not match any of
// the 35 known shapes. Decode never panics.
func Decode(word uint16) (Instruction, error) {
	a := byte(word >> 12 & 0xF)
	x := byte(word >> 8 & 0xF)
	y := byte(word >> 4 & 0xF)
	n := byte(word & 0xF)
	nn := byte(word & 0xFF)
	nnn := word & 0xFFF

	switch a {
	case 0x0:
		switch nnn {
		case 0x0E0:
			return Instruction{Op: OpClearScreen}, nil
		case 0x0EE:
			return Instruction{Op: OpReturn}, nil
		default:
			return Instruction{Op: OpMachineSubroutine, NNN: nnn}, nil
		}
	case 0x1:
		return Instruction{Op: OpJump, NNN: nnn}, nil
	case 0x2:
		return Instruction{Op: OpCall, NNN: nnn}, nil
	case 0x3:
		return Instruction{Op: OpSkipEqImm, X: x, NN: nn}, nil
	case 0x4:
		return Instruction{Op: OpSkipNeqImm, X: x, NN: nn}, nil
	case 0x5:
		if n != 0 {
			return Instruction{}, ErrMalformedOp
		}
		return Instruction{Op: OpSkipEqReg, X: x, Y: y}, nil
	case 0x6:
		return Instruction{Op: OpLoadImm, X: x, NN: nn}, nil
	case 0x7:
		return Instruction{Op: OpAddImm, X: x, NN: nn}, nil
	case 0x8:
		switch n {
		case 0x0:
			return Instruction{Op: OpLoadReg, X: x, Y: y}, nil
		case 0x1:
			return Instruction{Op: OpOr, X: x, Y: y}, nil
		case 0x2:
			return Instruction{Op: OpAnd, X: x, Y: y}, nil
		case 0x3:
			return Instruction{Op: OpXor, X: x, Y: y}, nil
		case 0x4:
			return Instruction{Op: OpAddReg, X: x, Y: y}, nil
		case 0x5:
			return Instruction{Op: OpSubReg, X: x, Y: y}, nil
		case 0x6:
			return Instruction{Op: OpShiftRight, X: x, Y: y}, nil
		case 0x7:
			return Instruction{Op: OpSubRegReverse, X: x, Y: y}, nil
		case 0xE:
			return Instruction{Op: OpShiftLeft, X: x, Y: y}, nil
		default:
			return Instruction{}, ErrMalformedOp
		}
	case 0x9:
		if n != 0 {
			return Instruction{}, ErrMalformedOp
		}
		return Instruction{Op: OpSkipNeqReg, X: x, Y: y}, nil
	case 0xA:
		return Instruction{Op: OpLoadIndex, NNN: nnn}, nil
	case 0xB:
		return Instruction{Op: OpJumpPlusV0, NNN: nnn}, nil
	case 0xC:
		return Instruction{Op: OpRandom, X: x, NN: nn}, nil
	case 0xD:
		return Instruction{Op: OpDraw, X: x, Y: y, N: n}, nil
	case 0xE:
		switch nn {
		case 0x9E:
			return Instruction{Op: OpSkipKeyPressed, X: x}, nil
		case 0xA1:
			return Instruction{Op: OpSkipKeyNotPressed, X: x}, nil
		default:
			return Instruction{}, ErrMalformedOp
		}
	case 0xF:
		switch nn {
		case 0x07:
			return Instruction{Op: OpLoadDelay, X: x}, nil
		case 0x0A:
			return Instruction{Op: OpWaitKey, X: x}, nil
		case 0x15:
			return Instruction{Op: OpSetDelay, X: x}, nil
		case 0x18:
			return Instruction{Op: OpSetSound, X: x}, nil
		case 0x1E:
			return Instruction{Op: OpAddIndex, X: x}, nil
		case 0x29:
			return Instruction{Op: OpLoadFontGlyph, X: x}, nil
		case 0x33:
			return Instruction{Op: OpStoreBCD, X: x}, nil
		case 0x55:
			return Instruction{Op: OpStoreRegisters, X: x}, nil
		case 0x65:
			return Instruction{Op: OpLoadRegisters, X: x}, nil
		default:
			return Instruction{}, ErrMalformedOp
		}
	default:
		return Instruction{}, ErrMalformedOp
	}
}

// Encode reconstructs the original 16-bit word for an Instruction. It is the
// inverse of Decode and is used by the decoder's round-trip property tests.
func (in Instruction) Encode() uint16 {
	switch in.Op {
	case OpClearScreen:
		return 0x00E0
	case OpReturn:
		return 0x00EE
	case OpMachineSubroutine:
		return in.NNN
	case OpJump:
		return 0x1000 | in.NNN
	case OpCall:
		return 0x2000 | in.NNN
	case OpSkipEqImm:
		return 0x3000 | uint16(in.X)<<8 | uint16(in.NN)
	case OpSkipNeqImm:
		return 0x4000 | uint16(in.X)<<8 | uint16(in.NN)
	case OpSkipEqReg:
		return 0x5000 | uint16(in.X)<<8 | uint16(in.Y)<<4
	case OpLoadImm:
		return 0x6000 | uint16(in.X)<<8 | uint16(in.NN)
	case OpAddImm:
		return 0x7000 | uint16(in.X)<<8 | uint16(in.NN)
	case OpLoadReg:
		return 0x8000 | uint16(in.X)<<8 | uint16(in.Y)<<4
	case OpOr:
		return 0x8001 | uint16(in.X)<<8 | uint16(in.Y)<<4
	case OpAnd:
		return 0x8002 | uint16(in.X)<<8 | uint16(in.Y)<<4
	case OpXor:
		return 0x8003 | uint16(in.X)<<8 | uint16(in.Y)<<4
	case OpAddReg:
		return 0x8004 | uint16(in.X)<<8 | uint16(in.Y)<<4
	case OpSubReg:
		return 0x8005 | uint16(in.X)<<8 | uint16(in.Y)<<4
	case OpShiftRight:
		return 0x8006 | uint16(in.X)<<8 | uint16(in.Y)<<4
	case OpSubRegReverse:
		return 0x8007 | uint16(in.X)<<8 | uint16(in.Y)<<4
	case OpShiftLeft:
		return 0x800E | uint16(in.X)<<8 | uint16(in.Y)<<4
	case OpSkipNeqReg:
		return 0x9000 | uint16(in.X)<<8 | uint16(in.Y)<<4
	case OpLoadIndex:
		return 0xA000 | in.NNN
	case OpJumpPlusV0:
		return 0xB000 | in.NNN
	case OpRandom:
		return 0xC000 | uint16(in.X)<<8 | uint16(in.NN)
	case OpDraw:
		return 0xD000 | uint16(in.X)<<8 | uint16(in.Y)<<4 | uint16(in.N)
	case OpSkipKeyPressed:
		return 0xE09E | uint16(in.X)<<8
	case OpSkipKeyNotPressed:
		return 0xE0A1 | uint16(in.X)<<8
	case OpLoadDelay:
		return 0xF007 | uint16(in.X)<<8
	case OpWaitKey:
		return 0xF00A | uint16(in.X)<<8
	case OpSetDelay:
		return 0xF015 | uint16(in.X)<<8
	case OpSetSound:
		return 0xF018 | uint16(in.X)<<8
	case OpAddIndex:
		return 0xF01E | uint16(in.X)<<8
	case OpLoadFontGlyph:
		return 0xF029 | uint16(in.X)<<8
	case OpStoreBCD:
		return 0xF033 | uint16(in.X)<<8
	case OpStoreRegisters:
		return 0xF055 | uint16(in.X)<<8
	case OpLoadRegisters:
		return 0xF065 | uint16(in.X)<<8
	default:
		return 0
	}
}
