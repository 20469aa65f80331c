package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1: a zero word at PC=0x200 decodes as 0NNN{0}, which always fails
// to execute with ErrUnsupportedMachineSubroutine.
func TestTickChip_ZeroWordIsUnsupportedMachineSubroutine(t *testing.T) {
	vm, _ := newTestVM(nil)
	err := vm.TickChip()
	assert.ErrorIs(t, err, ErrUnsupportedMachineSubroutine)
	assert.Equal(t, uint16(ProgramStart), vm.PC())
}

// The quantified property behind scenario 2: for any register and immediate,
// 6XNN followed by 3XNN with the same value advances PC by 4 (the skip
// fires) rather than 2.
func TestTickChip_LoadThenSkipEqualAdvancesByFour(t *testing.T) {
	program := []byte{0x61, 0x2A, 0x31, 0x2A} // 6XNN V1=0x2A; 3XNN skip if V1==0x2A
	vm, _ := newTestVM(program)

	require.NoError(t, vm.TickChip())
	startOfSkip := vm.PC()

	require.NoError(t, vm.TickChip())
	assert.Equal(t, startOfSkip+4, vm.PC())
	assert.Equal(t, byte(0x2A), vm.Register(1))
}

// Scenario 3: FX29 followed by DXYN draws the built-in 'F' glyph.
func TestExecute_DrawFontGlyph(t *testing.T) {
	vm, host := newTestVM(nil)
	vm.v[0] = 2    // x
	vm.v[1] = 1    // y
	vm.v[2] = 0x0F // digit F

	loadGlyph, err := Decode(0xF229)
	require.NoError(t, err)
	require.NoError(t, vm.execute(loadGlyph))
	assert.Equal(t, FontsetStart+15*uint16(glyphBytes), vm.i)

	draw, err := Decode(0xD015)
	require.NoError(t, err)
	require.NoError(t, vm.execute(draw))

	wantRows := [][4]bool{
		{true, true, true, true},
		{true, false, false, false},
		{true, true, true, true},
		{true, false, false, false},
		{true, false, false, false},
	}
	for r, want := range wantRows {
		for c := 0; c < 4; c++ {
			got, ok := vm.gfx.Get(2+c, 1+r)
			require.True(t, ok)
			assert.Equalf(t, want[c], got, "row %d col %d", r, c)
		}
	}
	assert.Equal(t, byte(0), vm.v[0xF])
	_ = host
}

// Redrawing the same sprite at the same place a second time restores the
// framebuffer to blank and reports a collision on VF.
func TestExecute_DrawTwiceIsSelfInverse(t *testing.T) {
	vm, _ := newTestVM(nil)
	vm.v[0], vm.v[1], vm.v[2] = 2, 1, 0x0F
	require.NoError(t, vm.execute(Instruction{Op: OpLoadFontGlyph, X: 2}))

	require.NoError(t, vm.execute(Instruction{Op: OpDraw, X: 0, Y: 1, N: 5}))
	assert.Equal(t, byte(0), vm.v[0xF])

	require.NoError(t, vm.execute(Instruction{Op: OpDraw, X: 0, Y: 1, N: 5}))
	assert.Equal(t, byte(1), vm.v[0xF])

	for y := 0; y < FrameHeight; y++ {
		for x := 0; x < FrameWidth; x++ {
			on, _ := vm.gfx.Get(x, y)
			assert.Falsef(t, on, "(%d,%d) should be cleared after self-inverse draw", x, y)
		}
	}
}

func TestExecute_DrawClipsAtEdges(t *testing.T) {
	vm, _ := newTestVM(nil)
	vm.i = FontsetStart
	vm.v[0] = FrameWidth - 2
	vm.v[1] = FrameHeight - 1
	require.NoError(t, vm.execute(Instruction{Op: OpDraw, X: 0, Y: 1, N: 5}))
	// Must not panic and must only have touched in-bounds pixels; sanity
	// check a pixel that would have been off the right edge stays unset:
	// column 2 of the glyph's lit first row would wrap to (0, FrameHeight-1).
	on, ok := vm.gfx.Get(0, FrameHeight-1)
	assert.True(t, ok)
	assert.False(t, on)
}

// Scenario 4: 00EE on an empty stack.
func TestExecute_ReturnWithoutCall(t *testing.T) {
	vm, _ := newTestVM(nil)
	err := vm.execute(Instruction{Op: OpReturn})
	assert.ErrorIs(t, err, ErrReturnWithoutCall)
}

// Scenario 5: 8XY5 borrow semantics, twice.
func TestExecute_SubReg(t *testing.T) {
	vm, _ := newTestVM(nil)
	vm.v[0] = 0x05
	vm.v[1] = 0x04

	require.NoError(t, vm.execute(Instruction{Op: OpSubReg, X: 0, Y: 1}))
	assert.Equal(t, byte(0x01), vm.v[0])
	assert.Equal(t, byte(1), vm.v[0xF])

	require.NoError(t, vm.execute(Instruction{Op: OpSubReg, X: 0, Y: 1}))
	assert.Equal(t, byte(0xFD), vm.v[0])
	assert.Equal(t, byte(0), vm.v[0xF])
}

// Scenario 6: 101 timer ticks from 101 reaches zero, and sound_off fires.
func TestTickTimers_HandlesSoundTransitions(t *testing.T) {
	vm, host := newTestVM(nil)
	vm.delay.Store(101)
	vm.sound.Store(3)

	for i := 0; i < 101; i++ {
		vm.TickTimers()
	}

	assert.Equal(t, uint8(0), vm.delay.Load())
	assert.Equal(t, uint8(0), vm.sound.Load())
	assert.GreaterOrEqual(t, host.soundOffs, 1)
}

func TestTickChip_CallsHostCapabilities(t *testing.T) {
	program := []byte{0xC0, 0xFF} // CXNN: V0 = random() & 0xFF
	vm, host := newTestVM(program)
	host.randByte = 0x3C

	require.NoError(t, vm.TickChip())

	assert.Equal(t, byte(0x3C), vm.Register(0))
	require.Len(t, host.frames, 1)
}

func TestExecute_CallAndReturn(t *testing.T) {
	vm, _ := newTestVM(nil)
	require.NoError(t, vm.execute(Instruction{Op: OpCall, NNN: 0x300}))
	assert.Equal(t, uint16(0x300), vm.pc)
	assert.Equal(t, 1, vm.sp)

	require.NoError(t, vm.execute(Instruction{Op: OpReturn}))
	assert.Equal(t, uint16(ProgramStart), vm.pc)
	assert.Equal(t, 0, vm.sp)
}

func TestExecute_CallStackOverflow(t *testing.T) {
	vm, _ := newTestVM(nil)
	for i := 0; i < StackCapacity; i++ {
		require.NoError(t, vm.execute(Instruction{Op: OpCall, NNN: 0x300}))
	}
	err := vm.execute(Instruction{Op: OpCall, NNN: 0x300})
	assert.ErrorIs(t, err, ErrStackOverflow)
}

func TestExecute_JumpBeforeProgram(t *testing.T) {
	vm, _ := newTestVM(nil)
	assert.ErrorIs(t, vm.execute(Instruction{Op: OpJump, NNN: 0x100}), ErrJumpBeforeProgram)
	assert.ErrorIs(t, vm.execute(Instruction{Op: OpCall, NNN: 0x100}), ErrJumpBeforeProgram)
}

// FX55 followed by FX65 with the same I restores V0..Vx and leaves I
// advanced by 2(x+1) in total, for every possible x.
func TestExecute_StoreThenLoadRegistersRoundTrip(t *testing.T) {
	for x := 0; x < 16; x++ {
		vm, _ := newTestVM(nil)
		for k := 0; k <= x; k++ {
			vm.v[k] = byte(k*7 + 1)
		}
		vm.i = 0x300

		require.NoError(t, vm.execute(Instruction{Op: OpStoreRegisters, X: uint8(x)}))
		assert.Equal(t, uint16(0x300+x+1), vm.i)

		saved := vm.v
		for k := range vm.v {
			vm.v[k] = 0
		}
		vm.i = 0x300

		require.NoError(t, vm.execute(Instruction{Op: OpLoadRegisters, X: uint8(x)}))
		assert.Equal(t, uint16(0x300+x+1), vm.i)
		for k := 0; k <= x; k++ {
			assert.Equalf(t, saved[k], vm.v[k], "V%d", k)
		}
	}
}

func TestExecute_AddIndexUsesVx(t *testing.T) {
	vm, _ := newTestVM(nil)
	vm.i = 0x10
	vm.v[0] = 1
	vm.v[5] = 0x20
	require.NoError(t, vm.execute(Instruction{Op: OpAddIndex, X: 5}))
	assert.Equal(t, uint16(0x30), vm.i)
}

func TestExecute_StoreBCD(t *testing.T) {
	vm, _ := newTestVM(nil)
	vm.i = 0x300
	vm.v[3] = 231
	require.NoError(t, vm.execute(Instruction{Op: OpStoreBCD, X: 3}))
	assert.Equal(t, byte(2), vm.memory[0x300])
	assert.Equal(t, byte(3), vm.memory[0x301])
	assert.Equal(t, byte(1), vm.memory[0x302])
}

func TestExecute_WaitKeyTriggersOnReleaseEdge(t *testing.T) {
	vm, host := newTestVM(nil)

	host.keys[3] = true
	vm.updateKeys() // key 3 -> Pressed
	pcBefore := vm.PC()

	instr, err := Decode(0xF00A) // FX0A x=0
	require.NoError(t, err)
	require.NoError(t, vm.execute(instr))
	assert.Equal(t, pcBefore, vm.pc, "no release yet: pc must not advance")

	vm.keys[3] = vm.keys[3].Update(false) // manually drive the edge to Released
	require.NoError(t, vm.execute(instr))
	assert.Equal(t, pcBefore+2, vm.pc)
	assert.Equal(t, byte(3), vm.v[0])
}

func TestExecute_KeyPressedSkips(t *testing.T) {
	vm, _ := newTestVM(nil)
	vm.keys[5] = Down
	vm.v[0] = 5

	require.NoError(t, vm.execute(Instruction{Op: OpSkipKeyPressed, X: 0}))
	assert.Equal(t, uint16(ProgramStart+4), vm.pc)
}

func TestExecute_OutOfRangeKeyNeverSkipsOnPressed(t *testing.T) {
	vm, _ := newTestVM(nil)
	vm.v[0] = 20 // out of range
	require.NoError(t, vm.execute(Instruction{Op: OpSkipKeyPressed, X: 0}))
	assert.Equal(t, uint16(ProgramStart+2), vm.pc)

	vm.pc = ProgramStart
	require.NoError(t, vm.execute(Instruction{Op: OpSkipKeyNotPressed, X: 0}))
	assert.Equal(t, uint16(ProgramStart+4), vm.pc)
}

func TestFetch_OutOfAddressSpace(t *testing.T) {
	vm, _ := newTestVM(nil)
	vm.pc = MemoryLen - 1
	err := vm.TickChip()
	assert.ErrorIs(t, err, ErrOutOfAddressSpace)
}
