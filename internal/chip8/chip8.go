// Package chip8 implements a CHIP-8 virtual machine core: the data model
// (memory map, registers, stack, framebuffer, key-edge state machine,
// timers), the opcode decoder, and the instruction execution semantics. The
// core has no dependency on any particular display, audio, or input stack —
// it is parameterized over a Host capability interface (see host.go) so it
// can be dropped into a desktop binary, a test harness, or a bare-metal
// target alike.
//
//		System memory map
// 		+---------------+= 0xFFF (4095) End Chip-8 RAM
// 		|               |
// 		| 0x200 to 0xFFF|
// 		|     Chip-8    |
// 		| Program / Data|
// 		|     Space     |
// 		|               |
// 		+---------------+= 0x200 (512) Start of most Chip-8 programs
// 		| 0x000 to 0x1FF|
// 		| Reserved for  |
// 		|  interpreter  |
// 		+---------------+= 0x000 (0) Begin Chip-8 RAM. Font data lives at FontsetStart.
package chip8

// Constants describing the fixed CHIP-8 machine shape.
const (
	MemoryLen     = 4096
	ProgramStart  = 0x200
	FontsetStart  = 0x050
	StackCapacity = 64
	KeyCount      = 16
)

// VM is a CHIP-8 virtual machine generic over its host capability type H.
// Using a type parameter rather than storing H behind the Host interface
// lets the compiler monomorphize TickChip's instruction dispatch per
// concrete host, avoiding interface-call overhead on the hot path — the Go
// analogue of the spec's "monomorphized for performance on embedded
// targets" guidance. A hosted target that wants dynamic dispatch can still
// instantiate VM[Host] directly.
type VM[H Host] struct {
	host H

	memory [MemoryLen]byte
	v      [16]byte
	i      uint16
	pc     uint16
	stack  [StackCapacity]uint16
	sp     int // number of entries currently on the stack
	gfx    Framebuffer
	keys   [KeyCount]KeyState
	delay  TimerCell
	sound  TimerCell
}

// newVM builds a zero-valued VM with its font loaded and timers installed.
// It is unexported: callers build a VM through Builder, which additionally
// requires a program image.
func newVM[H Host](host H) *VM[H] {
	vm := &VM[H]{
		host:  host,
		pc:    ProgramStart,
		delay: newTimerCell(),
		sound: newTimerCell(),
	}
	for i := range vm.keys {
		vm.keys[i] = Up
	}
	copy(vm.memory[FontsetStart:], fontset[:])
	return vm
}

// loadProgram copies prog into memory starting at ProgramStart. Bytes beyond
// the end of memory are discarded.
func (vm *VM[H]) loadProgram(prog []byte) {
	copy(vm.memory[ProgramStart:], prog)
}

// Host returns the VM's host capability value, for outer harnesses that need
// side-channel access to it (e.g. to poll whether a window was closed).
func (vm *VM[H]) Host() H {
	return vm.host
}

// FrameView returns a read-only snapshot of the current framebuffer without
// waiting for the next TickChip to present one.
func (vm *VM[H]) FrameView() FrameView {
	return vm.gfx.View()
}

// PC returns the current program counter. Exposed for tests and debugging
// harnesses; instruction execution is the only thing allowed to change it.
func (vm *VM[H]) PC() uint16 { return vm.pc }

// Register returns the current value of Vx.
func (vm *VM[H]) Register(x int) uint8 { return vm.v[x] }

// Index returns the current value of the I register.
func (vm *VM[H]) Index() uint16 { return vm.i }

// TickChip runs one fetch/decode/execute/present cycle. It should be called
// from an external ~500 Hz cadence. Key edges are advanced first, then one
// instruction is fetched from memory at PC, decoded, and executed; handlers
// that do not themselves assign PC have it advanced by 2. The cycle ends by
// presenting a read-only framebuffer view to the host. Any failure aborts
// the cycle and is returned to the caller with PC left at the failing
// instruction's address.
func (vm *VM[H]) TickChip() error {
	vm.updateKeys()

	word, err := vm.fetch()
	if err != nil {
		return err
	}

	instr, err := Decode(word)
	if err != nil {
		return err
	}

	if err := vm.execute(instr); err != nil {
		return err
	}

	vm.host.OnFrame(vm.gfx.View())
	return nil
}

// TickTimers decrements the delay and sound timers by one each. It should be
// called from an external 60 Hz cadence, independent of TickChip. It never
// touches CPU state, so it is the only VM method safe to call concurrently
// with TickChip, provided the TimerCell back-end in use supports it (the
// default, sync/atomic-backed cell does; the racytimer build's does not).
func (vm *VM[H]) TickTimers() {
	vm.delay.Decrement()

	switch vm.sound.Decrement() {
	case On:
		vm.host.SoundOn()
	case Off:
		vm.host.SoundOff()
	case Finished:
		// Call SoundOff on the Finished edge itself rather than waiting for
		// a subsequent Off tick; satisfies "SoundOff called at least once
		// after the timer reaches zero" without an extra tick of latency.
		vm.host.SoundOff()
	}
}

// updateKeys polls the host for raw key state and advances each of the 16
// key edges exactly once.
func (vm *VM[H]) updateKeys() {
	raw := vm.host.GetKeys()
	for i := range vm.keys {
		vm.keys[i] = vm.keys[i].Update(raw[i])
	}
}

// fetch reads the big-endian 16-bit instruction word at PC.
func (vm *VM[H]) fetch() (uint16, error) {
	if vm.pc+1 >= MemoryLen {
		return 0, ErrOutOfAddressSpace
	}
	return uint16(vm.memory[vm.pc])<<8 | uint16(vm.memory[vm.pc+1]), nil
}
