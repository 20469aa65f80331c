package chip8

import "errors"

// Sentinel errors surfaced by decode and execute. Callers can compare against
// these with errors.Is even after a wrapping layer (e.g. github.com/pkg/errors
// at the CLI boundary) has attached call-site context.
var (
	// ErrMalformedOp is returned by Decode when a 16-bit word does not match
	// any of the 35 known instruction shapes.
	ErrMalformedOp = errors.New("chip8: malformed opcode")

	// ErrUnsupportedMachineSubroutine is returned when executing a 0NNN
	// instruction whose address is not 0x0E0 or 0x0EE.
	ErrUnsupportedMachineSubroutine = errors.New("chip8: unsupported machine subroutine (0NNN)")

	// ErrReturnWithoutCall is returned by 00EE when the call stack is empty.
	ErrReturnWithoutCall = errors.New("chip8: return without matching call")

	// ErrStackOverflow is returned by 2NNN when the call stack is already at
	// capacity (64 entries).
	ErrStackOverflow = errors.New("chip8: call stack overflow")

	// ErrJumpBeforeProgram is returned by 1NNN, 2NNN, and BNNN when the
	// target address falls below ProgramStart.
	ErrJumpBeforeProgram = errors.New("chip8: jump target below program start")

	// ErrOutOfAddressSpace is returned whenever a memory access, PC fetch, or
	// I mutation would reach or exceed MemoryLen.
	ErrOutOfAddressSpace = errors.New("chip8: access out of address space")

	// ErrOutOfBounds is returned by Framebuffer.Xor for coordinates outside
	// the 64x32 grid.
	ErrOutOfBounds = errors.New("chip8: pixel coordinate out of bounds")

	// ErrHostNotProvided is returned by Builder.Build when no host was
	// attached with WithHost.
	ErrHostNotProvided = errors.New("chip8: builder missing host")

	// ErrProgramNotProvided is returned by Builder.Build when no program was
	// attached with WithProgram.
	ErrProgramNotProvided = errors.New("chip8: builder missing program")
)
