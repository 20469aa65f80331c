package chip8

// Builder composes a VM from a host capability and a program image. It
// mirrors the fluent value-object builder from the reference Rust
// implementation's own Builder type: each With* call returns the Builder by
// value so calls chain, and Build rejects incomplete configurations instead
// of guessing at defaults.
type Builder[H Host] struct {
	host      H
	hostSet   bool
	program   []byte
	programOK bool
}

// NewBuilder returns an empty Builder for host type H.
func NewBuilder[H Host]() Builder[H] {
	return Builder[H]{}
}

// WithHost attaches the host capability value the VM will drive.
func (b Builder[H]) WithHost(h H) Builder[H] {
	b.host = h
	b.hostSet = true
	return b
}

// WithProgram attaches the program image to load at ProgramStart. Any slice
// counts as "set", including an empty or nil one: such a VM only ever
// executes whatever memory beyond ProgramStart happens to contain.
func (b Builder[H]) WithProgram(prog []byte) Builder[H] {
	b.program = prog
	b.programOK = true
	return b
}

// Build validates the configuration and returns a ready-to-run VM, or
// ErrHostNotProvided / ErrProgramNotProvided if a required field is
// missing.
func (b Builder[H]) Build() (*VM[H], error) {
	if !b.hostSet {
		return nil, ErrHostNotProvided
	}
	if !b.programOK {
		return nil, ErrProgramNotProvided
	}
	vm := newVM[H](b.host)
	vm.loadProgram(b.program)
	return vm, nil
}
