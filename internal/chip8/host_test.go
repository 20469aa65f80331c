package chip8

// fakeHost is a minimal, deterministic Host implementation used across the
// package's tests. It records the frames it is shown and lets a test script
// drive keys and the random byte returned by CXNN.
type fakeHost struct {
	keys      [KeyCount]bool
	randByte  uint8
	frames    []FrameView
	soundOns  int
	soundOffs int
}

func (h *fakeHost) GetKeys() [KeyCount]bool { return h.keys }

func (h *fakeHost) OnFrame(v FrameView) { h.frames = append(h.frames, v) }

func (h *fakeHost) SoundOn() { h.soundOns++ }

func (h *fakeHost) SoundOff() { h.soundOffs++ }

func (h *fakeHost) Random() uint8 { return h.randByte }

func newTestVM(program []byte) (*VM[*fakeHost], *fakeHost) {
	host := &fakeHost{}
	vm, err := NewBuilder[*fakeHost]().WithHost(host).WithProgram(program).Build()
	if err != nil {
		panic(err)
	}
	return vm, host
}
