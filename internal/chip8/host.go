package chip8

// Host is the capability contract the VM core needs from its environment.
// The core never imports a display, audio, or input package directly; it is
// parameterized over any type satisfying Host, so a test double, a desktop
// window, or a bare-metal driver are all equally valid hosts.
type Host interface {
	// GetKeys reports the raw pressed/released state of all 16 keys. Called
	// once per CPU tick, before decode.
	GetKeys() [KeyCount]bool

	// OnFrame is called at the end of every successful CPU tick with a
	// read-only snapshot of the framebuffer.
	OnFrame(FrameView)

	// SoundOn is called by TickTimers on every decrement that leaves the
	// sound timer above zero.
	SoundOn()

	// SoundOff is called by TickTimers when the sound timer reaches or
	// remains at zero.
	SoundOff()

	// Random returns a uniformly distributed 8-bit value. Called at most
	// once per CXNN execution.
	Random() uint8
}
