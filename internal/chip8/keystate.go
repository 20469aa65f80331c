package chip8

// KeyState is the 4-state edge model a single key moves through as the host
// reports its raw pressed/released boolean once per CPU tick. Pressed and
// Released each last exactly one tick of continuous true/false input,
// respectively, which is what lets FX0A trigger exactly once per keypress.
type KeyState int

const (
	// Up means the key has been released for at least one prior tick.
	Up KeyState = iota
	// Pressed means the key transitioned from Up or Released to held this tick.
	Pressed
	// Down means the key has been held for at least one prior tick.
	Down
	// Released means the key transitioned from held to not-held this tick.
	Released
)

func (s KeyState) String() string {
	switch s {
	case Up:
		return "Up"
	case Pressed:
		return "Pressed"
	case Down:
		return "Down"
	case Released:
		return "Released"
	default:
		return "Unknown"
	}
}

// Update advances s given the raw boolean the host reported for this tick
// and returns the new state.
func (s KeyState) Update(raw bool) KeyState {
	switch s {
	case Up:
		if raw {
			return Pressed
		}
		return Up
	case Pressed:
		if raw {
			return Down
		}
		return Released
	case Down:
		if raw {
			return Down
		}
		return Released
	case Released:
		if raw {
			return Pressed
		}
		return Up
	default:
		return Up
	}
}
