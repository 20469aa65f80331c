// Package host adapts the chip8 core's Host capability interface onto a
// desktop window, speaker, and PRNG. Apart from main, which hands pixelgl the
// main thread, it is the only place in this module that imports a display,
// audio, or windowing library — the chip8 package itself stays free of all
// three so it can be hosted on anything that can implement the same five
// methods.
package host

import (
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"

	"github.com/mjpetersen/chip8vm/internal/chip8"
)

// keyRepeatDur mirrors the debounce window the teacher's window handling
// used for held keys; it is not currently consulted by GetKeys, which reads
// pixelgl's own pressed-state directly, but is kept here as the dial a
// future repeat-rate feature would hang off of.
const keyRepeatDur = 50 * time.Millisecond

// keymap is the physical-keyboard layout the teacher chose for the 4x4 hex
// keypad, unchanged.
var keymap = map[uint8]pixelgl.Button{
	0x1: pixelgl.Key1, 0x2: pixelgl.Key2, 0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
	0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW, 0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
	0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS, 0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
	0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX, 0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
}

// Config controls the window a Desktop opens.
type Config struct {
	Title    string
	Scale    float64 // pixels per CHIP-8 cell; the teacher's window used 16
	BeepPath string  // path to a short mp3 played on loop while the sound timer is nonzero
}

// Desktop implements chip8.Host over a pixelgl window and a beep/mp3 tone.
type Desktop struct {
	win *pixelgl.Window
	cfg Config
	rng *rand.Rand

	mu       sync.Mutex
	streamer beep.StreamSeeker
	playing  bool
}

// NewDesktop opens the window and, best-effort, prepares the beep tone. A
// missing or undecodable BeepPath disables audio rather than failing
// construction: a silent emulator is still a usable one.
func NewDesktop(cfg Config) (*Desktop, error) {
	if cfg.Scale <= 0 {
		cfg.Scale = 16
	}
	width := float64(chip8.FrameWidth) * cfg.Scale
	height := float64(chip8.FrameHeight) * cfg.Scale

	win, err := pixelgl.NewWindow(pixelgl.WindowConfig{
		Title:  cfg.Title,
		Bounds: pixel.R(0, 0, width, height),
		VSync:  true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening display window")
	}

	d := &Desktop{
		win: win,
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	d.loadBeep()
	return d, nil
}

func (d *Desktop) loadBeep() {
	if d.cfg.BeepPath == "" {
		return
	}
	f, err := os.Open(d.cfg.BeepPath)
	if err != nil {
		return
	}
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return
	}
	d.streamer = streamer
}

// Closed reports whether the user closed the window, for the run loop's
// shutdown check.
func (d *Desktop) Closed() bool { return d.win.Closed() }

// GetKeys polls pixelgl's pressed-state for each of the 16 mapped keys.
func (d *Desktop) GetKeys() [chip8.KeyCount]bool {
	var keys [chip8.KeyCount]bool
	for i, btn := range keymap {
		keys[i] = d.win.Pressed(btn)
	}
	return keys
}

// OnFrame clears the window and redraws every lit cell as a scaled quad,
// the same immediate-mode draw the teacher's DrawGraphics used.
func (d *Desktop) OnFrame(v chip8.FrameView) {
	d.win.Clear(colornames.Black)
	draw := imdraw.New(nil)
	draw.Color = pixel.RGB(1, 1, 1)

	v.ScaledPixels(1, func(x, y int, on bool) {
		if !on {
			return
		}
		// CHIP-8's y grows downward; pixel's window y grows upward.
		flippedY := float64(chip8.FrameHeight-1-y) * d.cfg.Scale
		px := float64(x) * d.cfg.Scale
		draw.Push(pixel.V(px, flippedY))
		draw.Push(pixel.V(px+d.cfg.Scale, flippedY+d.cfg.Scale))
		draw.Rectangle(0)
	})

	draw.Draw(d.win)
	d.win.Update()
}

// SoundOn starts the beep looping from the start of the clip. A no-op if no
// tone was loaded.
func (d *Desktop) SoundOn() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.streamer == nil || d.playing {
		return
	}
	d.streamer.Seek(0)
	d.playing = true
	speaker.Play(beep.Loop(-1, d.streamer))
}

// SoundOff stops playback.
func (d *Desktop) SoundOff() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.playing {
		return
	}
	d.playing = false
	speaker.Clear()
}

// Random returns a uniformly distributed byte for CXNN.
func (d *Desktop) Random() uint8 { return uint8(d.rng.Intn(256)) }

// String is used by the run command's --debug banner.
func (d *Desktop) String() string {
	return fmt.Sprintf("desktop host (scale=%.0f, audio=%v)", d.cfg.Scale, d.streamer != nil)
}
