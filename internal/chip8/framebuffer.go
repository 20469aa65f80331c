package chip8

// FrameWidth and FrameHeight are the fixed CHIP-8 display dimensions.
const (
	FrameWidth  = 64
	FrameHeight = 32
)

// frameBytes is the size of the packed, row-major, MSB-first bitmap backing
// a Framebuffer: 64*32/8.
const frameBytes = FrameWidth * FrameHeight / 8

// Framebuffer is a 64x32 monochrome bitmap. The zero value is a cleared
// screen, ready to use.
type Framebuffer struct {
	bits [frameBytes]byte
}

// Clear zeroes every pixel.
func (f *Framebuffer) Clear() {
	f.bits = [frameBytes]byte{}
}

// Get returns the bit at (x, y) and whether that coordinate is in range. A
// false second return means the first return is meaningless.
func (f *Framebuffer) Get(x, y int) (bool, bool) {
	if x < 0 || x >= FrameWidth || y < 0 || y >= FrameHeight {
		return false, false
	}
	byteIdx, mask := bitAddr(x, y)
	return f.bits[byteIdx]&mask != 0, true
}

// Xor sets the bit at (x, y) to bit XOR v. It returns ErrOutOfBounds if (x, y)
// falls outside the 64x32 grid.
func (f *Framebuffer) Xor(x, y int, v bool) error {
	if x < 0 || x >= FrameWidth || y < 0 || y >= FrameHeight {
		return ErrOutOfBounds
	}
	if v {
		byteIdx, mask := bitAddr(x, y)
		f.bits[byteIdx] ^= mask
	}
	return nil
}

// bitAddr maps a pixel coordinate to its byte index and bit mask within a
// row-major, MSB-first packed bitmap.
func bitAddr(x, y int) (byteIdx int, mask byte) {
	rowBytes := FrameWidth / 8
	byteIdx = y*rowBytes + x/8
	mask = 0x80 >> uint(x%8)
	return byteIdx, mask
}

// View returns a read-only snapshot of the framebuffer. The snapshot is a
// value copy, so it stays valid even if the owning Framebuffer is mutated
// afterward.
func (f *Framebuffer) View() FrameView {
	return FrameView{bits: f.bits}
}

// FrameView is an immutable, row-major, MSB-first-within-a-byte snapshot of a
// Framebuffer, suitable for handing to a Host's OnFrame.
type FrameView struct {
	bits [frameBytes]byte
}

// Bytes returns the packed 256-byte bitmap backing the view.
func (v FrameView) Bytes() []byte {
	return v.bits[:]
}

// At reports whether the pixel at (x, y) is set. Out-of-range coordinates
// report false.
func (v FrameView) At(x, y int) bool {
	if x < 0 || x >= FrameWidth || y < 0 || y >= FrameHeight {
		return false
	}
	byteIdx, mask := bitAddr(x, y)
	return v.bits[byteIdx]&mask != 0
}

// Rows calls fn once per display row with a 64-element array of pixel
// values, top to bottom.
func (v FrameView) Rows(fn func(y int, pixels [FrameWidth]bool)) {
	for y := 0; y < FrameHeight; y++ {
		var row [FrameWidth]bool
		for x := 0; x < FrameWidth; x++ {
			row[x] = v.At(x, y)
		}
		fn(y, row)
	}
}

// ScaledPixels calls fn once per physical pixel of a display that renders
// each CHIP-8 pixel as a scale x scale block, in row-major order starting at
// the top-left. A scale of 1 visits exactly the 64x32 logical pixels once
// each. Scale values less than 1 are treated as 1.
func (v FrameView) ScaledPixels(scale int, fn func(px, py int, on bool)) {
	if scale < 1 {
		scale = 1
	}
	for y := 0; y < FrameHeight; y++ {
		for x := 0; x < FrameWidth; x++ {
			on := v.At(x, y)
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					fn(x*scale+dx, y*scale+dy, on)
				}
			}
		}
	}
}
