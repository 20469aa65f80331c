package main

import (
	"github.com/faiface/pixel/pixelgl"

	"github.com/mjpetersen/chip8vm/cmd"
)

func main() {
	// pixelgl owns the main OS thread for as long as any window exists, so
	// cobra's command tree runs inside its callback rather than the other
	// way around.
	pixelgl.Run(cmd.Execute)
}
