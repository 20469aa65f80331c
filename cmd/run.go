package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mjpetersen/chip8vm/internal/chip8"
	"github.com/mjpetersen/chip8vm/internal/host"
)

var (
	cpuHz    int
	timerHz  int
	scale    float64
	beepPath string
	debug    bool
)

// runCmd runs the chip8vm virtual machine against a ROM file until the
// window is closed or a CPU tick fails.
var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "run a CHIP-8 ROM",
	Args:  cobra.ExactArgs(1),
	RunE:  runVM,
}

func init() {
	runCmd.Flags().IntVar(&cpuHz, "cpu-hz", 500, "instructions executed per second")
	runCmd.Flags().IntVar(&timerHz, "timer-hz", 60, "delay/sound timer decrement rate")
	runCmd.Flags().Float64Var(&scale, "scale", 16, "pixels per CHIP-8 cell")
	runCmd.Flags().StringVar(&beepPath, "beep", "assets/beep.mp3", "path to an mp3 played while the sound timer is nonzero")
	runCmd.Flags().BoolVar(&debug, "debug", false, "print the host description at startup and the PC and error of a failing tick")
}

func runVM(cmd *cobra.Command, args []string) error {
	rom, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrap(err, "reading rom")
	}

	desktop, err := host.NewDesktop(host.Config{
		Title:    fmt.Sprintf("chip8vm - %s", args[0]),
		Scale:    scale,
		BeepPath: beepPath,
	})
	if err != nil {
		return errors.Wrap(err, "opening window")
	}

	vm, err := chip8.NewBuilder[*host.Desktop]().WithHost(desktop).WithProgram(rom).Build()
	if err != nil {
		return errors.Wrap(err, "building vm")
	}

	if debug {
		fmt.Println(desktop)
	}

	done := make(chan struct{})
	go runTickers(vm, desktop, done)

	<-done
	fmt.Println("window closed, shutting down")
	return nil
}

// runTickers drives the CPU and timer clocks on two independent tickers, the
// rates a real CHIP-8 keeps apart: instruction throughput is roughly 500 Hz
// and bears no fixed relationship to the 60 Hz timers. Running both off a
// single ticker (as some straightforward ports do) ties emulation speed to
// timer decay and makes every ROM's game feel depends on --cpu-hz.
func runTickers[H chip8.Host](vm *chip8.VM[H], closer interface{ Closed() bool }, done chan<- struct{}) {
	cpu := time.NewTicker(time.Second / time.Duration(cpuHz))
	timers := time.NewTicker(time.Second / time.Duration(timerHz))
	defer cpu.Stop()
	defer timers.Stop()

	for {
		select {
		case <-cpu.C:
			if closer.Closed() {
				close(done)
				return
			}
			if err := vm.TickChip(); err != nil {
				if debug {
					fmt.Printf("tick error at pc=%#x: %v\n", vm.PC(), err)
				}
				close(done)
				return
			}
		case <-timers.C:
			vm.TickTimers()
		}
	}
}
