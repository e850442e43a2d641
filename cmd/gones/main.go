// Command gones runs an iNES ROM in a window, rendering the PPU's frame
// buffer through OpenGL and reading the keyboard as a single NES
// controller.
package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/saitoh-dev/gones/nes"
)

const (
	width  = 256
	height = 240
	scale  = 2
)

var debug = flag.Bool("debug", false, "log a running CPU trace via glog")

func main() {
	flag.Parse()
	defer glog.Flush()

	args := flag.Args()
	if len(args) != 1 {
		glog.Exitf("usage: gones <rom path>")
	}
	romPath := args[0]

	emulator, err := nes.New(romPath)
	if err != nil {
		glog.Exitf("failed to load rom: %v", err)
	}

	d, err := newDisplay(width*scale, height*scale)
	if err != nil {
		glog.Exitf("failed to create display: %v", err)
	}
	defer d.close()

	a := newAudio()
	if err := a.start(); err != nil {
		glog.Exitf("failed to start audio: %v", err)
	}
	defer a.terminate()

	for !d.shouldClose() {
		frame, err := emulator.StepFrame()
		if err != nil {
			glog.Errorf("step frame failed: %v", err)
			break
		}
		if *debug {
			glog.Infof("%s", emulator.CPU().LastExecution())
		}
		emulator.SetButtons(readKeys(d.window))
		a.push(emulator)
		d.present(frame)
	}
}
