package main

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/saitoh-dev/gones/nes"
)

const sampleRate = 44100

// samplesPerFrame is how many audio samples one 60Hz video frame is worth.
const samplesPerFrame = sampleRate / 60

// audio drains APU samples pushed onto channel through a default-device
// portaudio stream, scaled down to a sane listening volume.
type audio struct {
	stream  *portaudio.Stream
	channel chan float32
}

func newAudio() *audio {
	a := &audio{}
	a.channel = make(chan float32, sampleRate)
	return a
}

func (a *audio) start() error {
	portaudio.Initialize()
	cb := func(out []float32) {
		for i := range out {
			select {
			case x := <-a.channel:
				out[i] = x * 0.05
			default:
				out[i] = 0
			}
		}
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, 0, cb)
	if err != nil {
		return fmt.Errorf("failed to open the audio stream: %w", err)
	}
	a.stream = stream
	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start the audio stream: %w", err)
	}
	return nil
}

// push drains one frame's worth of samples out of the emulator's APU
// passthrough and queues them for the callback, dropping any that don't fit
// rather than blocking the video loop on a full channel.
func (a *audio) push(e *nes.Emulator) {
	for i := 0; i < samplesPerFrame; i++ {
		select {
		case a.channel <- e.AudioSample():
		default:
			return
		}
	}
}

func (a *audio) terminate() {
	portaudio.Terminate()
	a.stream.Close()
}
