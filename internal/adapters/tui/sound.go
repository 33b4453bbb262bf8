package tui

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Sound plays feedback for shot results.
type Sound interface {
	Hit()
	Kill()
}

// NopSound is a silent Sound.
type NopSound struct{}

func (NopSound) Hit()  {}
func (NopSound) Kill() {}

const sampleRate = beep.SampleRate(44100)

// BeepSound plays short sine tones through the system speaker.
type BeepSound struct{}

// NewBeepSound initialises the speaker. Callers fall back to NopSound when
// it fails.
func NewBeepSound() (*BeepSound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &BeepSound{}, nil
}

func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(sampleRate.N(d))
	}
	return beep.Take(sampleRate.N(d), sine)
}

// Hit plays a single short blip.
func (*BeepSound) Hit() {
	speaker.Play(tone(880, 40*time.Millisecond))
}

// Kill plays a rising two-note chirp.
func (*BeepSound) Kill() {
	speaker.Play(beep.Seq(
		tone(660, 50*time.Millisecond),
		tone(990, 80*time.Millisecond),
	))
}

// Close releases the speaker.
func (*BeepSound) Close() {
	speaker.Close()
}
