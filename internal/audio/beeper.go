// Package audio implements the sound-timer collaborator: a square-wave
// beeper that plays while the machine's sound timer is nonzero.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// Beeper is the audio collaborator driven by the sound timer.
type Beeper interface {
	// SetActive starts or stops the tone
	SetActive(active bool)

	// Close releases audio resources
	Close() error
}

// NullBeeper implements Beeper as a no-op for headless or muted runs.
type NullBeeper struct{}

func (NullBeeper) SetActive(active bool) {}
func (NullBeeper) Close() error          { return nil }

// OtoBeeper implements Beeper on an oto v3 playback context. It acts as the
// player's sample source, producing a square wave while active and silence
// otherwise.
type OtoBeeper struct {
	ctx    *oto.Context
	player *oto.Player

	sampleRate int
	frequency  float64
	volume     float32

	active atomic.Bool
	phase  float64
}

// NewOtoBeeper opens an audio context and starts a player fed by the
// beeper's sample generator.
func NewOtoBeeper(sampleRate int, frequency float64, volume float32) (*OtoBeeper, error) {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	if frequency <= 0 {
		frequency = 440
	}

	beeper := &OtoBeeper{
		sampleRate: sampleRate,
		frequency:  frequency,
		volume:     volume,
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open audio context: %v", err)
	}
	<-ready

	beeper.ctx = ctx
	beeper.player = ctx.NewPlayer(beeper)
	beeper.player.Play()

	return beeper, nil
}

// SetActive starts or stops the tone. Safe to call from the emulation loop
// while the player reads samples on its own goroutine.
func (b *OtoBeeper) SetActive(active bool) {
	b.active.Store(active)
}

// Read fills p with float32 little-endian samples: a square wave while
// active, silence otherwise. Phase is kept across calls so the tone is
// continuous.
func (b *OtoBeeper) Read(p []byte) (int, error) {
	numSamples := len(p) / 4
	step := b.frequency / float64(b.sampleRate)
	active := b.active.Load()

	for i := 0; i < numSamples; i++ {
		var sample float32
		if active {
			if b.phase < 0.5 {
				sample = b.volume
			} else {
				sample = -b.volume
			}
		}
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(sample))

		b.phase += step
		if b.phase >= 1.0 {
			b.phase -= 1.0
		}
	}

	return numSamples * 4, nil
}

// Close stops playback and releases the player.
func (b *OtoBeeper) Close() error {
	if b.player != nil {
		if err := b.player.Close(); err != nil {
			return err
		}
		b.player = nil
	}
	return nil
}
