package term

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"snake-hess/game"
)

const sampleRate = beep.SampleRate(48000)

type tone struct {
	freq     float64
	duration time.Duration
}

// Short tones per event. The terminal has no sample files.
var tones = map[game.EventType]tone{
	game.EventAte:           {freq: 660, duration: 80 * time.Millisecond},
	game.EventGuessed:       {freq: 880, duration: 80 * time.Millisecond},
	game.EventMissed:        {freq: 140, duration: 150 * time.Millisecond},
	game.EventBoosterPicked: {freq: 990, duration: 120 * time.Millisecond},
	game.EventLifeLost:      {freq: 220, duration: 200 * time.Millisecond},
	game.EventWon:           {freq: 1320, duration: 300 * time.Millisecond},
	game.EventLost:          {freq: 110, duration: 400 * time.Millisecond},
}

// Sound is a game.Listener that beeps on events through the speaker.
type Sound struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSound() *Sound {
	return &Sound{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. On failure the listener stays silent.
func (s *Sound) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

func (s *Sound) Notify(g *game.Game, ev game.Event) {
	tn, ok := tones[ev.Type]
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(beep.Take(sampleRate.N(tn.duration), NewToneGenerator(sampleRate, tn.freq)))
	speaker.Unlock()
}

func (s *Sound) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
	log.Printf("Speaker closed")
}

// ToneGenerator streams a sine tone with a short attack.
type ToneGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewToneGenerator(sr beep.SampleRate, freq float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Min(t/0.01, 1.0)
		sample := 0.2 * envelope * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
