package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	noteLength = 60 * time.Millisecond
)

// chimeNotes rise with each extra row cleared at once.
var chimeNotes = []float64{523.25, 659.25, 783.99, 1046.50}

// Chime plays a short arpeggio for line clears. A nil *Chime is silent.
type Chime struct{}

func NewChime() (*Chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Chime{}, nil
}

func (c *Chime) Play(lines int) {
	if c == nil {
		return
	}
	s, err := chime(lines)
	if err != nil {
		return
	}
	speaker.Play(s)
}

func (c *Chime) Close() {
	if c != nil {
		speaker.Close()
	}
}

// chime builds one note per cleared line, at half volume.
func chime(lines int) (beep.Streamer, error) {
	lines = max(1, min(lines, len(chimeNotes)))

	notes := make([]beep.Streamer, 0, lines)
	for _, freq := range chimeNotes[:lines] {
		tone, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			return nil, err
		}
		notes = append(notes, beep.Take(sampleRate.N(noteLength), tone))
	}
	return &effects.Volume{Streamer: beep.Seq(notes...), Base: 2, Volume: -1}, nil
}
