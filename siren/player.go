package siren

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vigil/parameter"
)

// Player plays alerts through the system speaker
type Player struct {
	cfg    Config
	once   sync.Once
	err    error
	opened bool
}

// NewPlayer creates a player, the speaker is opened on first use
func NewPlayer(cfg Config) *Player {
	return &Player{cfg: cfg}
}

func (p *Player) init() error {
	p.once.Do(func() {
		rate := beep.SampleRate(p.cfg.SampleRate)
		if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
			p.err = fmt.Errorf("speaker init: %w", err)
			return
		}
		p.opened = true
	})
	return p.err
}

// Play sounds s and blocks until it finishes, nil is a no-op
func (p *Player) Play(s beep.Streamer) error {
	if s == nil {
		return nil
	}
	if err := p.init(); err != nil {
		return err
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(s, beep.Callback(func() {
		close(done)
	})))
	<-done
	return nil
}

// Start mixes s into whatever is playing and returns immediately
func (p *Player) Start(s beep.Streamer) error {
	if s == nil {
		return nil
	}
	if err := p.init(); err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}

// Close releases the speaker if it was opened
func (p *Player) Close() {
	if p.opened {
		speaker.Close()
		p.opened = false
	}
}
