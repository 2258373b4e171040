// Package siren synthesizes audible alerts for alarm assessments: a two-tone
// siren for ALARM, a bell chime for ATTENTION and silence for NORMAL.
package siren

import (
	"github.com/gopxl/beep"

	"github.com/lixenwraith/vigil/alarm"
	"github.com/lixenwraith/vigil/parameter"
)

// Config holds synthesis settings
type Config struct {
	SampleRate   int
	MasterVolume float64
}

// DefaultConfig returns the compiled-in audio settings
func DefaultConfig() Config {
	return Config{
		SampleRate:   parameter.AudioSampleRate,
		MasterVolume: parameter.AudioMasterVolume,
	}
}

// Siren alternates two square tones for a fixed number of cycles
func Siren(cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	notes := make([]beep.Streamer, 0, 2*parameter.SirenCycles)
	for i := 0; i < parameter.SirenCycles; i++ {
		for _, freq := range [2]float64{parameter.SirenLowFreq, parameter.SirenHighFreq} {
			osc := NewOscillator(freq, parameter.SirenNoteDuration, WaveSquare, rate)
			notes = append(notes, NewEnvelope(osc, parameter.SirenNoteDuration, parameter.SirenAttack, parameter.SirenRelease, rate))
		}
	}

	return newVolume(beep.Seq(notes...), parameter.AudioSirenVolume*cfg.MasterVolume)
}

// Chime is a decaying bell with an octave overtone
func Chime(cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	fund := NewOscillator(parameter.ChimeFreq, parameter.ChimeDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, parameter.ChimeDuration, parameter.ChimeAttack, parameter.ChimeFundamentalRelease, rate)

	over := NewOscillator(2*parameter.ChimeFreq, parameter.ChimeDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, parameter.ChimeDuration, parameter.ChimeAttack, parameter.ChimeOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)

	return newVolume(mixed, parameter.AudioChimeVolume*cfg.MasterVolume)
}

// Tone returns the alert for a status, nil for NORMAL
func Tone(status alarm.Status, cfg Config) beep.Streamer {
	switch status {
	case alarm.StatusAlarm:
		return Siren(cfg)
	case alarm.StatusAttention:
		return Chime(cfg)
	default:
		return nil
	}
}

// Sequence chains the alerts of several assessments with a short gap between them
// Returns nil when nothing needs to sound
func Sequence(assessments []alarm.Assessment, cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	var parts []beep.Streamer
	for _, a := range assessments {
		tone := Tone(a.Status, cfg)
		if tone == nil {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, beep.Silence(rate.N(parameter.AudioAlertGap)))
		}
		parts = append(parts, tone)
	}

	if len(parts) == 0 {
		return nil
	}
	return beep.Seq(parts...)
}
