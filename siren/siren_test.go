package siren

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vigil/alarm"
	"github.com/lixenwraith/vigil/parameter"
)

// drain streams s to exhaustion, returning the sample count and peak amplitude
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
			peak = math.Max(peak, math.Abs(buf[i][1]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestOscillator_Length(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)

	n, peak := drain(osc)
	if n != rate.N(100*time.Millisecond) {
		t.Errorf("expected %d samples, got %d", rate.N(100*time.Millisecond), n)
	}
	if peak > 1.0 {
		t.Errorf("expected peak within [-1, 1], got %f", peak)
	}
	if osc.Err() != nil {
		t.Errorf("expected no error, got: %v", osc.Err())
	}
}

func TestOscillator_Square(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, rate)

	samples := make([][2]float64, 50)
	n, ok := osc.Stream(samples)
	if !ok || n != 50 {
		t.Fatalf("expected 50 samples, got %d (ok=%v)", n, ok)
	}
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != 1.0 && v != -1.0 {
			t.Errorf("sample %d: expected +-1, got %f", i, v)
		}
	}
}

func TestEnvelope_Ramps(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, time.Second, WaveSquare, rate) // constant +1
	env := NewEnvelope(osc, time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)

	samples := make([][2]float64, 1000)
	n, _ := env.Stream(samples)
	if n != 1000 {
		t.Fatalf("expected 1000 samples, got %d", n)
	}

	if samples[0][0] != 0 {
		t.Errorf("expected silent first sample, got %f", samples[0][0])
	}
	if samples[50][0] != 0.5 {
		t.Errorf("expected half volume mid attack, got %f", samples[50][0])
	}
	if samples[500][0] != 1.0 {
		t.Errorf("expected full volume in sustain, got %f", samples[500][0])
	}
	if samples[950][0] != 0.5 {
		t.Errorf("expected half volume mid release, got %f", samples[950][0])
	}
}

func TestSiren_Length(t *testing.T) {
	cfg := DefaultConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	n, peak := drain(Siren(cfg))

	expected := 2 * parameter.SirenCycles * rate.N(parameter.SirenNoteDuration)
	if n != expected {
		t.Errorf("expected %d samples, got %d", expected, n)
	}
	if limit := parameter.AudioSirenVolume*cfg.MasterVolume + 1e-9; peak > limit {
		t.Errorf("expected peak at most %f, got %f", limit, peak)
	}
	if peak == 0 {
		t.Error("expected audible siren")
	}
}

func TestChime_Length(t *testing.T) {
	cfg := DefaultConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	n, peak := drain(Chime(cfg))

	if expected := rate.N(parameter.ChimeDuration); n != expected {
		t.Errorf("expected %d samples, got %d", expected, n)
	}
	if peak == 0 || peak > 1.0 {
		t.Errorf("expected peak in (0, 1], got %f", peak)
	}
}

func TestSilentVolume(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MasterVolume = 0

	n, peak := drain(Siren(cfg))
	if n == 0 {
		t.Error("expected silent siren to keep its length")
	}
	if peak != 0 {
		t.Errorf("expected silence, got peak %f", peak)
	}
}

func TestTone(t *testing.T) {
	cfg := DefaultConfig()

	if Tone(alarm.StatusNormal, cfg) != nil {
		t.Error("expected no tone for NORMAL")
	}
	if Tone(alarm.StatusAttention, cfg) == nil {
		t.Error("expected chime for ATTENTION")
	}
	if Tone(alarm.StatusAlarm, cfg) == nil {
		t.Error("expected siren for ALARM")
	}
}

func TestSequence(t *testing.T) {
	cfg := DefaultConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	quiet := []alarm.Assessment{{Status: alarm.StatusNormal}, {Status: alarm.StatusNormal}}
	if Sequence(quiet, cfg) != nil {
		t.Error("expected nil sequence when all targets are normal")
	}

	mixed := []alarm.Assessment{
		{Status: alarm.StatusAlarm},
		{Status: alarm.StatusNormal},
		{Status: alarm.StatusAttention},
	}
	n, _ := drain(Sequence(mixed, cfg))

	siren := 2 * parameter.SirenCycles * rate.N(parameter.SirenNoteDuration)
	chime := rate.N(parameter.ChimeDuration)
	gap := rate.N(parameter.AudioAlertGap)
	if expected := siren + gap + chime; n != expected {
		t.Errorf("expected %d samples, got %d", expected, n)
	}
}

func TestPlayer_NilIsNoop(t *testing.T) {
	p := NewPlayer(DefaultConfig())
	if err := p.Play(nil); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if err := p.Start(nil); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	p.Close()
}
