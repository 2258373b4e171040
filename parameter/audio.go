package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Alarm Siren: alternating two-tone square wave
const (
	SirenLowFreq      = 660.0
	SirenHighFreq     = 880.0
	SirenNoteDuration = 180 * time.Millisecond
	SirenAttack       = 5 * time.Millisecond
	SirenRelease      = 30 * time.Millisecond
	SirenCycles       = 3
)

// Attention Chime: bell with octave overtone
const (
	ChimeDuration           = 600 * time.Millisecond
	ChimeFreq               = 880.0
	ChimeAttack             = 5 * time.Millisecond
	ChimeFundamentalRelease = 550 * time.Millisecond
	ChimeOvertoneRelease    = 200 * time.Millisecond
)

// Volume Defaults
const (
	AudioMasterVolume = 0.6
	AudioSirenVolume  = 0.8
	AudioChimeVolume  = 0.5
)

// AudioAlertGap is the silence inserted between consecutive target alerts
const AudioAlertGap = 250 * time.Millisecond
