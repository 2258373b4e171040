package alarm

import (
	"fmt"

	"github.com/lixenwraith/vigil/parameter"
)

// Status is the alarm classification of a confidence score
type Status uint8

const (
	StatusNormal Status = iota
	StatusAttention
	StatusAlarm
)

var statusNames = [...]string{
	StatusNormal:    "NORMAL",
	StatusAttention: "ATTENTION",
	StatusAlarm:     "ALARM",
}

// Classify maps a score to a Status with strict thresholds
func Classify(score float64) Status {
	switch {
	case score > parameter.AlarmThresholdAlarm:
		return StatusAlarm
	case score > parameter.AlarmThresholdAttention:
		return StatusAttention
	default:
		return StatusNormal
	}
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", s)
}

// MarshalText encodes the status by name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("alarm: unknown status %q", text)
}
