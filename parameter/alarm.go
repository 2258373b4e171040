package parameter

// Fuzzy Alarm - Movement Levels
const (
	AlarmMovementLow  = 3.0
	AlarmMovementHigh = 7.0

	AlarmMovementLevelLow  = 0.2
	AlarmMovementLevelMid  = 0.6
	AlarmMovementLevelHigh = 1.0
)

// Fuzzy Alarm - Distance Levels (closer is more alarming)
const (
	AlarmDistanceFar  = 4.0
	AlarmDistanceNear = 2.0

	AlarmDistanceLevelFar  = 0.1
	AlarmDistanceLevelMid  = 0.5
	AlarmDistanceLevelNear = 1.0
)

// Fuzzy Alarm - Time of Day
const (
	// AlarmNightStart and AlarmNightEnd are inclusive hour bounds of the night window
	AlarmNightStart = 22.0
	AlarmNightEnd   = 6.0

	AlarmTimeLevelNight = 1.0
	AlarmTimeLevelDay   = 0.3
)

// Fuzzy Alarm - Combination Weights (sum to 1.0)
const (
	AlarmWeightMovement = 0.4
	AlarmWeightDistance = 0.4
	AlarmWeightTime     = 0.2
)

// Fuzzy Alarm - Status Thresholds (strictly greater than)
const (
	AlarmThresholdAlarm     = 0.6
	AlarmThresholdAttention = 0.3
)

// AlarmDefaultHour is the hour assessed when none is given
const AlarmDefaultHour = 23
