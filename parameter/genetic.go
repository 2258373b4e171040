package parameter

// Genetic Algorithm - Engine Configuration
const (
	// GAPoolSize is the number of layouts in each population
	GAPoolSize = 20

	// GAEliteCount is preserved best performers per generation
	GAEliteCount = 2

	// GAParentPool is the rank window parents are drawn from
	GAParentPool = 10

	// GAMutationRate is the per-sensor probability of perturbation (0.0-1.0)
	GAMutationRate = 0.1

	// GAGenerations is the fixed number of generations per run
	GAGenerations = 50

	// GAReportInterval is the generation cadence of progress reports
	GAReportInterval = 10

	// GATournamentSize for the optional tournament selection strategy
	GATournamentSize = 3

	// GACrossoverMixProbability for uniform crossover
	GACrossoverMixProbability = 0.5
)

// Selection strategy names accepted in configuration
const (
	SelectionWindow     = "window"
	SelectionTournament = "tournament"
	SelectionRoulette   = "roulette"
)

// Placement Plane
const (
	// GridSize is the side length of the square plane
	GridSize = 10.0

	// DefaultSensorCount is the number of sensors placed when none is configured
	DefaultSensorCount = 3
)

// Sensor Bounds
const (
	// SensorRangeMin and SensorRangeMax clamp detection radius after perturbation
	SensorRangeMin = 2.0
	SensorRangeMax = 5.0

	// SensorSpawnRangeMin and SensorSpawnRangeMax bound radius of freshly generated sensors
	SensorSpawnRangeMin = 3.0
	SensorSpawnRangeMax = 5.0

	// SensorPositionJitter is the max absolute offset applied to X and Y on perturbation
	SensorPositionJitter = 1.0

	// SensorRangeJitter is the max absolute offset applied to range on perturbation
	SensorRangeJitter = 0.5
)
