package genetic

import (
	"math/rand/v2"
	"time"
)

// --- Core Type Constraints ---

// Solution represents any type that can be used as a solution encoding
type Solution any

// Numeric constrains types to numeric values for fitness scores
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// --- Core Data Structures ---

// Candidate represents a potential solution with its evaluated quality score
// S is the solution type, F is the fitness/quality score type
type Candidate[S Solution, F Numeric] struct {
	// Data holds the encoded solution representation
	Data S
	// Score represents the quality/fitness of this solution (higher = better)
	Score F
}

// Pool is one evaluated generation, Members ranked by descending Score
type Pool[S Solution, F Numeric] struct {
	Members    []Candidate[S, F]
	Generation int
	Stats      PoolStats[F]
}

// Best returns the top ranked candidate
func (p *Pool[S, F]) Best() Candidate[S, F] {
	return p.Members[0]
}

// PoolStats contains statistical information about a candidate pool
type PoolStats[F Numeric] struct {
	Generation   int     `json:"generation"`
	BestScore    F       `json:"best"`
	WorstScore   F       `json:"worst"`
	AverageScore float64 `json:"mean"`
	StdDevScore  float64 `json:"stddev"`
	// Diversity is the mean genome distance to the pool centroid, zero without a codec
	Diversity float64 `json:"diversity"`
	// Elapsed is wall time spent ranking and breeding this generation
	Elapsed time.Duration `json:"elapsed_ns"`
}

// --- Function Types for Flexibility ---

// EvaluatorFunc calculates the quality score for a solution
type EvaluatorFunc[S Solution, F Numeric] func(solution S) F

// InitializerFunc creates an initial solution candidate
type InitializerFunc[S Solution] func(rng *rand.Rand) S

// ProgressFunc observes the best score of a generation, it must not affect the run
type ProgressFunc[F Numeric] func(generation int, best F)

// --- Core Operators as Interfaces ---

// Selector chooses parents from a ranked pool
type Selector[S Solution, F Numeric] interface {
	// Select returns size candidates drawn from pool.Members
	Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F]
}

// Combiner defines the recombination operator for creating a new solution
type Combiner[S Solution, F Numeric] interface {
	// Combine creates one offspring from parent solutions, sharing no storage with them
	Combine(parents []Candidate[S, F], rng *rand.Rand) S
}

// Perturbator defines the mutation operator for introducing variation
type Perturbator[S Solution] interface {
	// Perturb returns a sibling of solution, leaving solution untouched
	// The rate parameter is the per-gene perturbation probability (0-1)
	Perturb(solution S, rate float64, rng *rand.Rand) S
}

// Cloner is implemented by solutions that can copy themselves
type Cloner[S Solution] interface {
	Clone() S
}
