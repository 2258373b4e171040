// Package genetic provides a generic generational genetic algorithm
// 1. Has zero knowledge of the solution encoding beyond the operator interfaces
// 2. Runs synchronously on one explicit random source so a seed fully determines a run
// 3. Ranks every generation, preserves elites unchanged and breeds the remainder
package genetic

import (
	"math/rand/v2"
)

// --- Concrete Operator Implementations ---

// WindowSelector draws uniformly from the top Window ranked candidates
type WindowSelector[S Solution, F Numeric] struct {
	// Window is the number of leading ranks eligible for selection
	Window int
}

// Select implements the Selector interface, each draw is independent
func (ws *WindowSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	window := min(ws.Window, len(pool.Members))
	if window < 1 {
		window = len(pool.Members)
	}

	selected := make([]Candidate[S, F], size)
	for i := range selected {
		selected[i] = pool.Members[rng.IntN(window)]
	}
	return selected
}

// TournamentSelector implements tournament selection
// Randomly samples small groups and selects the best from each group
type TournamentSelector[S Solution, F Numeric] struct {
	// TournamentSize is the number of candidates to compete in each tournament
	TournamentSize int
}

// Select implements the Selector interface using tournament selection
func (ts *TournamentSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	poolSize := len(pool.Members)

	tournSize := min(ts.TournamentSize, poolSize)
	if tournSize < 1 {
		tournSize = min(2, poolSize)
	}

	selected := make([]Candidate[S, F], 0, size)
	for len(selected) < size {
		winner := pool.Members[rng.IntN(poolSize)]
		for i := 1; i < tournSize; i++ {
			if c := pool.Members[rng.IntN(poolSize)]; c.Score > winner.Score {
				winner = c
			}
		}
		selected = append(selected, winner)
	}

	return selected
}

// RouletteSelector implements fitness-proportionate selection
// Candidates are selected with probability proportional to their fitness
type RouletteSelector[S Solution, F Numeric] struct{}

// Select implements roulette wheel selection
// Negative scores count as zero, an all-zero pool degrades to uniform selection
func (rs *RouletteSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	total := 0.0
	cumulative := make([]float64, len(pool.Members))
	for i, candidate := range pool.Members {
		if candidate.Score > 0 {
			total += float64(candidate.Score)
		}
		cumulative[i] = total
	}

	selected := make([]Candidate[S, F], size)
	for i := range selected {
		if total == 0 {
			selected[i] = pool.Members[rng.IntN(len(pool.Members))]
			continue
		}

		spin := rng.Float64() * total
		pick := len(pool.Members) - 1
		for j, cum := range cumulative {
			if spin < cum {
				pick = j
				break
			}
		}
		selected[i] = pool.Members[pick]
	}

	return selected
}

// Uniform builds a fresh child where position i is a[i] with probability mix, else b[i]
// One coin is drawn per position, the child is sized to the shorter parent
func Uniform[S ~[]T, T any](a, b S, mix float64, rng *rand.Rand) S {
	length := min(len(a), len(b))
	child := make(S, length)
	for i := 0; i < length; i++ {
		if rng.Float64() < mix {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child
}
