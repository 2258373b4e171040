package genetic

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/vigil/parameter"
)

// ErrEmptyPool is returned when a run is requested with no pool to evolve
var ErrEmptyPool = errors.New("genetic: pool size must be positive")

// --- Algorithm Engine ---

// Engine is the generational genetic algorithm execution engine
// It coordinates all operators and manages the evolution process
type Engine[S Solution, F Numeric] struct {
	// Core operators
	evaluator   EvaluatorFunc[S, F]
	initializer InitializerFunc[S]
	selector    Selector[S, F]
	combiner    Combiner[S, F]
	perturbator Perturbator[S]

	// Optional collaborators
	codec    Codec[S]
	progress ProgressFunc[F]

	// Configuration
	config EngineConfig

	// State
	seed     uint64
	rng      *rand.Rand
	injected []S
	history  []PoolStats[F]
}

// EngineConfig holds configuration parameters for the algorithm
type EngineConfig struct {
	// PoolSize is the number of candidates maintained in each generation
	PoolSize int
	// EliteCount is the number of best solutions preserved unchanged
	EliteCount int
	// PerturbationRate is the per-gene perturbation probability (0-1)
	PerturbationRate float64
	// MaxIterations is the fixed number of generations to run
	MaxIterations int
	// ReportInterval is the generation cadence of progress callbacks, 0 disables
	ReportInterval int
	// Seed for random number generation (0 for random seed)
	Seed uint64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		PoolSize:         parameter.GAPoolSize,
		EliteCount:       parameter.GAEliteCount,
		PerturbationRate: parameter.GAMutationRate,
		MaxIterations:    parameter.GAGenerations,
		ReportInterval:   parameter.GAReportInterval,
		Seed:             0,
	}
}

// NewEngine creates a new genetic algorithm engine with the specified operators
func NewEngine[S Solution, F Numeric](
	evaluator EvaluatorFunc[S, F],
	initializer InitializerFunc[S],
	selector Selector[S, F],
	combiner Combiner[S, F],
	perturbator Perturbator[S],
	config EngineConfig,
) *Engine[S, F] {
	seed := config.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}

	return &Engine[S, F]{
		evaluator:   evaluator,
		initializer: initializer,
		selector:    selector,
		combiner:    combiner,
		perturbator: perturbator,
		config:      config,
		seed:        seed,
		rng:         rand.New(rand.NewPCG(seed, seed)),
		history:     make([]PoolStats[F], 0, config.MaxIterations+1),
	}
}

// SetProgress installs the progress observer
func (e *Engine[S, F]) SetProgress(progress ProgressFunc[F]) {
	e.progress = progress
}

// SetCodec enables genome diversity statistics and clamping of injected solutions
func (e *Engine[S, F]) SetCodec(codec Codec[S]) {
	e.codec = codec
}

// InjectPopulation places solutions at the front of generation 0
// Extra solutions beyond PoolSize are ignored, the remainder is filled by the initializer
func (e *Engine[S, F]) InjectPopulation(solutions ...S) {
	e.injected = append(e.injected, solutions...)
}

// Seed returns the seed actually used, resolving a zero config seed
func (e *Engine[S, F]) Seed() uint64 {
	return e.seed
}

// Run executes the fixed number of generations and returns the best candidate of the final pool
// ctx is checked between generations only
func (e *Engine[S, F]) Run(ctx context.Context) (Candidate[S, F], error) {
	if e.config.PoolSize <= 0 {
		return Candidate[S, F]{}, ErrEmptyPool
	}

	members := e.initialMembers()

	for generation := 0; generation < e.config.MaxIterations; generation++ {
		if err := ctx.Err(); err != nil {
			return Candidate[S, F]{}, err
		}

		start := time.Now()
		pool := e.Rank(members, generation)

		if e.progress != nil && e.config.ReportInterval > 0 && generation%e.config.ReportInterval == 0 {
			e.progress(generation, pool.Best().Score)
		}

		members = e.Breed(pool)
		pool.Stats.Elapsed = time.Since(start)
		e.history = append(e.history, pool.Stats)
	}

	if err := ctx.Err(); err != nil {
		return Candidate[S, F]{}, err
	}

	start := time.Now()
	final := e.Rank(members, e.config.MaxIterations)
	final.Stats.Elapsed = time.Since(start)
	e.history = append(e.history, final.Stats)

	return final.Best(), nil
}

// initialMembers builds generation 0 from injected solutions then the initializer
func (e *Engine[S, F]) initialMembers() []S {
	members := make([]S, 0, e.config.PoolSize)
	for _, s := range e.injected {
		if len(members) == e.config.PoolSize {
			break
		}
		if e.codec != nil {
			s = e.codec.Clamp(s)
		}
		members = append(members, s)
	}
	for len(members) < e.config.PoolSize {
		members = append(members, e.initializer(e.rng))
	}
	return members
}

// Rank evaluates every solution and returns them sorted by descending score
// Ties keep population order (stable sort)
func (e *Engine[S, F]) Rank(members []S, generation int) *Pool[S, F] {
	candidates := make([]Candidate[S, F], len(members))
	for i, s := range members {
		candidates[i] = Candidate[S, F]{Data: s, Score: e.evaluator(s)}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return &Pool[S, F]{
		Members:    candidates,
		Generation: generation,
		Stats:      e.calculateStats(candidates, generation),
	}
}

// Breed creates the next generation: elites unchanged, then perturbed offspring of selected parents
// Elites are copied when the solution type implements Cloner, so generations share no storage
func (e *Engine[S, F]) Breed(pool *Pool[S, F]) []S {
	next := make([]S, 0, e.config.PoolSize)

	for _, elite := range e.selectElite(pool) {
		data := elite.Data
		if c, ok := any(data).(Cloner[S]); ok {
			data = c.Clone()
		}
		next = append(next, data)
	}

	for len(next) < e.config.PoolSize {
		parents := e.selector.Select(pool, 2, e.rng)
		child := e.combiner.Combine(parents, e.rng)
		child = e.perturbator.Perturb(child, e.config.PerturbationRate, e.rng)
		next = append(next, child)
	}

	return next
}

// selectElite returns the best performing candidates for preservation
func (e *Engine[S, F]) selectElite(pool *Pool[S, F]) []Candidate[S, F] {
	if e.config.EliteCount <= 0 {
		return nil
	}
	eliteCount := min(e.config.EliteCount, len(pool.Members), e.config.PoolSize)
	return pool.Members[:eliteCount]
}

// calculateStats computes statistical measures for a ranked candidate pool
func (e *Engine[S, F]) calculateStats(candidates []Candidate[S, F], generation int) PoolStats[F] {
	if len(candidates) == 0 {
		return PoolStats[F]{Generation: generation}
	}

	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = float64(c.Score)
	}

	stats := PoolStats[F]{
		Generation: generation,
		BestScore:  candidates[0].Score,
		WorstScore: candidates[len(candidates)-1].Score,
	}
	if len(scores) > 1 {
		stats.AverageScore, stats.StdDevScore = stat.MeanStdDev(scores, nil)
	} else {
		stats.AverageScore = scores[0]
	}

	if e.codec != nil {
		stats.Diversity = e.diversity(candidates)
	}

	return stats
}

// diversity is the mean Euclidean distance of genomes to their centroid
// Genomes whose length differs from the first are skipped
func (e *Engine[S, F]) diversity(candidates []Candidate[S, F]) float64 {
	if len(candidates) < 2 {
		return 0
	}

	genomes := make([][]float64, 0, len(candidates))
	for _, c := range candidates {
		g := e.codec.Encode(c.Data)
		if len(genomes) > 0 && len(g) != len(genomes[0]) {
			continue
		}
		genomes = append(genomes, g)
	}
	if len(genomes) < 2 {
		return 0
	}

	centroid := make([]float64, len(genomes[0]))
	for _, g := range genomes {
		floats.Add(centroid, g)
	}
	floats.Scale(1/float64(len(genomes)), centroid)

	total := 0.0
	for _, g := range genomes {
		total += floats.Distance(g, centroid, 2)
	}
	return total / float64(len(genomes))
}

// History returns per-generation statistics, the final evaluation included last
func (e *Engine[S, F]) History() []PoolStats[F] {
	return e.history
}
