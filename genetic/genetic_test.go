package genetic

import (
	"math/rand/v2"
	"testing"
)

func rankedPool(scores ...float64) *Pool[genes, float64] {
	members := make([]Candidate[genes, float64], len(scores))
	for i, s := range scores {
		members[i] = Candidate[genes, float64]{Data: genes{float64(i)}, Score: s}
	}
	return &Pool[genes, float64]{Members: members}
}

func TestWindowSelector_StaysInWindow(t *testing.T) {
	pool := rankedPool(9, 8, 7, 6, 5, 4, 3, 2, 1, 0)
	sel := &WindowSelector[genes, float64]{Window: 3}
	rng := rand.New(rand.NewPCG(1, 1))

	seen := make(map[float64]bool)
	for i := 0; i < 200; i++ {
		for _, c := range sel.Select(pool, 2, rng) {
			if c.Score < 7 {
				t.Fatalf("expected selection from top 3 ranks, got score %v", c.Score)
			}
			seen[c.Score] = true
		}
	}
	if len(seen) != 3 {
		t.Errorf("expected all 3 window ranks drawn, got %v", seen)
	}
}

func TestWindowSelector_WindowLargerThanPool(t *testing.T) {
	pool := rankedPool(3, 2)
	sel := &WindowSelector[genes, float64]{Window: 10}
	rng := rand.New(rand.NewPCG(2, 2))

	for i := 0; i < 50; i++ {
		if got := sel.Select(pool, 2, rng); len(got) != 2 {
			t.Fatalf("expected 2 parents, got %d", len(got))
		}
	}
}

func TestTournamentSelector_PrefersBetter(t *testing.T) {
	pool := rankedPool(10, 0, 0, 0, 0)
	sel := &TournamentSelector[genes, float64]{TournamentSize: 5}
	rng := rand.New(rand.NewPCG(3, 3))

	wins := 0
	for i := 0; i < 100; i++ {
		if sel.Select(pool, 1, rng)[0].Score == 10 {
			wins++
		}
	}
	// P(best absent from 5 draws) = 0.8^5 ~ 0.33
	if wins < 50 {
		t.Errorf("expected best to win most tournaments, won %d of 100", wins)
	}
}

func TestRouletteSelector_ZeroScoresUniform(t *testing.T) {
	pool := rankedPool(0, 0, 0)
	sel := &RouletteSelector[genes, float64]{}
	rng := rand.New(rand.NewPCG(4, 4))

	if got := sel.Select(pool, 5, rng); len(got) != 5 {
		t.Errorf("expected 5 selections, got %d", len(got))
	}
}

func TestRouletteSelector_NeverPicksZeroWhenPositiveExists(t *testing.T) {
	pool := rankedPool(5, 0, -3)
	sel := &RouletteSelector[genes, float64]{}
	rng := rand.New(rand.NewPCG(5, 5))

	for _, c := range sel.Select(pool, 100, rng) {
		if c.Score != 5 {
			t.Fatalf("expected only the positive candidate, got %v", c.Score)
		}
	}
}

func TestUniform_GenesFromParents(t *testing.T) {
	a := genes{1, 2, 3, 4, 5, 6}
	b := genes{-1, -2, -3, -4, -5, -6}
	rng := rand.New(rand.NewPCG(6, 6))

	fromA, fromB := 0, 0
	for n := 0; n < 50; n++ {
		child := Uniform(a, b, 0.5, rng)
		if len(child) != len(a) {
			t.Fatalf("expected child length %d, got %d", len(a), len(child))
		}
		for i, v := range child {
			switch v {
			case a[i]:
				fromA++
			case b[i]:
				fromB++
			default:
				t.Fatalf("gene %d: expected %v or %v, got %v", i, a[i], b[i], v)
			}
		}
	}
	if fromA == 0 || fromB == 0 {
		t.Errorf("expected genes from both parents, got %d from a and %d from b", fromA, fromB)
	}
}

func TestUniform_ChildIsCopy(t *testing.T) {
	a := genes{1, 2}
	b := genes{3, 4}
	rng := rand.New(rand.NewPCG(7, 7))

	child := Uniform(a, b, 0.5, rng)
	child[0], child[1] = 99, 99

	if a[0] != 1 || a[1] != 2 || b[0] != 3 || b[1] != 4 {
		t.Errorf("expected parents untouched, got %v and %v", a, b)
	}
}

func TestParameterBounds(t *testing.T) {
	b := ParameterBounds{Min: 2, Max: 5}
	rng := rand.New(rand.NewPCG(8, 8))

	if v := b.Clamp(1); v != 2 {
		t.Errorf("expected 2, got %v", v)
	}
	if v := b.Clamp(6); v != 5 {
		t.Errorf("expected 5, got %v", v)
	}
	if !b.Contains(2) || !b.Contains(5) || b.Contains(5.01) {
		t.Error("expected closed interval membership")
	}

	for i := 0; i < 1000; i++ {
		if v := b.Uniform(rng); v < 2 || v >= 5 {
			t.Fatalf("uniform draw out of range: %v", v)
		}
		if v := b.Jitter(5, 10, rng); !b.Contains(v) {
			t.Fatalf("jitter escaped bounds: %v", v)
		}
	}
}
