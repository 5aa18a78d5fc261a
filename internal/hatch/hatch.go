// Package hatch simulates egg hatching: luck-weighted pet draws, shiny and
// mythic modifier rolls, result aggregation and ranked reporting.
package hatch

import (
	"errors"
	"fmt"
)

var ErrInvalidEggCount = errors.New("invalid number of eggs; must be >= 1")

// ResultKey groups draws by outcome and modifier set.
type ResultKey struct {
	Index int // position in the Table
	Mods  Modifier
}

// ResultGroup aggregates identical draws of one run.
type ResultGroup struct {
	Key                   ResultKey
	Outcome               Outcome
	Count                 int
	BaseChance            float64
	NormalizedProbability float64 // at draw time
	Shiny                 bool
	Mythic                bool
}

// Label is the group's display name.
func (g ResultGroup) Label() string { return Label(g.Outcome, g.Key.Mods) }

// Results is the outcome of one HatchEggs call.
type Results struct {
	Eggs    int
	Groups  map[ResultKey]*ResultGroup
	Weights []WeightedOutcome // weights the run drew from
}

// Total sums the group counts.
func (r Results) Total() int {
	n := 0
	for _, g := range r.Groups {
		n += g.Count
	}
	return n
}

// HatchEggs draws n eggs from table under p. Weights are computed once for
// the whole call.
func HatchEggs(n int, table Table, p Params, rng RandomSource) (Results, error) {
	if n < 1 {
		return Results{}, fmt.Errorf("%w: got %d", ErrInvalidEggCount, n)
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	weighted, err := ApplyLuck(table, p.LuckMultiplier())
	if err != nil {
		return Results{}, err
	}
	picker, err := NewPicker(weighted)
	if err != nil {
		return Results{}, err
	}

	groups := make(map[ResultKey]*ResultGroup)
	for i := 0; i < n; i++ {
		w := picker.Draw(rng)
		mods := RollModifiers(w.Outcome, p, rng)
		key := ResultKey{Index: w.Index, Mods: mods}
		g, ok := groups[key]
		if !ok {
			g = &ResultGroup{
				Key:                   key,
				Outcome:               w.Outcome,
				BaseChance:            w.BaseChance,
				NormalizedProbability: w.NormalizedProbability,
				Shiny:                 mods.Shiny(),
				Mythic:                mods.Mythic(),
			}
			groups[key] = g
		}
		g.Count++
	}
	return Results{Eggs: n, Groups: groups, Weights: weighted}, nil
}
