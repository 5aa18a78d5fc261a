package hatch

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// TrialGoal selects what the simulation measures per trial.
type TrialGoal string

const (
	// Eggs until the first occurrence of the target (capped at MaxEggs).
	GoalFirstHit TrialGoal = "first_hit"
	// Given a fixed budget of eggs, count occurrences of the target.
	GoalFixedBudget TrialGoal = "fixed_budget"
)

// DefaultMaxEggs caps a GoalFirstHit trial when MaxEggs is unset.
const DefaultMaxEggs = 10_000_000

var (
	ErrInvalidTarget     = errors.New("invalid trial target")
	ErrUnreachableTarget = errors.New("trial target has zero probability")
	ErrInvalidGoal       = errors.New("invalid trial goal")
)

// TrialParams describes one Monte Carlo setup.
type TrialParams struct {
	Table  Table
	Params Params
	Target ResultKey

	MaxEggs int // GoalFirstHit cap; <=0 means DefaultMaxEggs
	Budget  int // GoalFixedBudget eggs per trial

	RNG RandomSource
}

// Stats summarizes simulation results.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	// raw samples for callers that want histograms
	Samples []int `json:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// ParseTarget resolves a display label such as "Shiny Mythic Royal Trophy"
// to its ResultKey in table.
func ParseTarget(table Table, label string) (ResultKey, error) {
	rest := strings.TrimSpace(label)
	var m Modifier
	if s, ok := strings.CutPrefix(rest, "Shiny "); ok && table.Index(rest) < 0 {
		m |= ModShiny
		rest = s
	}
	if s, ok := strings.CutPrefix(rest, "Mythic "); ok && table.Index(rest) < 0 {
		m |= ModMythic
		rest = s
	}
	i := table.Index(rest)
	if i < 0 {
		return ResultKey{}, fmt.Errorf("%w: no outcome %q", ErrInvalidTarget, rest)
	}
	if m.Mythic() && !table[i].Rarity.LuckAffected() {
		return ResultKey{}, fmt.Errorf("%w: %s outcomes cannot be mythic", ErrInvalidTarget, table[i].Rarity)
	}
	return ResultKey{Index: i, Mods: m}, nil
}

// trialRun holds state shared by every trial of one RunTrials call.
type trialRun struct {
	p      TrialParams
	picker *Picker
	rng    RandomSource
}

func (t *trialRun) hatchOne() ResultKey {
	w := t.picker.Draw(t.rng)
	return ResultKey{Index: w.Index, Mods: RollModifiers(w.Outcome, t.p.Params, t.rng)}
}

// simulateOne returns the primary metric for one trial depending on the goal.
func (t *trialRun) simulateOne(goal TrialGoal) int {
	switch goal {
	case GoalFirstHit:
		limit := t.p.MaxEggs
		if limit <= 0 {
			limit = DefaultMaxEggs
		}
		for eggs := 1; eggs <= limit; eggs++ {
			if t.hatchOne() == t.p.Target {
				return eggs
			}
		}
		return limit
	case GoalFixedBudget:
		count := 0
		for i := 0; i < t.p.Budget; i++ {
			if t.hatchOne() == t.p.Target {
				count++
			}
		}
		return count
	}
	return 0
}

// RunTrials repeats trials and returns summary stats. Weights are computed
// once for all trials.
func RunTrials(p TrialParams, goal TrialGoal, trials int) (Stats, error) {
	if goal != GoalFirstHit && goal != GoalFixedBudget {
		return Stats{}, fmt.Errorf("%w: %q", ErrInvalidGoal, goal)
	}
	if trials <= 0 {
		return Stats{}, nil
	}
	if p.Target.Index < 0 || p.Target.Index >= len(p.Table) {
		return Stats{}, fmt.Errorf("%w: index %d", ErrInvalidTarget, p.Target.Index)
	}
	weighted, err := ApplyLuck(p.Table, p.Params.LuckMultiplier())
	if err != nil {
		return Stats{}, err
	}
	picker, err := NewPicker(weighted)
	if err != nil {
		return Stats{}, err
	}
	chance := weighted[p.Target.Index].NormalizedProbability * p.Params.modChance(p.Target.Mods)
	if p.Target.Mods.Mythic() && !p.Table[p.Target.Index].Rarity.LuckAffected() {
		chance = 0
	}
	if goal == GoalFirstHit && chance <= 0 {
		return Stats{}, ErrUnreachableTarget
	}

	rng := p.RNG
	if rng == nil {
		rng = DefaultRNG()
	}
	run := &trialRun{p: p, picker: picker, rng: rng}
	samples := make([]int, trials)
	for i := range samples {
		samples[i] = run.simulateOne(goal)
	}
	return calcStats(samples), nil
}
