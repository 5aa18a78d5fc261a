package hatch

import "sort"

// ChoosePet draws one outcome by a linear cumulative scan in table order.
// Outcomes whose probability is zero are never returned. If rounding leaves
// the roll above the final cumulative sum, the last drawable outcome wins.
func ChoosePet(weighted []WeightedOutcome, rng RandomSource) (WeightedOutcome, error) {
	if rng == nil {
		rng = DefaultRNG()
	}
	i := scan(weighted, rng.Float64())
	if i < 0 {
		if len(weighted) == 0 {
			return WeightedOutcome{}, ErrEmptyTable
		}
		return WeightedOutcome{}, ErrZeroWeight
	}
	return weighted[i], nil
}

func scan(weighted []WeightedOutcome, r float64) int {
	last := -1
	var cum float64
	for i, w := range weighted {
		if w.NormalizedProbability <= 0 {
			continue
		}
		last = i
		cum += w.NormalizedProbability
		if cum >= r {
			return i
		}
	}
	return last
}

// Picker is a precomputed CDF over the drawable outcomes. Pick selects the
// same outcome ChoosePet would for the same roll, in O(log n).
type Picker struct {
	weighted []WeightedOutcome
	cum      []float64 // cumulative probability over idx
	idx      []int     // positions in weighted with probability > 0
}

// NewPicker builds a Picker. It fails the same way ChoosePet does when no
// outcome is drawable.
func NewPicker(weighted []WeightedOutcome) (*Picker, error) {
	if len(weighted) == 0 {
		return nil, ErrEmptyTable
	}
	p := &Picker{weighted: weighted}
	var cum float64
	for i, w := range weighted {
		if w.NormalizedProbability <= 0 {
			continue
		}
		cum += w.NormalizedProbability
		p.cum = append(p.cum, cum)
		p.idx = append(p.idx, i)
	}
	if len(p.idx) == 0 {
		return nil, ErrZeroWeight
	}
	return p, nil
}

// Pick maps a roll in [0,1) to an outcome.
func (p *Picker) Pick(r float64) WeightedOutcome {
	k := sort.SearchFloat64s(p.cum, r)
	if k >= len(p.cum) {
		k = len(p.cum) - 1
	}
	return p.weighted[p.idx[k]]
}

// Draw picks with a fresh roll from rng.
func (p *Picker) Draw(rng RandomSource) WeightedOutcome {
	if rng == nil {
		rng = DefaultRNG()
	}
	return p.Pick(rng.Float64())
}
