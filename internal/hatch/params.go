package hatch

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultLuckPercent  = 100.0
	DefaultShinyChance  = 1.0 / 26
	DefaultMythicChance = 1.0 / 40
)

var (
	ErrInvalidLuck    = errors.New("invalid luck; must be a number >= 0")
	ErrInvalidPercent = errors.New("invalid percent; must be a number in 0..100")
)

// Params carries the user-adjustable knobs of a hatch run. The zero value is
// not useful; start from DefaultParams.
type Params struct {
	luckPercent  float64
	shinyChance  float64 // 0..1
	mythicChance float64 // 0..1
}

func DefaultParams() Params {
	return Params{
		luckPercent:  DefaultLuckPercent,
		shinyChance:  DefaultShinyChance,
		mythicChance: DefaultMythicChance,
	}
}

func (p Params) LuckPercent() float64  { return p.luckPercent }
func (p Params) ShinyChance() float64  { return p.shinyChance }
func (p Params) MythicChance() float64 { return p.mythicChance }

// LuckMultiplier is LuckPercent / 100.
func (p Params) LuckMultiplier() float64 { return p.luckPercent / 100 }

// SetLuckPercent updates luck. On error p is unchanged.
func (p *Params) SetLuckPercent(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidLuck, v)
	}
	p.luckPercent = v
	return nil
}

// SetShinyPercent takes a percent (3.85 means 3.85%).
func (p *Params) SetShinyPercent(v float64) error {
	c, err := percentToChance(v)
	if err != nil {
		return fmt.Errorf("shiny: %w", err)
	}
	p.shinyChance = c
	return nil
}

// SetMythicPercent takes a percent (2.5 means 2.5%).
func (p *Params) SetMythicPercent(v float64) error {
	c, err := percentToChance(v)
	if err != nil {
		return fmt.Errorf("mythic: %w", err)
	}
	p.mythicChance = c
	return nil
}

func percentToChance(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 100 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPercent, v)
	}
	return v / 100, nil
}

// Rebase carries the edits between base and next over to p. A field that
// is equal in base and next keeps p's value, so runtime updates made after
// base was loaded survive.
func (p Params) Rebase(base, next Params) Params {
	if next.luckPercent != base.luckPercent {
		p.luckPercent = next.luckPercent
	}
	if next.shinyChance != base.shinyChance {
		p.shinyChance = next.shinyChance
	}
	if next.mythicChance != base.mythicChance {
		p.mythicChance = next.mythicChance
	}
	return p
}

// modChance is the probability factor a modifier set contributes.
func (p Params) modChance(m Modifier) float64 {
	f := 1.0
	if m.Shiny() {
		f *= p.shinyChance
	}
	if m.Mythic() {
		f *= p.mythicChance
	}
	return f
}
