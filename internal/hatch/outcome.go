package hatch

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// RarityTier is the fixed rarity ladder of an egg's pets.
type RarityTier int

const (
	TierCommon RarityTier = iota
	TierUnique
	TierEpic
	TierLegendary
	TierSecret
)

var ErrUnknownRarity = errors.New("unknown rarity tier")

func (t RarityTier) String() string {
	switch t {
	case TierUnique:
		return "unique"
	case TierEpic:
		return "epic"
	case TierLegendary:
		return "legendary"
	case TierSecret:
		return "secret"
	default:
		return "common"
	}
}

// LuckAffected reports whether luck scales this tier's weight. The same
// tiers are the only ones that can roll mythic.
func (t RarityTier) LuckAffected() bool {
	return t == TierLegendary || t == TierSecret
}

// ParseRarity maps a tier name (case-insensitive) to its RarityTier.
func ParseRarity(s string) (RarityTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "common":
		return TierCommon, nil
	case "unique":
		return TierUnique, nil
	case "epic":
		return TierEpic, nil
	case "legendary":
		return TierLegendary, nil
	case "secret":
		return TierSecret, nil
	}
	return TierCommon, fmt.Errorf("%w: %q", ErrUnknownRarity, s)
}

// Outcome is one pet an egg can hatch. BaseChance is a percent in (0,100].
type Outcome struct {
	Name       string
	BaseChance float64
	Rarity     RarityTier
}

// Table lists outcomes in declaration order; that order is the draw order.
type Table []Outcome

var (
	ErrEmptyTable   = errors.New("outcome table is empty")
	ErrInvalidTable = errors.New("invalid outcome table")
)

// DefaultTable returns the stock egg.
func DefaultTable() Table {
	return Table{
		{Name: "Bronze Bunny", BaseChance: 64.0, Rarity: TierCommon},
		{Name: "Silver Fox", BaseChance: 30.0, Rarity: TierUnique},
		{Name: "Golden Dragon", BaseChance: 3.0, Rarity: TierEpic},
		{Name: "Diamond Serpent", BaseChance: 0.04, Rarity: TierLegendary},
		{Name: "Diamond Hexarium", BaseChance: 0.002, Rarity: TierLegendary},
		{Name: "King Pufferfish", BaseChance: 0.0001, Rarity: TierLegendary},
		{Name: "Royal Trophy", BaseChance: 0.000002, Rarity: TierSecret},
	}
}

// Validate checks names and chances.
func (t Table) Validate() error {
	if len(t) == 0 {
		return ErrEmptyTable
	}
	seen := make(map[string]bool, len(t))
	for i, o := range t {
		name := strings.TrimSpace(o.Name)
		if name == "" {
			return fmt.Errorf("%w: outcome %d has no name", ErrInvalidTable, i)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate outcome %q", ErrInvalidTable, name)
		}
		seen[name] = true
		c := o.BaseChance
		if math.IsNaN(c) || math.IsInf(c, 0) || c <= 0 || c > 100 {
			return fmt.Errorf("%w: %q base chance %v must be in (0,100]", ErrInvalidTable, name, c)
		}
	}
	return nil
}

// Index returns the position of the named outcome, or -1.
func (t Table) Index(name string) int {
	for i, o := range t {
		if o.Name == name {
			return i
		}
	}
	return -1
}
