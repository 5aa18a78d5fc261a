package hatch

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// InfiniteOdds is shown when a combination can never occur.
const InfiniteOdds = "1 in ∞"

var defaultPrinter = message.NewPrinter(language.English)

// OriginalOdds renders the luck-free odds of baseChance with the given
// modifiers as "1 in X", X grouped in English style.
func OriginalOdds(baseChance float64, shiny, mythic bool, p Params) string {
	return formatOdds(defaultPrinter, originalChance(baseChance, Mods(shiny, mythic), p))
}

func originalChance(baseChance float64, m Modifier, p Params) float64 {
	return baseChance / 100 * p.modChance(m)
}

func formatOdds(pr *message.Printer, chance float64) string {
	if math.IsNaN(chance) || math.IsInf(chance, 0) || chance <= 0 {
		return InfiniteOdds
	}
	inv := math.Round(1 / chance)
	if math.IsInf(inv, 0) {
		return InfiniteOdds
	}
	if inv < math.MaxInt64 {
		return pr.Sprintf("1 in %d", int64(inv))
	}
	return pr.Sprintf("1 in %v", number.Decimal(inv, number.MaxFractionDigits(0)))
}
