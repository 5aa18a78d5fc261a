package hatch

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DisplayRow is one rendered line of a hatch report.
type DisplayRow struct {
	Label           string
	Count           int
	TrueProbability float64 // current luck and modifier settings
	Expected        float64 // TrueProbability * eggs
	OriginalOdds    string  // luck-free, "1 in X"
}

// Reporter turns Results into ordered display rows.
type Reporter struct {
	printer *message.Printer
}

// NewReporter groups odds using tag's conventions.
func NewReporter(tag language.Tag) *Reporter {
	return &Reporter{printer: message.NewPrinter(tag)}
}

// FormatResults formats with the English reporter.
func FormatResults(r Results, p Params) []DisplayRow {
	return (&Reporter{printer: defaultPrinter}).Format(r, p)
}

// OriginalOdds is the package-level OriginalOdds in this reporter's locale.
func (rp *Reporter) OriginalOdds(baseChance float64, shiny, mythic bool, p Params) string {
	return formatOdds(rp.printer, originalChance(baseChance, Mods(shiny, mythic), p))
}

// Format sorts groups by true probability, most common first. Ties break by
// table position, then modifier order.
func (rp *Reporter) Format(r Results, p Params) []DisplayRow {
	groups := make([]*ResultGroup, 0, len(r.Groups))
	for _, g := range r.Groups {
		groups = append(groups, g)
	}
	trueProb := func(g *ResultGroup) float64 {
		return g.NormalizedProbability * p.modChance(g.Key.Mods)
	}
	sort.Slice(groups, func(i, j int) bool {
		pi, pj := trueProb(groups[i]), trueProb(groups[j])
		if pi != pj {
			return pi > pj
		}
		if groups[i].Key.Index != groups[j].Key.Index {
			return groups[i].Key.Index < groups[j].Key.Index
		}
		return groups[i].Key.Mods < groups[j].Key.Mods
	})

	rows := make([]DisplayRow, len(groups))
	for i, g := range groups {
		tp := trueProb(g)
		rows[i] = DisplayRow{
			Label:           g.Label(),
			Count:           g.Count,
			TrueProbability: tp,
			Expected:        tp * float64(r.Eggs),
			OriginalOdds:    formatOdds(rp.printer, originalChance(g.BaseChance, g.Key.Mods, p)),
		}
	}
	return rows
}
