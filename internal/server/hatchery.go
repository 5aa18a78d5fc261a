// Package server exposes a hatchery over HTTP and gRPC.
package server

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/xtding233/egg-hatchery/internal/hatch"
)

// Report is the result of one hatch request.
type Report struct {
	RunID        string
	Eggs         int
	LuckPercent  float64
	ShinyChance  float64
	MythicChance float64
	Rows         []hatch.DisplayRow
}

// Hatchery holds the egg table and params shared by all requests. Each
// request runs to completion under the lock.
type Hatchery struct {
	mu       sync.Mutex
	table    hatch.Table
	params   hatch.Params
	loaded   hatch.Params // params as last read from the egg files
	maxEggs  int
	rng      hatch.RandomSource
	reporter *hatch.Reporter
	logger   *log.Logger
}

// Option configures a Hatchery.
type Option func(*Hatchery)

func WithRNG(rng hatch.RandomSource) Option { return func(h *Hatchery) { h.rng = rng } }
func WithLogger(l *log.Logger) Option       { return func(h *Hatchery) { h.logger = l } }
func WithLocale(tag language.Tag) Option {
	return func(h *Hatchery) { h.reporter = hatch.NewReporter(tag) }
}

// WithMaxEggs caps the eggs a single Hatch may draw. n <= 0 keeps
// DefaultMaxEggs.
func WithMaxEggs(n int) Option {
	return func(h *Hatchery) {
		if n > 0 {
			h.maxEggs = n
		}
	}
}

// DefaultMaxEggs bounds one hatch request.
const DefaultMaxEggs = 10_000_000

// NewHatchery validates table and returns a ready hatchery.
func NewHatchery(table hatch.Table, params hatch.Params, opts ...Option) (*Hatchery, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	h := &Hatchery{
		table:    table,
		params:   params,
		loaded:   params,
		maxEggs:  DefaultMaxEggs,
		rng:      hatch.DefaultRNG(),
		reporter: hatch.NewReporter(language.English),
		logger:   log.New(io.Discard, "", 0),
	}
	for _, o := range opts {
		o(h)
	}
	return h, nil
}

// Hatch draws eggs with the current params.
func (h *Hatchery) Hatch(eggs int) (Report, error) {
	if eggs > h.maxEggs {
		return Report{}, fmt.Errorf("%w: got %d, limit %d", hatch.ErrInvalidEggCount, eggs, h.maxEggs)
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	res, err := hatch.HatchEggs(eggs, h.table, h.params, h.rng)
	if err != nil {
		return Report{}, err
	}
	rep := Report{
		RunID:        uuid.NewString(),
		Eggs:         eggs,
		LuckPercent:  h.params.LuckPercent(),
		ShinyChance:  h.params.ShinyChance(),
		MythicChance: h.params.MythicChance(),
		Rows:         h.reporter.Format(res, h.params),
	}
	h.logger.Printf("hatch run=%s eggs=%d groups=%d luck=%v%%", rep.RunID, eggs, len(rep.Rows), rep.LuckPercent)
	return rep, nil
}

// Params returns a copy of the current params.
func (h *Hatchery) Params() hatch.Params {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.params
}

// ParamUpdate sets any non-nil field. Shiny and mythic are percents.
type ParamUpdate struct {
	LuckPercent   *float64
	ShinyPercent  *float64
	MythicPercent *float64
}

// Update applies u atomically: either every field is applied or none is.
func (h *Hatchery) Update(u ParamUpdate) (hatch.Params, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	next := h.params
	if u.LuckPercent != nil {
		if err := next.SetLuckPercent(*u.LuckPercent); err != nil {
			return h.params, err
		}
	}
	if u.ShinyPercent != nil {
		if err := next.SetShinyPercent(*u.ShinyPercent); err != nil {
			return h.params, err
		}
	}
	if u.MythicPercent != nil {
		if err := next.SetMythicPercent(*u.MythicPercent); err != nil {
			return h.params, err
		}
	}
	h.params = next
	h.logger.Printf("params luck=%v%% shiny=%.6f mythic=%.6f", next.LuckPercent(), next.ShinyChance(), next.MythicChance())
	return next, nil
}

func (h *Hatchery) SetLuckPercent(v float64) (hatch.Params, error) {
	return h.Update(ParamUpdate{LuckPercent: &v})
}

func (h *Hatchery) SetShinyPercent(v float64) (hatch.Params, error) {
	return h.Update(ParamUpdate{ShinyPercent: &v})
}

func (h *Hatchery) SetMythicPercent(v float64) (hatch.Params, error) {
	return h.Update(ParamUpdate{MythicPercent: &v})
}

// OriginalOdds looks up name in the table and renders its luck-free odds.
func (h *Hatchery) OriginalOdds(name string, shiny, mythic bool) (label, odds string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := h.table.Index(name)
	if i < 0 {
		return "", "", fmt.Errorf("%w: no outcome %q", hatch.ErrInvalidTarget, name)
	}
	o := h.table[i]
	if mythic && !o.Rarity.LuckAffected() {
		return "", "", fmt.Errorf("%w: %s outcomes cannot be mythic", hatch.ErrInvalidTarget, o.Rarity)
	}
	return hatch.Label(o, hatch.Mods(shiny, mythic)), h.reporter.OriginalOdds(o.BaseChance, shiny, mythic, h.params), nil
}

// Weights returns the normalized weights for the current luck.
func (h *Hatchery) Weights() ([]hatch.WeightedOutcome, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return hatch.ApplyLuck(h.table, h.params.LuckMultiplier())
}

// MaxEggs is the largest egg count Hatch accepts.
func (h *Hatchery) MaxEggs() int { return h.maxEggs }

// Reload swaps in a new table after an egg file changed. Only params whose
// file value moved since the previous load are applied; the rest keep
// whatever the last Update set.
func (h *Hatchery) Reload(table hatch.Table, params hatch.Params) error {
	if err := table.Validate(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.table = table
	h.params = h.params.Rebase(h.loaded, params)
	h.loaded = params
	h.logger.Printf("reloaded egg table: %d pets, luck=%v%%", len(table), h.params.LuckPercent())
	return nil
}
