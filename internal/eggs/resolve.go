// resolve.go
package eggs

import (
	"fmt"

	"github.com/xtding233/egg-hatchery/internal/hatch"
)

// Resolve validates a merged config and turns it into a table and params.
// An empty pet list means the default table; unset params keep defaults.
func Resolve(cfg RawConfig) (hatch.Table, hatch.Params, error) {
	params := hatch.DefaultParams()
	if err := ValidateRaw(cfg); err != nil {
		return nil, params, err
	}

	table := hatch.DefaultTable()
	if len(cfg.Pets) > 0 {
		table = make(hatch.Table, len(cfg.Pets))
		for i, p := range cfg.Pets {
			tier, err := hatch.ParseRarity(p.Rarity)
			if err != nil {
				return nil, params, err
			}
			table[i] = hatch.Outcome{Name: p.Name, BaseChance: p.BaseChance, Rarity: tier}
		}
	}
	if err := table.Validate(); err != nil {
		return nil, params, err
	}

	if v := cfg.Params.LuckPercent; v != nil {
		if err := params.SetLuckPercent(*v); err != nil {
			return nil, params, fmt.Errorf("params: %w", err)
		}
	}
	if v := cfg.Params.ShinyPercent; v != nil {
		if err := params.SetShinyPercent(*v); err != nil {
			return nil, params, fmt.Errorf("params: %w", err)
		}
	}
	if v := cfg.Params.MythicPercent; v != nil {
		if err := params.SetMythicPercent(*v); err != nil {
			return nil, params, fmt.Errorf("params: %w", err)
		}
	}
	return table, params, nil
}

// Load is LoadMerged followed by Resolve.
func (l *Loader) Load(egg string) (hatch.Table, hatch.Params, error) {
	cfg, err := l.LoadMerged(egg)
	if err != nil {
		return nil, hatch.DefaultParams(), err
	}
	return Resolve(cfg)
}
