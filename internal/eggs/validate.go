package eggs

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/xtding233/egg-hatchery/internal/hatch"
)

var ErrInvalidConfig = errors.New("egg config validation failed")

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	if v := cfg.Params.LuckPercent; v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0) {
		errs = append(errs, "params.luck_percent must be >= 0")
	}
	if v := cfg.Params.ShinyPercent; v != nil && !validPercent(*v) {
		errs = append(errs, "params.shiny_percent must be in [0,100]")
	}
	if v := cfg.Params.MythicPercent; v != nil && !validPercent(*v) {
		errs = append(errs, "params.mythic_percent must be in [0,100]")
	}

	seen := make(map[string]bool, len(cfg.Pets))
	unaffected := 0
	for i, p := range cfg.Pets {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			errs = append(errs, fmt.Sprintf("pets[%d].name is required", i))
		} else if seen[name] {
			errs = append(errs, fmt.Sprintf("pets[%d].name %q is duplicated", i, name))
		}
		seen[name] = true
		if !(p.BaseChance > 0 && p.BaseChance <= 100) {
			errs = append(errs, fmt.Sprintf("pets[%d].base_chance must be in (0,100]", i))
		}
		tier, err := hatch.ParseRarity(p.Rarity)
		if err != nil {
			errs = append(errs, fmt.Sprintf("pets[%d].rarity must be one of: common, unique, epic, legendary, secret", i))
		} else if !tier.LuckAffected() {
			unaffected++
		}
	}
	// luck 0 would leave nothing to draw
	if len(cfg.Pets) > 0 && unaffected == 0 {
		errs = append(errs, "pets must include at least one common, unique or epic pet")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}

func validPercent(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 100
}
