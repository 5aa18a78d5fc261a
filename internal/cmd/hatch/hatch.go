// Package hatch parses hatch command flags and runs one simulation.
package hatch

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/xtding233/egg-hatchery/internal/config"
	"github.com/xtding233/egg-hatchery/internal/eggs"
	"github.com/xtding233/egg-hatchery/internal/export"
	sim "github.com/xtding233/egg-hatchery/internal/hatch"
)

var ErrInvalidEggs = errors.New("please enter a valid number of eggs")

// Config holds hatch command configuration. Nil percents inherit the egg
// file (or the built-in defaults).
type Config struct {
	Eggs      int      `env:"HATCH_EGGS" envDefault:"100"`
	Luck      *float64 `env:"HATCH_LUCK"`
	Shiny     *float64 `env:"HATCH_SHINY"`
	Mythic    *float64 `env:"HATCH_MYTHIC"`
	ConfigDir string   `env:"HATCH_CONFIG_DIR" envDefault:"."`
	Egg       string   `env:"HATCH_EGG"`
	Locale    string   `env:"HATCH_LOCALE" envDefault:"en"`
	XLSX      string   `env:"HATCH_XLSX"`
	Trials    int      `env:"HATCH_TRIALS"`
	Target    string   `env:"HATCH_TARGET"`
	Budget    int      `env:"HATCH_BUDGET"`
}

func floatFlag(fs *flag.FlagSet, name, usage string, dst **float64) {
	fs.Func(name, usage, func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q", name, s)
		}
		*dst = &v
		return nil
	})
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Eggs, "eggs", cfg.Eggs, "Number of eggs to hatch")
	floatFlag(fs, "luck", "Luck percent (>= 0)", &cfg.Luck)
	floatFlag(fs, "shiny", "Shiny chance percent (0..100)", &cfg.Shiny)
	floatFlag(fs, "mythic", "Mythic chance percent (0..100)", &cfg.Mythic)
	fs.StringVar(&cfg.ConfigDir, "config", cfg.ConfigDir, "Directory holding eggs/*.yaml")
	fs.StringVar(&cfg.Egg, "egg", cfg.Egg, "Egg file to overlay on eggs/default.yaml")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for number grouping")
	fs.StringVar(&cfg.XLSX, "xlsx", cfg.XLSX, "Write results to this .xlsx file")
	fs.IntVar(&cfg.Trials, "trials", cfg.Trials, "Monte Carlo trials for -target (0 disables)")
	fs.StringVar(&cfg.Target, "target", cfg.Target, `Result label to study, e.g. "Shiny Royal Trophy"`)
	fs.IntVar(&cfg.Budget, "budget", cfg.Budget, "Eggs per trial; 0 measures eggs until the first target")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run hatches cfg.Eggs eggs and prints the report to out.
func Run(cfg Config, out io.Writer) error {
	if cfg.Eggs < 1 {
		return ErrInvalidEggs
	}
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return fmt.Errorf("parse locale: %w", err)
	}
	table, params, err := eggs.NewLoader(cfg.ConfigDir).Load(cfg.Egg)
	if err != nil {
		return fmt.Errorf("load egg: %w", err)
	}
	if cfg.Luck != nil {
		if err := params.SetLuckPercent(*cfg.Luck); err != nil {
			return err
		}
	}
	if cfg.Shiny != nil {
		if err := params.SetShinyPercent(*cfg.Shiny); err != nil {
			return err
		}
	}
	if cfg.Mythic != nil {
		if err := params.SetMythicPercent(*cfg.Mythic); err != nil {
			return err
		}
	}

	res, err := sim.HatchEggs(cfg.Eggs, table, params, sim.DefaultRNG())
	if err != nil {
		return err
	}
	rows := sim.NewReporter(tag).Format(res, params)

	fmt.Fprintf(out, "Hatch Results (%d eggs, luck %v%%):\n", cfg.Eggs, params.LuckPercent())
	for _, r := range rows {
		fmt.Fprintf(out, "- %s: %d (Odds: %s)\n", r.Label, r.Count, r.OriginalOdds)
	}

	if cfg.XLSX != "" {
		meta := export.Meta{
			RunID:        uuid.NewString(),
			Eggs:         cfg.Eggs,
			LuckPercent:  params.LuckPercent(),
			ShinyChance:  params.ShinyChance(),
			MythicChance: params.MythicChance(),
		}
		if err := export.RowsXLSX(cfg.XLSX, meta, rows); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", cfg.XLSX)
	}

	if cfg.Trials > 0 && cfg.Target != "" {
		return runTrials(cfg, table, params, out)
	}
	return nil
}

func runTrials(cfg Config, table sim.Table, params sim.Params, out io.Writer) error {
	key, err := sim.ParseTarget(table, cfg.Target)
	if err != nil {
		return err
	}
	goal := sim.GoalFirstHit
	if cfg.Budget > 0 {
		goal = sim.GoalFixedBudget
	}
	st, err := sim.RunTrials(sim.TrialParams{
		Table:  table,
		Params: params,
		Target: key,
		Budget: cfg.Budget,
	}, goal, cfg.Trials)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Trials (%s, %s, n=%d): mean=%.2f stddev=%.2f p50=%.0f p90=%.0f p99=%.0f\n",
		cfg.Target, goal, cfg.Trials, st.Mean, st.StdDev, st.P50, st.P90, st.P99)
	return nil
}
