package hatch

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("hatch", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Eggs != 100 || cfg.Locale != "en" || cfg.ConfigDir != "." {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Luck != nil || cfg.Shiny != nil || cfg.Mythic != nil {
		t.Fatalf("percents should inherit by default")
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("HATCH_EGGS", "7")
	t.Setenv("HATCH_SHINY", "12.5")
	fs := flag.NewFlagSet("hatch", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-luck", "300", "-egg", "frost"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Eggs != 7 || *cfg.Luck != 300 || *cfg.Shiny != 12.5 || cfg.Egg != "frost" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	fs = flag.NewFlagSet("hatch", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	if _, err := ParseConfig(fs, []string{"-luck", "lots"}); err == nil {
		t.Fatalf("expected flag error")
	}
}

func TestRunPrintsRows(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{Eggs: 1000, ConfigDir: t.TempDir(), Locale: "en"}
	if err := Run(cfg, &out); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if !strings.HasPrefix(s, "Hatch Results (1000 eggs, luck 100%):\n") {
		t.Fatalf("unexpected header: %q", s)
	}
	if !strings.Contains(s, "- Bronze Bunny: ") || !strings.Contains(s, "(Odds: 1 in 2)") {
		t.Fatalf("missing Bronze Bunny row: %q", s)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	if err := Run(Config{Eggs: 0, ConfigDir: dir, Locale: "en"}, &bytes.Buffer{}); !errors.Is(err, ErrInvalidEggs) {
		t.Fatalf("expected ErrInvalidEggs, got %v", err)
	}
	neg := -1.0
	if err := Run(Config{Eggs: 5, Luck: &neg, ConfigDir: dir, Locale: "en"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected luck error")
	}
}

func TestRunExportAndTrials(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "run.xlsx")
	cfg := Config{
		Eggs:      50,
		ConfigDir: t.TempDir(),
		Locale:    "en",
		XLSX:      path,
		Trials:    20,
		Target:    "Silver Fox",
		Budget:    100,
	}
	if err := Run(cfg, &out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("xlsx not written: %v", err)
	}
	if !strings.Contains(out.String(), "Trials (Silver Fox, fixed_budget, n=20)") {
		t.Fatalf("missing trial summary: %q", out.String())
	}
}
