package export

import (
	"path/filepath"
	"testing"

	"github.com/xtding233/egg-hatchery/internal/hatch"

	"github.com/xuri/excelize/v2"
)

func TestRowsXLSX(t *testing.T) {
	rows := []hatch.DisplayRow{
		{Label: "Bronze Bunny", Count: 63, TrueProbability: 0.63, Expected: 63.4, OriginalOdds: "1 in 2"},
		{Label: "Shiny Silver Fox", Count: 1, TrueProbability: 0.012, Expected: 1.2, OriginalOdds: "1 in 87"},
	}
	path := filepath.Join(t.TempDir(), "out", "hatch.xlsx")
	if err := RowsXLSX(path, Meta{RunID: "run-1", Eggs: 100, LuckPercent: 100}, rows); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	checks := map[string]string{
		"B1": "run-1",
		"A4": "Label",
		"E4": "Original Odds",
		"A5": "Bronze Bunny",
		"B5": "63",
		"A6": "Shiny Silver Fox",
		"E6": "1 in 87",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("%s: %v", cell, err)
		}
		if got != want {
			t.Fatalf("%s: got %q want %q", cell, got, want)
		}
	}
}

func TestColName(t *testing.T) {
	for n, want := range map[int]string{1: "A", 26: "Z", 27: "AA", 52: "AZ", 0: ""} {
		if got := colName(n); got != want {
			t.Fatalf("colName(%d)=%q want %q", n, got, want)
		}
	}
}
