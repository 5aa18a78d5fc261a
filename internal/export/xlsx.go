// Package export writes hatch reports to spreadsheet files.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xtding233/egg-hatchery/internal/hatch"

	"github.com/xuri/excelize/v2"
)

const sheet = "Results"

// Meta is the run summary written above the rows.
type Meta struct {
	RunID        string
	Eggs         int
	LuckPercent  float64
	ShinyChance  float64
	MythicChance float64
}

var header = []string{"Label", "Count", "True Probability", "Expected", "Original Odds"}

// RowsXLSX writes meta and rows to path, creating parent directories.
func RowsXLSX(path string, meta Meta, rows []hatch.DisplayRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	f.SetCellValue(sheet, "A1", "Run")
	f.SetCellValue(sheet, "B1", meta.RunID)
	f.SetCellValue(sheet, "A2", "Eggs")
	f.SetCellValue(sheet, "B2", meta.Eggs)
	f.SetCellValue(sheet, "C2", "Luck %")
	f.SetCellValue(sheet, "D2", meta.LuckPercent)
	f.SetCellValue(sheet, "E2", "Shiny")
	f.SetCellValue(sheet, "F2", meta.ShinyChance)
	f.SetCellValue(sheet, "G2", "Mythic")
	f.SetCellValue(sheet, "H2", meta.MythicChance)

	const headerRow = 4
	for i, h := range header {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", colName(i+1), headerRow), h)
	}
	headerStyleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", colName(len(header)), headerRow), headerStyleID); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, r := range rows {
		row := headerRow + 1 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Count)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.TrueProbability)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Expected)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.OriginalOdds)
	}

	if len(rows) > 0 {
		// 0.00E+00; true probabilities of rare pets vanish in a percent format
		probStyleID, err := f.NewStyle(&excelize.Style{NumFmt: 11})
		if err != nil {
			return fmt.Errorf("probability style: %w", err)
		}
		last := headerRow + len(rows)
		if err := f.SetCellStyle(sheet, fmt.Sprintf("C%d", headerRow+1), fmt.Sprintf("C%d", last), probStyleID); err != nil {
			return fmt.Errorf("apply probability style: %w", err)
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "C", "E", 20)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func colName(n int) string {
	// 1-indexed: 1 -> A, 26 -> Z, 27 -> AA
	if n <= 0 {
		return ""
	}
	out := ""
	for n > 0 {
		n--
		out = string(rune('A'+(n%26))) + out
		n /= 26
	}
	return out
}
