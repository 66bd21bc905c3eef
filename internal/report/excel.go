package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/martinsuchenak/clientusage/internal/model"
)

// maxSheetNameLen is the hard cap Excel places on sheet names.
const maxSheetNameLen = 31

// WriteOrgWorkbook writes the organization-wide table to a single-sheet
// workbook and returns the file path.
func WriteOrgWorkbook(dir, runID string, now time.Time, rows []model.ReportRow) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "All Clients"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeSheet(f, sheet, rows); err != nil {
		return "", err
	}

	path := filepath.Join(dir, workbookName("org", now, runID))
	if err := save(f, dir, path); err != nil {
		return "", err
	}
	return path, nil
}

// WriteNetworkWorkbook writes one sheet per non-empty network plus a Summary
// sheet holding every row, and returns the file path. Networks are emitted
// in the given order.
func WriteNetworkWorkbook(dir, runID string, now time.Time, tables map[string][]model.ReportRow, networks []model.Network) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	var summary []model.ReportRow
	used := map[string]bool{"Summary": true}
	for _, network := range networks {
		rows := tables[network.ID]
		if len(rows) == 0 {
			continue
		}
		summary = append(summary, rows...)

		name := sheetName(network.Name, used)
		if _, err := f.NewSheet(name); err != nil {
			return "", fmt.Errorf("create sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, rows); err != nil {
			return "", err
		}
	}

	if err := writeSheet(f, "Summary", summary); err != nil {
		return "", err
	}

	path := filepath.Join(dir, workbookName("networks", now, runID))
	if err := save(f, dir, path); err != nil {
		return "", err
	}
	return path, nil
}

func writeSheet(f *excelize.File, sheet string, rows []model.ReportRow) error {
	extraCols := ExtraColumns(rows)
	if err := setRow(f, sheet, 1, Headers(rows)); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, Values(row, extraCols)); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d of %q: %w", rowNum, sheet, err)
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d of %q: %w", rowNum, sheet, err)
	}
	return nil
}

// sheetName sanitizes a network name into a unique, valid sheet name.
func sheetName(name string, used map[string]bool) string {
	replacer := strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")
	name = strings.TrimSpace(replacer.Replace(name))
	if name == "" {
		name = "Network"
	}
	name = truncateRunes(name, maxSheetNameLen)

	candidate := name
	for i := 2; used[candidate]; i++ {
		suffix := fmt.Sprintf(" %d", i)
		candidate = truncateRunes(name, maxSheetNameLen-len(suffix)) + suffix
	}
	used[candidate] = true
	return candidate
}

// truncateRunes caps s at max runes; Excel limits sheet names by
// character count, not bytes.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func workbookName(kind string, now time.Time, runID string) string {
	stamp := now.Format("20060102_150405")
	if len(runID) > 8 {
		runID = runID[:8]
	}
	return fmt.Sprintf("client_history_%s_%s_%s.xlsx", kind, stamp, runID)
}

func save(f *excelize.File, dir, path string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
