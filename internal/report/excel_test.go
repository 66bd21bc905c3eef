package report

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/martinsuchenak/clientusage/internal/model"
)

var testTime = time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)

func TestWriteOrgWorkbook(t *testing.T) {
	dir := t.TempDir()
	rows := BuildOrgWideTable([]model.ClientRecord{
		record("A", "c1", "d1"),
		record("B", "c2", "d2"),
	})

	path, err := WriteOrgWorkbook(dir, "0192aabb-run", testTime, rows)
	if err != nil {
		t.Fatalf("WriteOrgWorkbook() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("workbook written outside output dir: %s", path)
	}
	if !strings.Contains(filepath.Base(path), "20260830_103000") {
		t.Errorf("filename missing timestamp: %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "All Clients" {
		t.Fatalf("sheets = %v, want [All Clients]", sheets)
	}

	got, err := f.GetRows("All Clients")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(got) != 3 { // header + 2 rows
		t.Fatalf("got %d rows, want 3", len(got))
	}
	if got[0][0] != "Network" {
		t.Errorf("header A1 = %q, want Network", got[0][0])
	}
	if got[1][1] != "c1" || got[2][1] != "c2" {
		t.Errorf("client ids = %q/%q, want c1/c2", got[1][1], got[2][1])
	}
}

func TestWriteNetworkWorkbook(t *testing.T) {
	dir := t.TempDir()
	networks := []model.Network{
		{ID: "A", Name: "Alpha Site"},
		{ID: "B", Name: "Beta"},
		{ID: "C", Name: "a very long branch office network name indeed"},
	}
	tables := BuildPerNetworkTables([]model.ClientRecord{
		record("A", "c1", "d1"),
		record("C", "c2", "d2"),
		record("C", "c3", "d2"),
	})

	path, err := WriteNetworkWorkbook(dir, "0192aabb-run", testTime, tables, networks)
	if err != nil {
		t.Fatalf("WriteNetworkWorkbook() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 3 {
		t.Fatalf("sheets = %v, want Summary plus two networks", sheets)
	}
	if sheets[0] != "Summary" {
		t.Errorf("first sheet = %q, want Summary", sheets[0])
	}
	for _, s := range sheets {
		if len(s) > maxSheetNameLen {
			t.Errorf("sheet name %q exceeds %d chars", s, maxSheetNameLen)
		}
		if s == "Beta" {
			t.Error("network without records should get no sheet")
		}
	}

	summary, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if len(summary) != 4 { // header + 3 rows
		t.Errorf("summary has %d rows, want 4", len(summary))
	}
}

func TestSheetNameSanitizes(t *testing.T) {
	used := map[string]bool{}
	if got := sheetName("Branch: HQ/Floor?", used); strings.ContainsAny(got, ":/?") {
		t.Errorf("sheetName left invalid characters: %q", got)
	}

	first := sheetName("Duplicate", used)
	second := sheetName("Duplicate", used)
	if first == second {
		t.Errorf("duplicate names not disambiguated: %q", first)
	}

	long := strings.Repeat("x", 40)
	if got := sheetName(long, used); len(got) > maxSheetNameLen {
		t.Errorf("long name not capped: %q (%d)", got, len(got))
	}
}

func TestSheetNameTruncatesOnRuneBoundary(t *testing.T) {
	used := map[string]bool{}

	short := strings.Repeat("ネ", 15)
	if got := sheetName(short, used); got != short {
		t.Errorf("15-char name altered: %q", got)
	}

	long := strings.Repeat("ネ", 40)
	got := sheetName(long, used)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated name is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != maxSheetNameLen {
		t.Errorf("got %d chars, want %d: %q", n, maxSheetNameLen, got)
	}

	// A second long multi-byte name must still get a unique suffix
	// without splitting a character.
	dup := sheetName(long, used)
	if dup == got {
		t.Errorf("duplicate multi-byte names not disambiguated: %q", dup)
	}
	if !utf8.ValidString(dup) {
		t.Errorf("suffixed name is not valid UTF-8: %q", dup)
	}
	if n := utf8.RuneCountInString(dup); n > maxSheetNameLen {
		t.Errorf("suffixed name has %d chars, want <= %d: %q", n, maxSheetNameLen, dup)
	}
}
