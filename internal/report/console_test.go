package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/martinsuchenak/clientusage/internal/collector"
	"github.com/martinsuchenak/clientusage/internal/model"
)

func TestPrintOrgWide(t *testing.T) {
	rows := BuildOrgWideTable([]model.ClientRecord{
		record("A", "c1", "d1"),
		record("A", "c2", "d1"),
	})

	var out strings.Builder
	PrintOrgWide(&out, rows)

	got := out.String()
	if !strings.Contains(got, "2 rows") {
		t.Errorf("missing row count: %q", got)
	}
	if !strings.Contains(got, "c1") || !strings.Contains(got, "c2") {
		t.Errorf("missing client ids: %q", got)
	}
	if !strings.Contains(got, "Client ID") {
		t.Errorf("missing header: %q", got)
	}
}

func TestPrintByNetworkIncludesEmptyNetworks(t *testing.T) {
	networks := []model.Network{
		{ID: "A", Name: "Alpha"},
		{ID: "B", Name: "Beta"},
	}
	tables := BuildPerNetworkTables([]model.ClientRecord{record("A", "c1", "d1")})

	var out strings.Builder
	PrintByNetwork(&out, tables, networks)

	got := out.String()
	if !strings.Contains(got, "Alpha (A): 1 clients") {
		t.Errorf("missing populated network: %q", got)
	}
	if !strings.Contains(got, "Beta (B): 0 clients") {
		t.Errorf("empty network should still be listed: %q", got)
	}
}

func TestPrintFailures(t *testing.T) {
	var out strings.Builder
	PrintFailures(&out, nil)
	if out.Len() != 0 {
		t.Errorf("no failures should print nothing, got %q", out.String())
	}

	PrintFailures(&out, []collector.Failure{
		{NetworkID: "A", NetworkName: "Alpha", DeviceSerial: "S1", Err: errors.New("rate limit exceeded")},
	})
	got := out.String()
	if !strings.Contains(got, "Alpha") || !strings.Contains(got, "S1") || !strings.Contains(got, "rate limit exceeded") {
		t.Errorf("failure summary incomplete: %q", got)
	}
}

func TestValuesIncludeDeviceName(t *testing.T) {
	rec := record("A", "c1", "d1")
	rec.DeviceName = "core-switch-01"
	rows := BuildOrgWideTable([]model.ClientRecord{rec})

	headers := Headers(rows)
	values := Values(rows[0], ExtraColumns(rows))

	col := -1
	for i, h := range headers {
		if h == "Device Name" {
			col = i
			break
		}
	}
	if col == -1 {
		t.Fatalf("Device Name column missing from headers: %v", headers)
	}
	if values[col] != "core-switch-01" {
		t.Errorf("Device Name cell = %q, want core-switch-01", values[col])
	}
}

func TestValuesAlignWithHeaders(t *testing.T) {
	rec := record("A", "c1", "d1")
	rec.Raw = map[string]any{"notes": "vip", "vlan": 12}
	rows := BuildOrgWideTable([]model.ClientRecord{rec})

	headers := Headers(rows)
	extraCols := ExtraColumns(rows)
	values := Values(rows[0], extraCols)
	if len(headers) != len(values) {
		t.Fatalf("headers (%d) and values (%d) misaligned", len(headers), len(values))
	}
}
