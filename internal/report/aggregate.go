// Package report turns collected client records into ordered report tables
// and emits them to the console and xlsx workbooks. Aggregation is pure:
// no I/O, inputs are never mutated.
package report

import (
	"sort"

	"github.com/martinsuchenak/clientusage/internal/model"
)

// projectedKeys are the payload fields already covered by the projected
// columns; raw mode appends everything else as extra columns.
var projectedKeys = map[string]bool{
	"id":                 true,
	"mac":                true,
	"ip":                 true,
	"description":        true,
	"user":               true,
	"manufacturer":       true,
	"os":                 true,
	"ssid":               true,
	"status":             true,
	"firstSeen":          true,
	"lastSeen":           true,
	"usage":              true,
	"recentDeviceSerial": true,
}

// BuildOrgWideTable flattens records into one row per (client, network)
// pair, ordered by network id, then client id, then device serial. The
// ordering is total, so the output is identical for any permutation of the
// input.
func BuildOrgWideTable(records []model.ClientRecord) []model.ReportRow {
	rows := make([]model.ReportRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rowFromRecord(rec))
	}
	sortRows(rows)
	return rows
}

// BuildPerNetworkTables groups records by network id, each group ordered by
// client id. Networks without records simply have no entry; callers render
// those as empty tables.
func BuildPerNetworkTables(records []model.ClientRecord) map[string][]model.ReportRow {
	tables := make(map[string][]model.ReportRow)
	for _, rec := range records {
		tables[rec.NetworkID] = append(tables[rec.NetworkID], rowFromRecord(rec))
	}
	for id := range tables {
		sortRows(tables[id])
	}
	return tables
}

func sortRows(rows []model.ReportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.NetworkID != b.NetworkID {
			return a.NetworkID < b.NetworkID
		}
		if a.ClientID != b.ClientID {
			return a.ClientID < b.ClientID
		}
		if a.DeviceSerial != b.DeviceSerial {
			return a.DeviceSerial < b.DeviceSerial
		}
		return a.MAC < b.MAC
	})
}

func rowFromRecord(rec model.ClientRecord) model.ReportRow {
	row := model.ReportRow{
		NetworkID:    rec.NetworkID,
		NetworkName:  rec.NetworkName,
		ClientID:     rec.Key(),
		IP:           rec.IP,
		MAC:          rec.MAC,
		OUI:          rec.OUI(),
		Manufacturer: rec.Manufacturer,
		Description:  rec.Description,
		OS:           rec.OS,
		FirstSeen:    rec.FirstSeen,
		LastSeen:     rec.LastSeen,
		Status:       rec.Status,
		SentKB:       rec.Usage.Sent,
		RecvKB:       rec.Usage.Recv,
		User:         rec.User,
		DeviceSerial: rec.DeviceSerial,
		DeviceName:   rec.DeviceName,
	}
	if rec.SSID != nil {
		row.SSID = *rec.SSID
	}
	if rec.Raw != nil {
		extra := make(map[string]any, len(rec.Raw))
		for k, v := range rec.Raw {
			if !projectedKeys[k] {
				extra[k] = v
			}
		}
		row.Extra = extra
	}
	return row
}

// ExtraColumns returns the sorted union of extra field names across rows.
// Empty unless the run was raw.
func ExtraColumns(rows []model.ReportRow) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for k := range row.Extra {
			seen[k] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}
