package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/martinsuchenak/clientusage/internal/collector"
	"github.com/martinsuchenak/clientusage/internal/model"
)

var baseHeaders = []string{
	"Network", "Client ID", "IP", "MAC", "OUI", "Manufacturer", "Description",
	"SSID", "OS", "First Seen", "Last Seen", "Status", "Sent (KB)", "Recv (KB)",
	"User", "Device", "Device Name",
}

const timeLayout = "2006-01-02 15:04:05"

// Headers returns the column set for the given rows: the projected columns,
// plus any raw-mode extras.
func Headers(rows []model.ReportRow) []string {
	return append(append([]string(nil), baseHeaders...), ExtraColumns(rows)...)
}

// Values renders one row against the extra-column set.
func Values(row model.ReportRow, extraCols []string) []string {
	vals := []string{
		row.NetworkName,
		row.ClientID,
		row.IP,
		row.MAC,
		row.OUI,
		row.Manufacturer,
		row.Description,
		row.SSID,
		row.OS,
		formatTime(row.FirstSeen),
		formatTime(row.LastSeen),
		row.Status,
		formatFloat(row.SentKB),
		formatFloat(row.RecvKB),
		row.User,
		row.DeviceSerial,
		row.DeviceName,
	}
	for _, col := range extraCols {
		vals = append(vals, formatExtra(row.Extra[col]))
	}
	return vals
}

// PrintOrgWide writes the organization-wide table.
func PrintOrgWide(w io.Writer, rows []model.ReportRow) {
	fmt.Fprintf(w, "\nOrganization-wide client history (%d rows)\n", len(rows))
	printTable(w, rows)
}

// PrintByNetwork writes one table per network, in network id order. Networks
// without records get an explicit empty table.
func PrintByNetwork(w io.Writer, tables map[string][]model.ReportRow, networks []model.Network) {
	for _, network := range networks {
		rows := tables[network.ID]
		fmt.Fprintf(w, "\nNetwork %s (%s): %d clients\n", network.Name, network.ID, len(rows))
		if len(rows) > 0 {
			printTable(w, rows)
		}
	}
}

// PrintFailures summarizes networks with incomplete data.
func PrintFailures(w io.Writer, failures []collector.Failure) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintf(w, "\nIncomplete data for %d device(s):\n", len(failures))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Network\tDevice\tError")
	for _, f := range failures {
		fmt.Fprintf(tw, "%s\t%s\t%v\n", f.NetworkName, f.DeviceSerial, f.Err)
	}
	tw.Flush()
}

func printTable(w io.Writer, rows []model.ReportRow) {
	extraCols := ExtraColumns(rows)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	printRow(tw, Headers(rows))
	for _, row := range rows {
		printRow(tw, Values(row, extraCols))
	}
	tw.Flush()
}

func printRow(w io.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, cell)
	}
	fmt.Fprintln(w)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatExtra(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
