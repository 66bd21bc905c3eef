package model

import "time"

// ReportRow is the flattened view of one ClientRecord for output. Every row
// traces back to exactly one network; the projected columns match the
// dashboard's client summary fields.
type ReportRow struct {
	NetworkID    string
	NetworkName  string
	ClientID     string
	IP           string
	MAC          string
	OUI          string
	Manufacturer string
	Description  string
	SSID         string
	OS           string
	FirstSeen    time.Time
	LastSeen     time.Time
	Status       string
	SentKB       float64
	RecvKB       float64
	User         string
	DeviceSerial string
	DeviceName   string

	// Extra holds the remaining fetched fields in raw mode, nil otherwise.
	Extra map[string]any
}
