package model

import "time"

// Usage holds the traffic counters the dashboard reports for one client,
// in kilobytes over the queried timespan.
type Usage struct {
	Sent float64 `json:"sent"`
	Recv float64 `json:"recv"`
}

// ClientRecord is one client observed on one device within the fetch window.
// Records are immutable once fetched; the collector attaches the device and
// network references, the aggregator only reads.
type ClientRecord struct {
	ID           string    `json:"id"`
	MAC          string    `json:"mac"`
	IP           string    `json:"ip,omitempty"`
	IP6          string    `json:"ip6,omitempty"`
	Description  string    `json:"description,omitempty"`
	User         string    `json:"user,omitempty"`
	Manufacturer string    `json:"manufacturer,omitempty"`
	OS           string    `json:"os,omitempty"`
	SSID         *string   `json:"ssid,omitempty"`
	VLAN         string    `json:"vlan,omitempty"`
	Switchport   string    `json:"switchport,omitempty"`
	Status       string    `json:"status,omitempty"`
	FirstSeen    time.Time `json:"firstSeen,omitempty"`
	LastSeen     time.Time `json:"lastSeen,omitempty"`
	Usage        Usage     `json:"usage"`

	// Associations attached during collection.
	DeviceSerial string `json:"deviceSerial,omitempty"`
	DeviceName   string `json:"deviceName,omitempty"`
	NetworkID    string `json:"networkId,omitempty"`
	NetworkName  string `json:"networkName,omitempty"`

	// Raw carries the full fetched payload for raw-mode exports. Nil when
	// the run uses the projected field subset.
	Raw map[string]any `json:"-"`
}

// Key identifies the client for report ordering: the dashboard client id
// when present, else the MAC address.
func (c ClientRecord) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.MAC
}

// Wireless reports whether the client was seen on an SSID.
func (c ClientRecord) Wireless() bool {
	return c.SSID != nil && *c.SSID != ""
}

// OUI returns the organizationally unique identifier portion of the MAC.
func (c ClientRecord) OUI() string {
	if len(c.MAC) < 8 {
		return c.MAC
	}
	return c.MAC[:8]
}
