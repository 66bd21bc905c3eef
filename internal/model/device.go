package model

// Product types the dashboard exposes client history for. Sensor and camera
// devices reject the clients endpoint, so they are never queried.
const (
	ProductTypeAppliance       = "appliance"
	ProductTypeSwitch          = "switch"
	ProductTypeWireless        = "wireless"
	ProductTypeCellularGateway = "cellularGateway"
)

// Device is a managed device belonging to one network.
type Device struct {
	Serial      string `json:"serial"`
	Name        string `json:"name"`
	Model       string `json:"model"`
	MAC         string `json:"mac"`
	NetworkID   string `json:"networkId"`
	ProductType string `json:"productType"`
	Firmware    string `json:"firmware,omitempty"`
	LanIP       string `json:"lanIp,omitempty"`
}

// DisplayName returns the device name, falling back to the serial when the
// device is unnamed in the dashboard.
func (d Device) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Serial
}
