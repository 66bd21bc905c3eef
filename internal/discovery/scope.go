package discovery

import (
	"fmt"

	"github.com/martinsuchenak/clientusage/internal/model"
)

// Scope restricts which device product types are queried.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeWired    Scope = "wired"
	ScopeWireless Scope = "wireless"
)

// ParseScope validates a scope argument.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeAll, ScopeWired, ScopeWireless:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("invalid scope %q: valid options are all, wired, wireless", s)
	}
}

// productTypes returns the device product types the scope covers. Only types
// the clients endpoint supports are ever included.
func (s Scope) productTypes() []string {
	switch s {
	case ScopeWired:
		return []string{model.ProductTypeAppliance, model.ProductTypeSwitch, model.ProductTypeCellularGateway}
	case ScopeWireless:
		return []string{model.ProductTypeWireless}
	default:
		return []string{model.ProductTypeAppliance, model.ProductTypeSwitch, model.ProductTypeWireless, model.ProductTypeCellularGateway}
	}
}

// Includes reports whether the scope covers the given product type.
func (s Scope) Includes(productType string) bool {
	for _, pt := range s.productTypes() {
		if pt == productType {
			return true
		}
	}
	return false
}

// KeepsClient reports whether a collected client record belongs in the scope.
// Wireless clients are those seen on an SSID; wired clients have none.
func (s Scope) KeepsClient(rec model.ClientRecord) bool {
	switch s {
	case ScopeWireless:
		return rec.Wireless()
	case ScopeWired:
		return !rec.Wireless()
	default:
		return true
	}
}
