package model

// Network is a site/location grouping of devices under an organization.
type Network struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	OrganizationID string   `json:"organizationId"`
	ProductTypes   []string `json:"productTypes"`
	TimeZone       string   `json:"timeZone,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

// HasProductType reports whether the network carries the given product type.
func (n Network) HasProductType(productType string) bool {
	for _, pt := range n.ProductTypes {
		if pt == productType {
			return true
		}
	}
	return false
}
