// Package discovery resolves the target organization and enumerates its
// networks and devices, filtered to the requested device scope.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/martinsuchenak/clientusage/internal/log"
	"github.com/martinsuchenak/clientusage/internal/model"
)

// API is the subset of the dashboard client discovery needs.
type API interface {
	Organizations(ctx context.Context) ([]model.Organization, error)
	OrganizationNetworks(ctx context.Context, orgID string) ([]model.Network, error)
	OrganizationDevices(ctx context.Context, orgID string) ([]model.Device, error)
}

// ErrNoOrganization is returned when the API key grants access to no
// organization at all.
var ErrNoOrganization = errors.New("no accessible organizations")

// MultipleOrganizationsError is returned when several organizations are
// accessible and none was selected explicitly. It carries the candidates so
// callers can resolve the ambiguity themselves.
type MultipleOrganizationsError struct {
	Candidates []model.Organization
}

func (e *MultipleOrganizationsError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, org := range e.Candidates {
		names[i] = org.Name
	}
	return fmt.Sprintf("multiple organizations accessible, select one explicitly: %s", strings.Join(names, ", "))
}

// ResolveOrganization picks the target organization. An explicit id or name
// wins; a single accessible organization is selected automatically; anything
// else is reported as ErrNoOrganization or *MultipleOrganizationsError.
// Organization names are matched case-sensitively, as the dashboard treats
// them.
func ResolveOrganization(ctx context.Context, api API, orgID, orgName string) (model.Organization, error) {
	orgs, err := api.Organizations(ctx)
	if err != nil {
		return model.Organization{}, fmt.Errorf("fetch organizations: %w", err)
	}
	if len(orgs) == 0 {
		return model.Organization{}, ErrNoOrganization
	}
	log.Debug("fetched organizations", "count", len(orgs))

	if orgID != "" || orgName != "" {
		for _, org := range orgs {
			if (orgID != "" && org.ID == orgID) || (orgName != "" && org.Name == orgName) {
				return org, nil
			}
		}
		return model.Organization{}, fmt.Errorf("organization %q not found: %w",
			coalesce(orgName, orgID), ErrNoOrganization)
	}

	if len(orgs) == 1 {
		log.Info("auto-selected the only accessible organization", "org", orgs[0].Name, "id", orgs[0].ID)
		return orgs[0], nil
	}

	sort.Slice(orgs, func(i, j int) bool { return orgs[i].Name < orgs[j].Name })
	return model.Organization{}, &MultipleOrganizationsError{Candidates: orgs}
}

// ListNetworks returns the organization's networks carrying at least one
// product type within scope, sorted by network id.
func ListNetworks(ctx context.Context, api API, orgID string, scope Scope) ([]model.Network, error) {
	networks, err := api.OrganizationNetworks(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("fetch networks: %w", err)
	}

	kept := networks[:0:0]
	for _, n := range networks {
		inScope := false
		for _, pt := range scope.productTypes() {
			if n.HasProductType(pt) {
				inScope = true
				break
			}
		}
		if inScope {
			kept = append(kept, n)
		} else {
			log.Debug("skipping network outside scope", "network", n.Name, "id", n.ID)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].ID < kept[j].ID })
	log.Info("networks discovered", "total", len(networks), "in_scope", len(kept))
	return kept, nil
}

// ListDevices returns the organization's devices whose product type is within
// scope, grouped by nothing; callers index them by network.
func ListDevices(ctx context.Context, api API, orgID string, scope Scope) ([]model.Device, error) {
	devices, err := api.OrganizationDevices(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("fetch devices: %w", err)
	}

	kept := devices[:0:0]
	for _, d := range devices {
		if scope.Includes(d.ProductType) {
			kept = append(kept, d)
		} else {
			log.Debug("skipping device outside scope", "serial", d.Serial, "product_type", d.ProductType)
		}
	}

	log.Info("devices discovered", "total", len(devices), "in_scope", len(kept))
	return kept, nil
}

// DevicesByNetwork indexes devices by their network id.
func DevicesByNetwork(devices []model.Device) map[string][]model.Device {
	byNetwork := make(map[string][]model.Device)
	for _, d := range devices {
		byNetwork[d.NetworkID] = append(byNetwork[d.NetworkID], d)
	}
	return byNetwork
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
