package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/martinsuchenak/clientusage/internal/model"
)

type fakeAPI struct {
	orgs     []model.Organization
	networks []model.Network
	devices  []model.Device
	err      error
}

func (f *fakeAPI) Organizations(ctx context.Context) ([]model.Organization, error) {
	return f.orgs, f.err
}

func (f *fakeAPI) OrganizationNetworks(ctx context.Context, orgID string) ([]model.Network, error) {
	return f.networks, f.err
}

func (f *fakeAPI) OrganizationDevices(ctx context.Context, orgID string) ([]model.Device, error) {
	return f.devices, f.err
}

func TestResolveOrganizationNoAccess(t *testing.T) {
	_, err := ResolveOrganization(context.Background(), &fakeAPI{}, "", "")
	require.ErrorIs(t, err, ErrNoOrganization)
}

func TestResolveOrganizationSingleAutoSelect(t *testing.T) {
	api := &fakeAPI{orgs: []model.Organization{{ID: "1", Name: "Only"}}}
	org, err := ResolveOrganization(context.Background(), api, "", "")
	require.NoError(t, err)
	require.Equal(t, "Only", org.Name)
}

func TestResolveOrganizationAmbiguous(t *testing.T) {
	api := &fakeAPI{orgs: []model.Organization{
		{ID: "2", Name: "Beta"},
		{ID: "1", Name: "Alpha"},
	}}
	_, err := ResolveOrganization(context.Background(), api, "", "")

	var multi *MultipleOrganizationsError
	require.ErrorAs(t, err, &multi)
	require.Len(t, multi.Candidates, 2)
	require.Equal(t, "Alpha", multi.Candidates[0].Name, "candidates should be sorted by name")
}

func TestResolveOrganizationExplicit(t *testing.T) {
	api := &fakeAPI{orgs: []model.Organization{
		{ID: "1", Name: "Alpha"},
		{ID: "2", Name: "Beta"},
	}}

	org, err := ResolveOrganization(context.Background(), api, "2", "")
	require.NoError(t, err)
	require.Equal(t, "Beta", org.Name)

	org, err = ResolveOrganization(context.Background(), api, "", "Alpha")
	require.NoError(t, err)
	require.Equal(t, "1", org.ID)

	// Names are case sensitive.
	_, err = ResolveOrganization(context.Background(), api, "", "alpha")
	require.ErrorIs(t, err, ErrNoOrganization)
}

func TestListNetworksFiltersAndSorts(t *testing.T) {
	api := &fakeAPI{networks: []model.Network{
		{ID: "N3", Name: "Warehouse", ProductTypes: []string{"camera"}},
		{ID: "N2", Name: "Branch", ProductTypes: []string{"switch", "camera"}},
		{ID: "N1", Name: "HQ", ProductTypes: []string{"wireless"}},
	}}

	networks, err := ListNetworks(context.Background(), api, "org", ScopeAll)
	require.NoError(t, err)
	require.Len(t, networks, 2)
	require.Equal(t, "N1", networks[0].ID)
	require.Equal(t, "N2", networks[1].ID)

	wired, err := ListNetworks(context.Background(), api, "org", ScopeWired)
	require.NoError(t, err)
	require.Len(t, wired, 1)
	require.Equal(t, "Branch", wired[0].Name)
}

func TestListDevicesFiltersByScope(t *testing.T) {
	api := &fakeAPI{devices: []model.Device{
		{Serial: "S1", NetworkID: "N1", ProductType: "wireless"},
		{Serial: "S2", NetworkID: "N1", ProductType: "switch"},
		{Serial: "S3", NetworkID: "N2", ProductType: "camera"},
		{Serial: "S4", NetworkID: "N2", ProductType: "appliance"},
	}}

	all, err := ListDevices(context.Background(), api, "org", ScopeAll)
	require.NoError(t, err)
	require.Len(t, all, 3, "camera devices are never queried")

	wireless, err := ListDevices(context.Background(), api, "org", ScopeWireless)
	require.NoError(t, err)
	require.Len(t, wireless, 1)
	require.Equal(t, "S1", wireless[0].Serial)

	byNetwork := DevicesByNetwork(all)
	require.Len(t, byNetwork["N1"], 2)
	require.Len(t, byNetwork["N2"], 1)
}

func TestResolveOrganizationPropagatesAPIError(t *testing.T) {
	api := &fakeAPI{err: errors.New("boom")}
	_, err := ResolveOrganization(context.Background(), api, "", "")
	require.ErrorContains(t, err, "fetch organizations")
}

func TestParseScope(t *testing.T) {
	for _, valid := range []string{"all", "wired", "wireless"} {
		scope, err := ParseScope(valid)
		require.NoError(t, err)
		require.Equal(t, Scope(valid), scope)
	}
	_, err := ParseScope("wifi")
	require.Error(t, err)
}

func TestScopeKeepsClient(t *testing.T) {
	ssid := "corp"
	wirelessClient := model.ClientRecord{MAC: "aa", SSID: &ssid}
	wiredClient := model.ClientRecord{MAC: "bb"}

	require.True(t, ScopeAll.KeepsClient(wirelessClient))
	require.True(t, ScopeAll.KeepsClient(wiredClient))
	require.True(t, ScopeWireless.KeepsClient(wirelessClient))
	require.False(t, ScopeWireless.KeepsClient(wiredClient))
	require.False(t, ScopeWired.KeepsClient(wirelessClient))
	require.True(t, ScopeWired.KeepsClient(wiredClient))
}
