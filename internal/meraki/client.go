// Package meraki is a minimal dashboard API client covering organization,
// network, device, and client-history reads. All requests pass through a
// shared rate-limited executor.
package meraki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/martinsuchenak/clientusage/internal/model"
)

// DefaultBaseURL is the production dashboard API endpoint.
const DefaultBaseURL = "https://api.meraki.com/api/v1"

// perPage is the page size for paginated list endpoints; the dashboard
// maximum.
const perPage = 1000

// Client talks to the dashboard API.
type Client struct {
	baseURL string
	apiKey  string
	exec    *Executor
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests and regional shards.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithExecutor replaces the request executor.
func WithExecutor(e *Executor) Option {
	return func(c *Client) { c.exec = e }
}

// New returns a dashboard client authenticating with the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		exec:    NewExecutor(time.Second, 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Organizations returns every organization the API key can access.
func (c *Client) Organizations(ctx context.Context) ([]model.Organization, error) {
	items, err := c.getPaged(ctx, "/organizations", nil)
	if err != nil {
		return nil, err
	}
	return decodeEach[model.Organization](items)
}

// OrganizationNetworks returns all networks in the organization.
func (c *Client) OrganizationNetworks(ctx context.Context, orgID string) ([]model.Network, error) {
	q := url.Values{"perPage": {strconv.Itoa(perPage)}}
	items, err := c.getPaged(ctx, "/organizations/"+url.PathEscape(orgID)+"/networks", q)
	if err != nil {
		return nil, err
	}
	return decodeEach[model.Network](items)
}

// OrganizationDevices returns all devices in the organization.
func (c *Client) OrganizationDevices(ctx context.Context, orgID string) ([]model.Device, error) {
	q := url.Values{"perPage": {strconv.Itoa(perPage)}}
	items, err := c.getPaged(ctx, "/organizations/"+url.PathEscape(orgID)+"/devices", q)
	if err != nil {
		return nil, err
	}
	return decodeEach[model.Device](items)
}

// DeviceClients returns the clients seen by one device within the timespan.
// Each record retains the full fetched payload in Raw.
func (c *Client) DeviceClients(ctx context.Context, serial string, timespan time.Duration) ([]model.ClientRecord, error) {
	q := url.Values{"timespan": {strconv.Itoa(int(timespan.Seconds()))}}
	items, err := c.getPaged(ctx, "/devices/"+url.PathEscape(serial)+"/clients", q)
	if err != nil {
		return nil, err
	}

	records := make([]model.ClientRecord, 0, len(items))
	for _, item := range items {
		rec, err := decodeClient(item)
		if err != nil {
			return nil, fmt.Errorf("decode client for device %s: %w", serial, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// getPaged fetches path, following Link rel=next headers until exhausted,
// and returns the concatenated array elements.
func (c *Client) getPaged(ctx context.Context, path string, query url.Values) ([]json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var items []json.RawMessage
	for u != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("build request for %s: %w", path, err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.exec.Do(req)
		if err != nil {
			return nil, err
		}

		var page []json.RawMessage
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode response from %s: %w", path, err)
		}
		items = append(items, page...)

		u = nextLink(resp.Header.Get("Link"))
	}
	return items, nil
}

func decodeEach[T any](items []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, fmt.Errorf("decode response element: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

// wireClient mirrors the clients endpoint payload. VLAN arrives as either a
// number or a string depending on configuration.
type wireClient struct {
	ID           string    `json:"id"`
	MAC          string    `json:"mac"`
	IP           string    `json:"ip"`
	IP6          string    `json:"ip6"`
	Description  string    `json:"description"`
	User         string    `json:"user"`
	Manufacturer string    `json:"manufacturer"`
	OS           string    `json:"os"`
	SSID         *string   `json:"ssid"`
	VLAN         any       `json:"vlan"`
	Switchport   string    `json:"switchport"`
	Status       string    `json:"status"`
	FirstSeen    time.Time `json:"firstSeen"`
	LastSeen     time.Time `json:"lastSeen"`
	Usage        struct {
		Sent float64 `json:"sent"`
		Recv float64 `json:"recv"`
	} `json:"usage"`
}

func decodeClient(item json.RawMessage) (model.ClientRecord, error) {
	var w wireClient
	if err := json.Unmarshal(item, &w); err != nil {
		return model.ClientRecord{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(item, &raw); err != nil {
		return model.ClientRecord{}, err
	}

	return model.ClientRecord{
		ID:           w.ID,
		MAC:          w.MAC,
		IP:           w.IP,
		IP6:          w.IP6,
		Description:  w.Description,
		User:         w.User,
		Manufacturer: w.Manufacturer,
		OS:           w.OS,
		SSID:         w.SSID,
		VLAN:         vlanString(w.VLAN),
		Switchport:   w.Switchport,
		Status:       w.Status,
		FirstSeen:    w.FirstSeen,
		LastSeen:     w.LastSeen,
		Usage:        model.Usage{Sent: w.Usage.Sent, Recv: w.Usage.Recv},
		Raw:          raw,
	}, nil
}

func vlanString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.Itoa(int(t))
	default:
		return fmt.Sprint(t)
	}
}
