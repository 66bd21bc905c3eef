// Package collector pulls per-client usage history for every in-scope
// device, network by network. A failed network is recorded and skipped; it
// never aborts the run.
package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/martinsuchenak/clientusage/internal/discovery"
	"github.com/martinsuchenak/clientusage/internal/log"
	"github.com/martinsuchenak/clientusage/internal/model"
)

// API is the subset of the dashboard client the collector needs. All calls
// share the client's single rate-limited executor.
type API interface {
	DeviceClients(ctx context.Context, serial string, timespan time.Duration) ([]model.ClientRecord, error)
}

// Failure records a network whose history could not be fully collected.
type Failure struct {
	NetworkID    string
	NetworkName  string
	DeviceSerial string
	Err          error
}

// Result is the accumulated collection output. Records from failed networks
// may be partially present; Failures lists what is incomplete.
type Result struct {
	Records  []model.ClientRecord
	Failures []Failure
}

// Complete reports whether every network was collected without error.
func (r *Result) Complete() bool {
	return len(r.Failures) == 0
}

// Options bound a collection run.
type Options struct {
	Window      model.FetchWindow
	Scope       discovery.Scope
	Raw         bool
	Concurrency int
}

// Collect fetches client history for each network's in-scope devices.
// Networks are processed with bounded concurrency; record appends and
// failure records go through one mutex. Only the context being canceled
// stops the run early.
func Collect(ctx context.Context, api API, networks []model.Network, devicesByNetwork map[string][]model.Device, opts Options) (*Result, error) {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	var (
		mu     sync.Mutex
		result Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for _, network := range networks {
		g.Go(func() error {
			records, failures := collectNetwork(gctx, api, network, devicesByNetwork[network.ID], opts)
			mu.Lock()
			result.Records = append(result.Records, records...)
			result.Failures = append(result.Failures, failures...)
			mu.Unlock()
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collection aborted: %w", err)
	}

	log.Info("collection finished",
		"networks", len(networks),
		"records", len(result.Records),
		"failed_networks", len(result.Failures))
	return &result, nil
}

// collectNetwork fetches every in-scope device of one network. A device
// fetch failure marks the network incomplete but the remaining devices are
// still attempted.
func collectNetwork(ctx context.Context, api API, network model.Network, devices []model.Device, opts Options) ([]model.ClientRecord, []Failure) {
	var (
		records  []model.ClientRecord
		failures []Failure
	)

	log.Debug("collecting network", "network", network.Name, "id", network.ID, "devices", len(devices))

	for _, device := range devices {
		clients, err := api.DeviceClients(ctx, device.Serial, opts.Window.Timespan())
		if err != nil {
			log.Error("failed to collect device clients",
				"network", network.Name,
				"device", device.Serial,
				"error", err)
			failures = append(failures, Failure{
				NetworkID:    network.ID,
				NetworkName:  network.Name,
				DeviceSerial: device.Serial,
				Err:          err,
			})
			continue
		}

		for _, rec := range clients {
			if !opts.Scope.KeepsClient(rec) {
				continue
			}
			// The endpoint already bounds results by timespan; drop
			// anything reported outside the window regardless.
			if !rec.LastSeen.IsZero() && !opts.Window.Contains(rec.LastSeen) {
				continue
			}
			rec.DeviceSerial = device.Serial
			rec.DeviceName = device.DisplayName()
			rec.NetworkID = network.ID
			rec.NetworkName = network.Name
			if !opts.Raw {
				rec.Raw = nil
			}
			records = append(records, rec)
		}
	}

	return records, failures
}
