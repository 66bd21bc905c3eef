// Package report implements the report command: discovery, collection,
// aggregation, and export in one pass.
package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/paularlott/cli"

	"github.com/martinsuchenak/clientusage/internal/collector"
	"github.com/martinsuchenak/clientusage/internal/config"
	"github.com/martinsuchenak/clientusage/internal/discovery"
	"github.com/martinsuchenak/clientusage/internal/log"
	"github.com/martinsuchenak/clientusage/internal/meraki"
	"github.com/martinsuchenak/clientusage/internal/model"
	"github.com/martinsuchenak/clientusage/internal/report"
)

// Command returns the report command.
func Command() *cli.Command {
	return &cli.Command{
		Name:        "report",
		Usage:       "Generate client usage history reports",
		Description: "Collect per-client usage history across every network in the organization and emit console and spreadsheet reports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "option",
				Aliases:  []string{"o"},
				Usage:    "Device scope: all, wired or wireless",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Keep the full fetched payload instead of the projected field subset",
			},
			&cli.StringFlag{
				Name:  "org",
				Usage: "Organization id or name (overrides MERAKI_ORG_ID / MERAKI_ORG_NAME)",
			},
			&cli.BoolFlag{
				Name:  "excel",
				Usage: "Write xlsx workbooks in addition to console output",
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "Directory for xlsx output (overrides OUTPUT_DIR)",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Networks collected in parallel (overrides COLLECT_CONCURRENCY)",
			},
		},
		Run: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Load()
	if v := cmd.GetString("org"); v != "" {
		// Resolution matches either the id or the name.
		cfg.OrgID = v
		cfg.OrgName = v
	}
	if cmd.GetBool("excel") {
		cfg.Excel = true
	}
	if v := cmd.GetString("output-dir"); v != "" {
		cfg.OutputDir = v
	}
	if v := cmd.GetInt("concurrency"); v != 0 {
		cfg.Concurrency = v
	}

	scope, err := discovery.ParseScope(cmd.GetString("option"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	raw := cmd.GetBool("raw")

	runID := newRunID()
	log.Info("starting report run",
		"run_id", runID,
		"scope", scope,
		"raw", raw,
		"timespan", cfg.Timespan)

	api := meraki.New(cfg.APIKey,
		meraki.WithExecutor(meraki.NewExecutor(cfg.RateLimitPause, cfg.MaxRetries)))

	org, err := resolveOrganization(ctx, api, cfg)
	if err != nil {
		return err
	}
	log.Info("organization resolved", "org", org.Name, "id", org.ID)

	networks, err := discovery.ListNetworks(ctx, api, org.ID, scope)
	if err != nil {
		return err
	}
	devices, err := discovery.ListDevices(ctx, api, org.ID, scope)
	if err != nil {
		return err
	}

	window := model.NewFetchWindow(time.Now().UTC(), cfg.Timespan)
	result, err := collector.Collect(ctx, api, networks, discovery.DevicesByNetwork(devices), collector.Options{
		Window:      window,
		Scope:       scope,
		Raw:         raw,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		return err
	}

	now := time.Now()
	if cfg.ReportOrgWide {
		rows := report.BuildOrgWideTable(result.Records)
		report.PrintOrgWide(os.Stdout, rows)
		if cfg.Excel {
			path, err := report.WriteOrgWorkbook(cfg.OutputDir, runID, now, rows)
			if err != nil {
				return fmt.Errorf("export org-wide workbook: %w", err)
			}
			log.Info("org-wide workbook written", "path", path)
		}
	}
	if cfg.ReportByNetwork {
		tables := report.BuildPerNetworkTables(result.Records)
		report.PrintByNetwork(os.Stdout, tables, networks)
		if cfg.Excel {
			path, err := report.WriteNetworkWorkbook(cfg.OutputDir, runID, now, tables, networks)
			if err != nil {
				return fmt.Errorf("export per-network workbook: %w", err)
			}
			log.Info("per-network workbook written", "path", path)
		}
	}

	report.PrintFailures(os.Stdout, result.Failures)
	if !result.Complete() {
		log.Warn("run completed with partial failures",
			"run_id", runID,
			"failed", len(result.Failures))
	} else {
		log.Info("run completed", "run_id", runID, "records", len(result.Records))
	}
	return nil
}

// resolveOrganization resolves explicitly where possible and falls back to an
// interactive prompt only when attached to a terminal. Headless runs surface
// the candidate list in the error instead.
func resolveOrganization(ctx context.Context, api discovery.API, cfg *config.Config) (model.Organization, error) {
	org, err := discovery.ResolveOrganization(ctx, api, cfg.OrgID, cfg.OrgName)
	if err == nil {
		return org, nil
	}

	var multi *discovery.MultipleOrganizationsError
	if errors.As(err, &multi) && discovery.StdinIsTerminal() {
		return discovery.PromptOrganization(multi.Candidates, os.Stdin, os.Stdout)
	}
	return model.Organization{}, err
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
