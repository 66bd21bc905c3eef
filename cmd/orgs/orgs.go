// Package orgs implements the orgs command, listing every organization the
// API key can access so headless runs can pick one explicitly.
package orgs

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/clientusage/internal/config"
	"github.com/martinsuchenak/clientusage/internal/meraki"
)

// Command returns the orgs command.
func Command() *cli.Command {
	return &cli.Command{
		Name:        "orgs",
		Usage:       "List accessible organizations",
		Description: "Print the id and name of every organization the API key can access",
		Run: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			api := meraki.New(cfg.APIKey,
				meraki.WithExecutor(meraki.NewExecutor(cfg.RateLimitPause, cfg.MaxRetries)))
			orgs, err := api.Organizations(ctx)
			if err != nil {
				return fmt.Errorf("fetch organizations: %w", err)
			}
			sort.Slice(orgs, func(i, j int) bool { return orgs[i].Name < orgs[j].Name })

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tName")
			for _, org := range orgs {
				fmt.Fprintf(tw, "%s\t%s\n", org.ID, org.Name)
			}
			return tw.Flush()
		},
	}
}
