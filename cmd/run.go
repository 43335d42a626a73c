package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"leadfinder/internal/config"
	"leadfinder/internal/leads"
	"leadfinder/pkg/domain"

	"github.com/spf13/cobra"
)

func runCommand(cfg *config.Config) *cobra.Command {
	var (
		mode       string
		maxResults int
		verify     bool
		asCSV      bool
	)

	cmd := &cobra.Command{
		Use:   "run [items...]",
		Short: "Runs a single batch and prints the rows",
		Long: "Runs a single batch of website URLs or places queries and prints the rows " +
			"as JSON, or as CSV with --csv.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stopTracing := setupTracing(ctx)
			defer stopTracing(context.WithoutCancel(ctx))

			runner, err := newRunner(ctx, cfg)
			if err != nil {
				return err
			}

			return runBatch(ctx, cmd.OutOrStdout(), runner, domain.RunRequest{
				Mode:       domain.Mode(mode),
				Items:      args,
				MaxResults: maxResults,
				Verify:     verify,
			}, asCSV)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(domain.ModePlaces), "Item kind: websites or places")
	cmd.Flags().IntVarP(&maxResults, "max-results", "n", 0, "Places per query (default from config)")
	cmd.Flags().BoolVar(&verify, "verify", false, "Check email domains for MX records")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Print CSV instead of JSON")

	return cmd
}

// runBatch executes req and writes the rows to w.
func runBatch(ctx context.Context, w io.Writer, runner leads.Runner, req domain.RunRequest, asCSV bool) error {
	rows, err := runner.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not run batch: %w", err)
	}

	if asCSV {
		_, err = fmt.Fprintln(w, leads.RenderCSV(rows))
		if err != nil {
			return fmt.Errorf("could not write CSV: %w", err)
		}

		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		Rows []domain.Row `json:"rows"`
	}{Rows: rows}); err != nil {
		return fmt.Errorf("could not write JSON: %w", err)
	}

	return nil
}
