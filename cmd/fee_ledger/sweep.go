package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/fee_ledger/internal/dto"
	"github.com/SscSPs/fee_ledger/internal/middleware"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the overdue sweep once",
	Long: `Move unpaid invoices whose due date has passed to overdue and send one reminder per
transition. Running it twice, or next to a serving instance, never double-transitions.`,
	Example: `  # Evaluate against the current time
  fee_ledger sweep

  # Evaluate as of a fixed instant
  fee_ledger sweep --now 2023-08-01T00:00:00Z`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().String("now", "", "Evaluation instant (RFC3339 or YYYY-MM-DD, default: current time)")
}

func runSweep(cmd *cobra.Command, args []string) error {
	var now time.Time
	if raw, _ := cmd.Flags().GetString("now"); raw != "" {
		parsed, err := parseInstant(raw)
		if err != nil {
			return err
		}
		now = parsed
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := openLedger(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.close(context.Background())

	jobLogger := logger.With(slog.String("job", "overdue-sweep"))
	result, err := app.services.Overdue.SweepOverdue(middleware.WithLogger(ctx, jobLogger), now)
	if result != nil {
		if encErr := printJSON(dto.ToSweepResultResponse(result)); encErr != nil {
			return encErr
		}
	}
	return err
}

func parseInstant(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q: use RFC3339 or YYYY-MM-DD", raw)
	}
	return t, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
