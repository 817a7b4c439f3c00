package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	"github.com/SscSPs/fee_ledger/internal/dto"
	"github.com/SscSPs/fee_ledger/internal/middleware"
)

var generateCycleCmd = &cobra.Command{
	Use:   "generate-cycle",
	Short: "Bill every active student for one month",
	Long: `Create one invoice per active student for the billing period. Students already billed
for the period are skipped, so an interrupted run can simply be repeated.`,
	Example: `  fee_ledger generate-cycle --year 2023 --month 8 --amount 500 --description "August tuition"`,
	RunE:    runGenerateCycle,
}

func init() {
	rootCmd.AddCommand(generateCycleCmd)

	generateCycleCmd.Flags().Int("year", 0, "Billing period year")
	generateCycleCmd.Flags().Int("month", 0, "Billing period month (1-12)")
	generateCycleCmd.Flags().String("amount", "", "Amount billed to each student")
	generateCycleCmd.Flags().String("description", "", "Invoice description")
	generateCycleCmd.Flags().String("as", "cli", "Actor recorded as the invoices' creator")
	_ = generateCycleCmd.MarkFlagRequired("year")
	_ = generateCycleCmd.MarkFlagRequired("month")
	_ = generateCycleCmd.MarkFlagRequired("amount")
	_ = generateCycleCmd.MarkFlagRequired("description")
}

func runGenerateCycle(cmd *cobra.Command, args []string) error {
	year, _ := cmd.Flags().GetInt("year")
	month, _ := cmd.Flags().GetInt("month")
	amountStr, _ := cmd.Flags().GetString("amount")
	description, _ := cmd.Flags().GetString("description")
	actor, _ := cmd.Flags().GetString("as")

	period := domain.BillingPeriod{Year: year, Month: time.Month(month)}
	if err := period.Validate(); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := openLedger(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.close(context.Background())

	jobLogger := logger.With(slog.String("job", "billing-cycle"), slog.String("period", period.String()))
	result, err := app.services.BillingCycle.GenerateCycle(middleware.WithLogger(ctx, jobLogger), period, amount, description, actor)
	if result != nil {
		if encErr := printJSON(dto.ToCycleResultResponse(result)); encErr != nil {
			return encErr
		}
	}
	return err
}
