package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/fee_ledger/internal/platform/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.StoreBackend != config.StorePostgres {
			return fmt.Errorf("migrate needs STORE_BACKEND=%s, got %q", config.StorePostgres, cfg.StoreBackend)
		}
		return migrateIfPostgres()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
