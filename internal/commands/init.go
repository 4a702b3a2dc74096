package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/passbook-dev/passbook/internal/auth"
	"github.com/passbook-dev/passbook/internal/config"
	"github.com/passbook-dev/passbook/internal/store"
	"github.com/passbook-dev/passbook/internal/txlog"
)

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "Passbook", "ledger name")

	return cmd
}

func runInit(dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default(name)
	if err := config.Save(filepath.Join(dir, configFile), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the header-only data files up front.
	if _, err := store.Open(filepath.Join(dir, cfg.Storage.AccountsFile)); err != nil {
		return err
	}
	if _, err := txlog.Open(filepath.Join(dir, cfg.Storage.TransactionsFile)); err != nil {
		return err
	}
	if _, err := auth.NewGuard(filepath.Join(dir, cfg.Storage.LockoutsFile), cfg.Auth.MaxAttempts); err != nil {
		return err
	}

	fmt.Printf("Initialized %s ledger at %s\n", name, dir)
	return nil
}
