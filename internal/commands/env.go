package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/passbook-dev/passbook/internal/auth"
	"github.com/passbook-dev/passbook/internal/config"
	"github.com/passbook-dev/passbook/internal/ledger"
	"github.com/passbook-dev/passbook/internal/store"
	"github.com/passbook-dev/passbook/internal/txlog"
)

const configFile = "passbook.yaml"

// openLedger wires up a ledger Service over the data directory. A missing
// passbook.yaml falls back to defaults, so the data files spring into
// existence on first use just like the original system's startup.
func openLedger(dataDir string) (*ledger.Service, *config.Config, error) {
	absDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, configFile))
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default("Passbook")
	} else if err != nil {
		return nil, nil, err
	}

	st, err := store.Open(filepath.Join(absDir, cfg.Storage.AccountsFile))
	if err != nil {
		return nil, nil, err
	}
	lg, err := txlog.Open(filepath.Join(absDir, cfg.Storage.TransactionsFile))
	if err != nil {
		return nil, nil, err
	}
	guard, err := auth.NewGuard(filepath.Join(absDir, cfg.Storage.LockoutsFile), cfg.Auth.MaxAttempts)
	if err != nil {
		return nil, nil, err
	}

	return ledger.NewService(st, lg, guard, cfg.Statement.Limit), cfg, nil
}

// addDataFlag registers the shared --data flag.
func addDataFlag(cmd *cobra.Command, dataDir *string) {
	cmd.Flags().StringVar(dataDir, "data", ".", "data directory")
}

// addSessionFlags registers the credential flags shared by every logged-in
// operation.
func addSessionFlags(cmd *cobra.Command, account, password *string) {
	cmd.Flags().StringVar(account, "account", "", "account number (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(password, "password", "", "account password (required)")
	_ = cmd.MarkFlagRequired("password")
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return amount, nil
}
