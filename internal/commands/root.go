// Package commands is the presentation layer: it parses flags, calls the
// ledger, and renders results. No business logic lives here.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/passbook-dev/passbook/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "passbook",
		Short:   "Single-user account ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newCreateAccountCommand())
	rootCmd.AddCommand(newLoginCommand())
	rootCmd.AddCommand(newBalanceCommand())
	rootCmd.AddCommand(newDepositCommand())
	rootCmd.AddCommand(newWithdrawCommand())
	rootCmd.AddCommand(newTransferCommand())
	rootCmd.AddCommand(newStatementCommand())
	rootCmd.AddCommand(newPasswdCommand())

	return rootCmd
}
