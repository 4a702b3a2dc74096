package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBalanceCommand() *cobra.Command {
	var dataDir string
	var account string
	var password string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the current balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := openLedger(dataDir)
			if err != nil {
				return err
			}

			sess, err := svc.Authenticate(account, password)
			if err != nil {
				return err
			}

			fmt.Printf("Current Balance: %s%s\n", cfg.Bank.Currency, sess.Balance.StringFixed(2))
			return nil
		},
	}

	addDataFlag(cmd, &dataDir)
	addSessionFlags(cmd, &account, &password)

	return cmd
}
