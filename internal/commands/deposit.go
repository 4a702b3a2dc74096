package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDepositCommand() *cobra.Command {
	var dataDir string
	var account string
	var password string
	var amount string

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit money into an account",
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

			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}

			if err := svc.Deposit(sess, amt); err != nil {
				return err
			}

			fmt.Printf("%s%s deposited successfully!\n", cfg.Bank.Currency, amt.StringFixed(2))
			fmt.Printf("New Balance: %s%s\n", cfg.Bank.Currency, sess.Balance.StringFixed(2))
			return nil
		},
	}

	addDataFlag(cmd, &dataDir)
	addSessionFlags(cmd, &account, &password)
	cmd.Flags().StringVar(&amount, "amount", "", "amount to deposit (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
