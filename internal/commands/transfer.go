package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTransferCommand() *cobra.Command {
	var dataDir string
	var account string
	var password string
	var to string
	var amount string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer money to another account",
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

			if err := svc.Transfer(sess, to, amt); err != nil {
				return err
			}

			fmt.Printf("%s%s transferred successfully to %s!\n", cfg.Bank.Currency, amt.StringFixed(2), to)
			fmt.Printf("Your new balance: %s%s\n", cfg.Bank.Currency, sess.Balance.StringFixed(2))
			return nil
		},
	}

	addDataFlag(cmd, &dataDir)
	addSessionFlags(cmd, &account, &password)
	cmd.Flags().StringVar(&to, "to", "", "recipient account number (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to transfer (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
