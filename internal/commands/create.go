package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCreateAccountCommand() *cobra.Command {
	var dataDir string
	var name string
	var deposit string
	var password string

	cmd := &cobra.Command{
		Use:   "create-account",
		Short: "Open a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := openLedger(dataDir)
			if err != nil {
				return err
			}

			amount, err := parseAmount(deposit)
			if err != nil {
				return err
			}

			acct, err := svc.CreateAccount(name, amount, password)
			if err != nil {
				return err
			}

			fmt.Println("Account created successfully!")
			fmt.Printf("Account Number: %s\n", acct.Number)
			fmt.Printf("Account Holder: %s\n", acct.Name)
			fmt.Printf("Initial Balance: %s%s\n", cfg.Bank.Currency, acct.Balance.StringFixed(2))
			return nil
		},
	}

	addDataFlag(cmd, &dataDir)
	cmd.Flags().StringVar(&name, "name", "", "account holder name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&deposit, "deposit", "0", "initial deposit amount")
	cmd.Flags().StringVar(&password, "password", "", "account password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
