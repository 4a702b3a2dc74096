package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatementCommand() *cobra.Command {
	var dataDir string
	var account string
	var password string

	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Show the most recent transactions",
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

			txs, err := svc.MiniStatement(sess)
			if err != nil {
				return err
			}

			fmt.Printf("Account: %s\n", sess.Number)
			fmt.Printf("Account Holder: %s\n", sess.Name)
			fmt.Printf("Current Balance: %s%s\n", cfg.Bank.Currency, sess.Balance.StringFixed(2))
			fmt.Println("Recent Transactions:")
			if len(txs) == 0 {
				fmt.Println("No transactions found.")
				return nil
			}
			for _, tx := range txs {
				typ := string(tx.Type)
				if tx.IsTransfer() {
					typ = fmt.Sprintf("%s %s", tx.Type, tx.Counterparty)
				}
				fmt.Printf("%s | %s | %s%s\n", tx.Date.Format("2006-01-02"), typ, cfg.Bank.Currency, tx.Amount.StringFixed(2))
			}
			return nil
		},
	}

	addDataFlag(cmd, &dataDir)
	addSessionFlags(cmd, &account, &password)

	return cmd
}
