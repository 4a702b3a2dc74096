package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPasswdCommand() *cobra.Command {
	var dataDir string
	var account string
	var password string
	var newPassword string
	var confirm string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the account password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openLedger(dataDir)
			if err != nil {
				return err
			}

			sess, err := svc.Authenticate(account, password)
			if err != nil {
				return err
			}

			if err := svc.ChangePassword(sess, password, newPassword, confirm); err != nil {
				return err
			}

			fmt.Println("Password changed successfully!")
			return nil
		},
	}

	addDataFlag(cmd, &dataDir)
	addSessionFlags(cmd, &account, &password)
	cmd.Flags().StringVar(&newPassword, "new", "", "new password (required)")
	_ = cmd.MarkFlagRequired("new")
	cmd.Flags().StringVar(&confirm, "confirm", "", "confirm new password (required)")
	_ = cmd.MarkFlagRequired("confirm")

	return cmd
}
