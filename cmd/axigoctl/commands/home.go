package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func homeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Home all axes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := postJSON("/homeAxis", nil); err != nil {
				return err
			}
			fmt.Println("Homed.")
			return nil
		},
	}
}
