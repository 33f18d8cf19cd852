package commands

import (
	"github.com/spf13/cobra"
)

var addr string

// Execute runs the axigoctl command tree.
func Execute() error {
	root := &cobra.Command{
		Use:   "axigoctl",
		Short: "Control a networked AxiGo motion device",
	}

	root.PersistentFlags().StringVar(&addr, "addr", "http://127.0.0.1:8080",
		"device base URL (e.g. http://axigo.local:8080)")

	root.AddCommand(statusCmd(), homeCmd(), moveCmd(), watchCmd())
	return root.Execute()
}
