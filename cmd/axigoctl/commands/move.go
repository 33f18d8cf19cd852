package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <position>...",
		Short: "Move axes to absolute positions (one value per axis)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := make([]float64, len(args))
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("position %q: %w", arg, err)
				}
				targets[i] = v
			}

			if err := postJSON("/setPosition", struct {
				Position []float64 `json:"position"`
			}{Position: targets}); err != nil {
				return err
			}

			// Report the committed (possibly clamped) positions.
			var pos struct {
				Position []float64 `json:"position"`
				Units    []string  `json:"units"`
			}
			if err := getJSON("/getPosition", &pos); err != nil {
				return err
			}
			for i, p := range pos.Position {
				fmt.Printf("Axis %d: %.3f %s\n", i+1, p, pos.Units[i])
			}
			return nil
		},
	}
}
