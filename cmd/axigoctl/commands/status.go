package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print device type, axes, positions, limits and home status",
		RunE: func(cmd *cobra.Command, args []string) error {
			var devType struct {
				Type string `json:"type"`
			}
			if err := getJSON("/getDeviceType", &devType); err != nil {
				return err
			}

			var pos struct {
				Axes     []int     `json:"axes"`
				Units    []string  `json:"units"`
				Position []float64 `json:"position"`
			}
			if err := getJSON("/getPosition", &pos); err != nil {
				return err
			}

			var limits struct {
				Limits []float64 `json:"limits"`
			}
			if err := getJSON("/getAxesLimits", &limits); err != nil {
				return err
			}

			var home struct {
				HomeStatus []bool `json:"homeStatus"`
			}
			if err := getJSON("/axisHomeCheck", &home); err != nil {
				return err
			}

			fmt.Printf("Device type: %s\n", devType.Type)
			for i, n := range pos.Axes {
				fmt.Printf("Axis %d: %.3f %s (limit %.3f, homed: %v)\n",
					n, pos.Position[i], pos.Units[i], limits.Limits[i], home.HomeStatus[i])
			}
			return nil
		},
	}
}
