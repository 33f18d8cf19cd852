package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream status events from the device until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL(), nil)
			if err != nil {
				return fmt.Errorf("dial %s: %w", wsURL(), err)
			}
			defer conn.Close()
			fmt.Printf("Connected to %s\n", wsURL())

			go func() {
				<-ctx.Done()
				conn.Close()
			}()

			for {
				_, data, err := conn.ReadMessage()
				if err != nil {
					if ctx.Err() != nil {
						return nil // interrupted by the user
					}
					return err
				}
				fmt.Println(string(data))
			}
		},
	}
}
