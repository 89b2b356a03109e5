// Send command delivers a message through the email relay.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sendSubject string
	sendMessage string
	sendImage   string
	sendTest    bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message through the email relay",
	Long: `Send delivers a message through the configured relay, subject to the
daily quota of 10. --test sends a fixed test message through the same path;
test sends count against the quota too.

Example:
  pantry send --subject "Hi" --message "New video is up."
  pantry send --test`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if sendTest {
			if _, err := a.gateway.SendTest(cmd.Context()); err != nil {
				return fmt.Errorf("send test message: %w", err)
			}
		} else {
			if _, err := a.gateway.Send(cmd.Context(), sendSubject, sendMessage, sendImage); err != nil {
				return fmt.Errorf("send message: %w", err)
			}
		}

		fmt.Printf("Message sent. %d sends remaining today.\n", a.gateway.RemainingToday())
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendSubject, "subject", "", "message subject")
	sendCmd.Flags().StringVar(&sendMessage, "message", "", "message body")
	sendCmd.Flags().StringVar(&sendImage, "image", "", "optional image URL to attach")
	sendCmd.Flags().BoolVar(&sendTest, "test", false, "send a fixed test message")
}
