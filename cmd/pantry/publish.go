// Publish command forces an immediate mirror upload.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload the snapshot to the remote mirror now",
	Long: `Publish uploads the current snapshot to the configured object store
and remembers the resulting URL. The first publish establishes the mirror;
after that, every local mutation replicates automatically in the background.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		url, err := a.content.Publish(cmd.Context())
		if err != nil {
			return fmt.Errorf("publish snapshot: %w", err)
		}
		fmt.Printf("Published snapshot to %s\n", url)
		return nil
	},
}
