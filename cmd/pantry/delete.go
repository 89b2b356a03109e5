// Delete command removes an entry by ID.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.content.Delete(args[0]) {
			return fmt.Errorf("no entry with ID %s", args[0])
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}
