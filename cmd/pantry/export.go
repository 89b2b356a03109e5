// Export command writes the full snapshot to a file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full snapshot as JSON",
	Long: `Export writes the entire snapshot to a date-stamped backup file, or to
the path given with --out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		raw, name, err := a.content.Export()
		if err != nil {
			return fmt.Errorf("export snapshot: %w", err)
		}
		if exportOut != "" {
			name = exportOut
		}
		if err := os.WriteFile(name, raw, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		fmt.Printf("Exported snapshot to %s\n", name)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default: pantry-backup-<date>.json)")
}
