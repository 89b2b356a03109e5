// Import command replaces the snapshot from a file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the entire snapshot from a JSON file",
	Long: `Import replaces all four collections with the contents of the given
file. There is no merge: the previous snapshot is discarded wholesale. A
malformed file leaves the current data untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.content.Import(raw); err != nil {
			return fmt.Errorf("import snapshot: %w", err)
		}

		st := a.content.Stats()
		fmt.Printf("Imported %d videos, %d screenshots, %d posts, %d streams\n",
			st.Videos, st.Screenshots, st.Posts, st.Streams)
		return nil
	},
}
