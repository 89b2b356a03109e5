// Init command runs the first-run bootstrap sequence.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local content store",
	Long: `Init runs the bootstrap sequence: existing local data, then the remote
mirror when one is known, then the bundled seed file, then empty. It never
fails; with no network and no seed you start with an empty store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		st := a.content.Stats()
		if flagJSON {
			return printJSON(st)
		}
		fmt.Printf("Pantry initialized: %d videos, %d screenshots, %d posts, %d streams\n",
			st.Videos, st.Screenshots, st.Posts, st.Streams)
		return nil
	},
}
