// Stats command prints the collection sizes.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the four collection sizes",
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
		fmt.Printf("videos:      %d\n", st.Videos)
		fmt.Printf("screenshots: %d\n", st.Screenshots)
		fmt.Printf("posts:       %d\n", st.Posts)
		fmt.Printf("streams:     %d\n", st.Streams)
		return nil
	},
}
