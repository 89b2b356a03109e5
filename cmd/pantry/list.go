// List command queries one collection.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

var (
	listTag      string
	listCategory string
	listLatest   int
)

var listCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List entries of one kind",
	Long: `List prints the entries of one collection: video, screenshot, post or
stream. Filters are exact-match and case-insensitive.

Example:
  pantry list video
  pantry list video --tag minecraft
  pantry list post --latest 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		if !types.ValidKind(kind) {
			return fmt.Errorf("unknown kind %q (expected video, screenshot, post or stream)", kind)
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		var entries []types.Entry
		switch {
		case listTag != "":
			entries = a.content.GetByTag(kind, listTag)
		case listCategory != "":
			entries = a.content.GetByCategory(kind, listCategory)
		case listLatest > 0:
			entries = a.content.GetLatest(kind, listLatest)
		default:
			entries = a.content.GetAll(kind)
		}

		if flagJSON {
			return printJSON(entries)
		}
		for _, e := range entries {
			if err := printEntry(e); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listTag, "tag", "", "filter by game tag")
	listCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
	listCmd.Flags().IntVar(&listLatest, "latest", 0, "show only the N newest entries")
}
