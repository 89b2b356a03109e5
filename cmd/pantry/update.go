// Update command merges fields into an existing entry.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

var updateVals struct {
	title     string
	date      string
	tag       string
	category  string
	url       string
	thumbnail string
	content   string
	excerpt   string
	isLive    bool
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an existing entry",
	Long: `Update merges the given fields into the entry with the given ID. Only
flags that were set are applied; other fields keep their prior values. The
entry's kind never changes.

Example:
  pantry update 0198a7... --title "New title"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := collectFields(cmd.Flags())

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		entry, found := a.content.Update(args[0], fields)
		if !found {
			return fmt.Errorf("no entry with ID %s", args[0])
		}

		if flagJSON {
			return printJSON(entry)
		}
		fmt.Printf("Updated %s %s\n", entry.Kind, entry.ID)
		return nil
	},
}

// collectFields maps only the flags the user set into a partial update, so
// unset flags never clobber existing values.
func collectFields(fs *pflag.FlagSet) types.Fields {
	var f types.Fields
	if fs.Changed("title") {
		f.Title = &updateVals.title
	}
	if fs.Changed("date") {
		f.Date = &updateVals.date
	}
	if fs.Changed("tag") {
		f.GameTag = &updateVals.tag
	}
	if fs.Changed("category") {
		f.Category = &updateVals.category
	}
	if fs.Changed("url") {
		f.URL = &updateVals.url
	}
	if fs.Changed("thumbnail") {
		f.Thumbnail = &updateVals.thumbnail
	}
	if fs.Changed("content") {
		f.Content = &updateVals.content
	}
	if fs.Changed("excerpt") {
		f.Excerpt = &updateVals.excerpt
	}
	if fs.Changed("live") {
		f.IsLive = &updateVals.isLive
	}
	return f
}

func init() {
	updateCmd.Flags().StringVar(&updateVals.title, "title", "", "display title")
	updateCmd.Flags().StringVar(&updateVals.date, "date", "", "date (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&updateVals.tag, "tag", "", "game tag")
	updateCmd.Flags().StringVar(&updateVals.category, "category", "", "category")
	updateCmd.Flags().StringVar(&updateVals.url, "url", "", "source URL")
	updateCmd.Flags().StringVar(&updateVals.thumbnail, "thumbnail", "", "thumbnail URL")
	updateCmd.Flags().StringVar(&updateVals.content, "content", "", "post body")
	updateCmd.Flags().StringVar(&updateVals.excerpt, "excerpt", "", "post excerpt")
	updateCmd.Flags().BoolVar(&updateVals.isLive, "live", false, "stream live flag")
}
