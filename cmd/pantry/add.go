// Add command creates a new content entry.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

var addEntry types.Entry

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new content entry",
	Long: `Add creates a new entry in the collection named by --type. The ID and
date are generated when omitted.

Example:
  pantry add --type video --title "Speedrun PB" --url https://youtu.be/x --tag Celeste
  pantry add --type post --title "Hello" --content "First post."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		stored, err := a.content.Add(addEntry)
		if err != nil {
			return fmt.Errorf("add entry: %w", err)
		}

		if flagJSON {
			return printJSON(stored)
		}
		fmt.Printf("Added %s %s\n", stored.Kind, stored.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addEntry.Kind, "type", "", "entry kind: video, screenshot, post or stream (required)")
	addCmd.Flags().StringVar(&addEntry.Title, "title", "", "display title")
	addCmd.Flags().StringVar(&addEntry.Date, "date", "", "date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addEntry.GameTag, "tag", "", "game tag")
	addCmd.Flags().StringVar(&addEntry.Category, "category", "", "category")
	addCmd.Flags().StringVar(&addEntry.URL, "url", "", "source URL (video, screenshot, stream)")
	addCmd.Flags().StringVar(&addEntry.Thumbnail, "thumbnail", "", "thumbnail URL")
	addCmd.Flags().StringVar(&addEntry.Content, "content", "", "post body")
	addCmd.Flags().StringVar(&addEntry.Excerpt, "excerpt", "", "post excerpt")
	_ = addCmd.MarkFlagRequired("type")
}
