// Live command shows and flips the stream live flags.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var liveOff bool

var liveCmd = &cobra.Command{
	Use:   "live [id]",
	Short: "Show whether any stream is live, or flip one stream's flag",
	Long: `With no argument, live reports whether any stream entry is flagged
live. With an ID it marks that stream live (or not live with --off). Marking
one stream live does not clear the flag on any other stream.

Example:
  pantry live
  pantry live 0198a7...
  pantry live 0198a7... --off`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if len(args) == 0 {
			if a.content.IsLive() {
				fmt.Println("live")
			} else {
				fmt.Println("offline")
			}
			return nil
		}

		if !a.content.SetLive(args[0], !liveOff) {
			return fmt.Errorf("no stream with ID %s", args[0])
		}
		fmt.Printf("Stream %s marked %s\n", args[0], liveWord(!liveOff))
		return nil
	},
}

func liveWord(live bool) string {
	if live {
		return "live"
	}
	return "offline"
}

func init() {
	liveCmd.Flags().BoolVar(&liveOff, "off", false, "mark the stream not live")
}
