// History command shows and clears the send history.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyClear bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the send history, newest first",
	Long: `History lists every successfully sent message, newest first. --clear
deletes all records; there is no undo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if historyClear {
			if err := a.gateway.ClearHistory(); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Println("History cleared")
			return nil
		}

		records := a.gateway.History()
		if flagJSON {
			return printJSON(records)
		}
		for _, rec := range records {
			fmt.Printf("%s  %-30s  %s\n", rec.Date, rec.Subject, rec.Preview)
		}
		fmt.Printf("%d sends remaining today\n", a.gateway.RemainingToday())
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all history records")
}
