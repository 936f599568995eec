package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/history"
)

func (c *cli) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect or clear the send history",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every recorded send",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.app.Ledger.LoadAll(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), entries, func(w io.Writer) {
				if len(entries) == 0 {
					fmt.Fprintln(w, "No history recorded.")
					return
				}
				for _, e := range entries {
					fmt.Fprintf(w, "%s\t%s\t%s\n", e.SentAt.Format(history.TimeLayout), e.Name, e.Email)
				}
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the send history file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := c.app.Ledger.DeleteAll(cmd.Context())
			if errors.Is(err, history.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No history file found.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History deleted successfully.")
			return nil
		},
	}

	cmd.AddCommand(list, clearCmd)
	return cmd
}
