package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (c *cli) templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List certificate templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := c.app.Catalog.Templates()
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), names, func(w io.Writer) {
				printLines(w, names, "No templates found.")
			})
		},
	}

	upload := &cobra.Command{
		Use:   "upload <file>",
		Short: "Add a .jpg or .png template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return err
			}

			name, err := c.app.Catalog.UploadTemplate(cmd.Context(), filepath.Base(args[0]), f, info.Size())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template '%s' uploaded successfully.\n", name)
			return nil
		},
	}

	cmd.AddCommand(upload)
	return cmd
}

func (c *cli) fontsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "List available fonts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := c.app.Catalog.Fonts()
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), names, func(w io.Writer) {
				printLines(w, names, "No fonts found.")
			})
		},
	}
}
