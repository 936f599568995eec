package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/internal/app"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/internal/config"
)

// cli carries state shared by all subcommands.
type cli struct {
	envFiles []string
	format   string
	addr     string
	appOpts  []app.Option

	app *app.App
}

func newRootCmd(opts ...app.Option) *cobra.Command {
	c := &cli{appOpts: opts}

	root := &cobra.Command{
		Use:           "autocertify",
		Short:         "Generate and email certificates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if c.app == nil {
				return nil
			}
			return c.app.Shutdown(context.WithoutCancel(cmd.Context()))
		},
	}

	root.PersistentFlags().StringSliceVar(&c.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	root.PersistentFlags().StringVarP(&c.format, "output", "o", formatText, "output format (text, json)")

	root.AddCommand(
		c.sendCmd(),
		c.previewCmd(),
		c.historyCmd(),
		c.templatesCmd(),
		c.fontsCmd(),
		c.serveCmd(),
	)
	return root
}

func (c *cli) setup() error {
	if c.format != formatText && c.format != formatJSON {
		return fmt.Errorf("unknown output format %q", c.format)
	}

	cfg, err := config.Load(c.envFiles...)
	if err != nil {
		return err
	}
	if c.addr != "" {
		cfg.Addr = c.addr
	}
	c.app, err = app.New(cfg, c.appOpts...)
	return err
}
