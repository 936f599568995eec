package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/dispatch"
)

// passwordEnv is read when --password is not given, so secrets stay out of shell history.
const passwordEnv = "AUTOCERTIFY_SENDER_PASS"

type batchFlags struct {
	sender   string
	password string
	template string
	font     string
	file     string
	name     string
	email    string
}

func (f *batchFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.sender, "sender", "", "sender email address")
	fl.StringVar(&f.password, "password", "", "sender app password or API key (env "+passwordEnv+")")
	fl.StringVarP(&f.template, "template", "t", "", "certificate template file name")
	fl.StringVar(&f.font, "font", "", "font file name (default from AUTOCERTIFY_DEFAULT_FONT)")
	fl.StringVarP(&f.file, "file", "f", "", "recipient list (.xlsx, .xlsm or .csv)")
	fl.StringVar(&f.name, "name", "", "single recipient name, used when --file is not set")
	fl.StringVar(&f.email, "email", "", "single recipient email, used when --file is not set")
}

func (c *cli) sendCmd() *cobra.Command {
	f := &batchFlags{}
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Render and email a certificate to every recipient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runBatch(cmd, f, dispatch.ModeSend)
		},
	}
	f.register(cmd)
	return cmd
}

func (c *cli) previewCmd() *cobra.Command {
	f := &batchFlags{}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the first valid recipient's certificate as PNG without sending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runBatch(cmd, f, dispatch.ModePreview)
		},
	}
	f.register(cmd)
	return cmd
}

func (c *cli) runBatch(cmd *cobra.Command, f *batchFlags, mode dispatch.Mode) error {
	password := f.password
	if password == "" {
		password = os.Getenv(passwordEnv)
	}

	batch := dispatch.Batch{
		Credentials: dispatch.Credentials{Address: f.sender, Secret: password},
		Template:    f.template,
		Font:        f.font,
		Mode:        mode,
	}
	batch.Source.ManualName = f.name
	batch.Source.ManualEmail = f.email

	if f.file != "" {
		file, err := os.Open(f.file)
		if err != nil {
			return fmt.Errorf("open recipient list: %w", err)
		}
		defer file.Close()
		batch.Source.File = file
		batch.Source.Filename = filepath.Base(f.file)
	}

	res, err := c.app.Pipeline.Run(cmd.Context(), batch)
	if res != nil {
		if perr := c.print(cmd.OutOrStdout(), res, func(w io.Writer) { printResult(w, res) }); perr != nil {
			return perr
		}
	}
	if errors.Is(err, dispatch.ErrHistory) {
		return fmt.Errorf("certificates were sent but the send history could not be saved: %w", err)
	}
	return err
}

func printResult(w io.Writer, res *dispatch.Result) {
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn.Message)
	}
	fmt.Fprintln(w, res.Summary())
}
