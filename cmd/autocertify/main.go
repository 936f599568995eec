// Command autocertify renders certificates from an image template and mails
// them to recipients listed in a spreadsheet, or serves the same pipeline over HTTP.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
