package main

import (
	"encoding/json"
	"fmt"
	"io"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// print writes v as indented JSON in json mode, otherwise calls text.
func (c *cli) print(w io.Writer, v any, text func(io.Writer)) error {
	if c.format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func printLines(w io.Writer, lines []string, empty string) {
	if len(lines) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}
