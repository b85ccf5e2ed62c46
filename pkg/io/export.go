package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tracesplit/pkg/trace"
)

// WriteJSON encodes fig as indented JSON.
func WriteJSON(fig *Figure, w io.Writer) error {
	if fig.Data == nil {
		fig = &Figure{Data: []trace.Trace{}, Layout: fig.Layout}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fig); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes fig to a JSON file at path. A path of "-" writes to
// stdout.
func ExportJSON(fig *Figure, path string) error {
	if path == "-" {
		return WriteJSON(fig, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(fig, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
