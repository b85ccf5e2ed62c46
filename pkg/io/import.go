package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tracesplit/pkg/errors"
	"github.com/matzehuels/tracesplit/pkg/trace"
)

// ReadJSON decodes a figure, or a bare array of traces, from r.
// Every element of "data" must be an object.
func ReadJSON(r io.Reader) (*Figure, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	raw = bytes.TrimSpace(raw)

	if len(raw) > 0 && raw[0] == '[' {
		var data []any
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode traces")
		}
		traces, err := toTraces(data)
		if err != nil {
			return nil, err
		}
		return &Figure{Data: traces}, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode figure")
	}
	return fromDocument(doc)
}

// ReadTOML decodes a figure from r.
func ReadTOML(r io.Reader) (*Figure, error) {
	var doc map[string]any
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml figure")
	}
	m, _ := normalizeTOML(doc).(map[string]any)
	return fromDocument(m)
}

// Read decodes a figure in the named format.
func Read(r io.Reader, format string) (*Figure, error) {
	if err := errors.ValidateFormat(format, FormatJSON, FormatTOML); err != nil {
		return nil, err
	}
	if format == FormatTOML {
		return ReadTOML(r)
	}
	return ReadJSON(r)
}

// FormatOf returns the format implied by a file extension; unknown
// extensions are read as JSON.
func FormatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// ImportFile reads the figure at path, choosing the decoder by extension.
// A path of "-" reads JSON from stdin.
func ImportFile(path string) (*Figure, error) {
	if path == "-" {
		return ReadJSON(os.Stdin)
	}
	if err := errors.ValidateFilePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "figure %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fig, err := Read(f, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fig, nil
}

func fromDocument(doc map[string]any) (*Figure, error) {
	rawData, ok := doc["data"]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "figure has no data")
	}
	data, ok := rawData.([]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "figure data must be an array, got %T", rawData)
	}
	traces, err := toTraces(data)
	if err != nil {
		return nil, err
	}
	fig := &Figure{Data: traces}
	if layout, ok := doc["layout"].(map[string]any); ok {
		fig.Layout = layout
	}
	return fig, nil
}

func toTraces(data []any) ([]trace.Trace, error) {
	out := make([]trace.Trace, len(data))
	for i, v := range data {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "trace %d: must be an object, got %T", i, v)
		}
		out[i] = m
	}
	return out, nil
}

func normalizeTOML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalizeTOML(e)
		}
		return x
	case []map[string]any:
		out := make([]any, len(x))
		for i, m := range x {
			out[i] = normalizeTOML(m)
		}
		return out
	case []any:
		for i, e := range x {
			x[i] = normalizeTOML(e)
		}
		return x
	case int64:
		return float64(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	}
	return v
}
