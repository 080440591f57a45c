package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Writer serializes output records. Supported formats: "jsonl" writes one JSON
// object per line as results arrive; "summary" only prints aggregate counts on
// Close.
type Writer struct {
	out    io.Writer
	format string
	logger *zerolog.Logger

	total  int
	errors int
	cached int
}

func NewWriter(out io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	switch format {
	case "jsonl", "summary":
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	return &Writer{
		out:    out,
		format: format,
		logger: logger,
	}, nil
}

func (w *Writer) Write(record OutputRecord) error {
	w.total++
	if record.Error != "" {
		w.errors++
	}
	if record.Cached {
		w.cached++
	}

	if w.format != "jsonl" {
		return nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w.out, string(data)); err != nil {
		return err
	}
	return nil
}

func (w *Writer) Close() error {
	if w.format != "summary" {
		return nil
	}

	summary := map[string]int{
		"total":  w.total,
		"errors": w.errors,
		"cached": w.cached,
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w.out, string(data))
	return err
}
