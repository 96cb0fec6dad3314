package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// OutputFormat is a --format value.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatCSV  OutputFormat = "csv"
)

// ParseFormat validates a --format value; empty means text.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(s))
	switch f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", NewConfigError("format", fmt.Sprintf("unknown output format %q: must be text, json or csv", s))
}

// TextRenderer is implemented by results with a human-readable form.
type TextRenderer interface {
	RenderText(w io.Writer) error
}

// CSVRecord is implemented by results that are one CSV row.
type CSVRecord interface {
	CSVHeader() []string
	CSVRow() []string
}

// CSVTable is implemented by results that are many CSV rows.
type CSVTable interface {
	CSVHeader() []string
	CSVRows() [][]string
}

// Formatter writes a command result.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// TextFormatter uses RenderText when data has it and %v otherwise.
type TextFormatter struct{}

func (TextFormatter) FormatTo(w io.Writer, data any) error {
	if r, ok := data.(TextRenderer); ok {
		return r.RenderText(w)
	}
	_, err := fmt.Fprintln(w, data)
	return err
}

// JSONFormatter encodes data as one JSON document.
type JSONFormatter struct {
	Indent bool
}

func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(data)
}

// CSVFormatter writes a CSVRecord, a []CSVRecord or a CSVTable.
type CSVFormatter struct {
	NoHeader bool
}

func (f *CSVFormatter) FormatTo(w io.Writer, data any) error {
	header, rows, err := csvRows(data)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if !f.NoHeader && header != nil {
		rows = append([][]string{header}, rows...)
	}
	return cw.WriteAll(rows)
}

func csvRows(data any) ([]string, [][]string, error) {
	switch v := data.(type) {
	case CSVTable:
		return v.CSVHeader(), v.CSVRows(), nil
	case CSVRecord:
		return v.CSVHeader(), [][]string{v.CSVRow()}, nil
	case []CSVRecord:
		if len(v) == 0 {
			return nil, nil, nil
		}
		rows := make([][]string, len(v))
		for i, r := range v {
			rows[i] = r.CSVRow()
		}
		return v[0].CSVHeader(), rows, nil
	}
	return nil, nil, fmt.Errorf("CSV output is not supported for %T", data)
}

// NewFormatter returns the formatter for format, text when unknown.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatCSV:
		return &CSVFormatter{}
	}
	return &TextFormatter{}
}
