// Package output renders command results as tables, JSON, YAML or
// markdown. Tabular formats print a table.Data built by the command; the
// structured formats encode the result value itself.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	md "github.com/nao1215/markdown"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/agentstation/servicemap/internal/cmd/table"
)

// Format names an output format.
type Format string

// Output formats.
const (
	FormatTable    Format = "table"
	FormatWide     Format = "wide" // table with the optional columns
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

var formats = []Format{FormatTable, FormatWide, FormatJSON, FormatYAML, FormatMarkdown}

// Data is the table shape every tabular format renders.
type Data = table.Data

// IsTabular reports whether the format renders table data rather than the
// raw value. The empty format is a table.
func (f Format) IsTabular() bool {
	return f == "" || f == FormatTable || f == FormatWide || f == FormatMarkdown
}

// ParseFormat validates a format name. Names are case insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" || slices.Contains(formats, f) {
		return f, nil
	}
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("invalid format %q: must be one of: %s", s, strings.Join(names, ", "))
}

// DetectFormat returns the explicit format when one is given. Otherwise a
// terminal gets a table and a pipe gets JSON.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	if fd := os.Stdout.Fd(); isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatTable
	}
	return FormatJSON
}

// Formatter writes a value in one format.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(io.Writer, any) error

// Format calls f(w, data).
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter returns the formatter of format. Unknown formats render as
// a table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return FormatterFunc(writeJSON)
	case FormatYAML:
		return FormatterFunc(writeYAML)
	case FormatMarkdown:
		return FormatterFunc(writeMarkdown)
	}
	return FormatterFunc(writeTable)
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeYAML(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// tableOf extracts table data from data, if it has any.
func tableOf(data any) (Data, bool) {
	switch v := data.(type) {
	case Data:
		return v, true
	case Tabular:
		return v.TableData(), true
	}
	return Data{}, false
}

// writeTable renders table data with tablewriter. Values without table
// data fall back to JSON.
func writeTable(w io.Writer, data any) error {
	d, ok := tableOf(data)
	if !ok {
		return writeJSON(w, data)
	}

	var cfg tablewriter.Config
	if align := alignments(d.ColumnAlignment); align != nil {
		cfg.Header.Alignment = tw.CellAlignment{PerColumn: align}
		cfg.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}
	t := tablewriter.NewTable(w, tablewriter.WithConfig(cfg))

	if len(d.Headers) > 0 {
		t.Header(cells(d.Headers)...)
	}
	for _, row := range d.Rows {
		if err := t.Append(cells(row)...); err != nil {
			return err
		}
	}
	return t.Render()
}

func alignments(cols []table.Align) []tw.Align {
	if len(cols) == 0 {
		return nil
	}
	out := make([]tw.Align, len(cols))
	for i, a := range cols {
		switch a {
		case table.AlignLeft:
			out[i] = tw.AlignLeft
		case table.AlignCenter:
			out[i] = tw.AlignCenter
		case table.AlignRight:
			out[i] = tw.AlignRight
		default:
			out[i] = tw.Skip
		}
	}
	return out
}

func cells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// MarkdownWriter is implemented by values with a dedicated markdown
// rendering, such as service reports.
type MarkdownWriter interface {
	WriteMarkdown(w io.Writer) error
}

// writeMarkdown renders a markdown document, a markdown table for table
// data, or a fenced JSON block for anything else.
func writeMarkdown(w io.Writer, data any) error {
	if mw, ok := data.(MarkdownWriter); ok {
		return mw.WriteMarkdown(w)
	}
	if d, ok := tableOf(data); ok {
		return md.NewMarkdown(w).
			Table(md.TableSet{Header: d.Headers, Rows: d.Rows}).
			Build()
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return md.NewMarkdown(w).
		CodeBlocks(md.SyntaxHighlight("json"), string(raw)).
		Build()
}
