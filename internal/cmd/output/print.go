package output

import (
	"io"
)

// Tabular is implemented by values that know their own table rendering.
type Tabular interface {
	TableData() Data
}

// Print writes value in the requested format. Tabular formats render
// tableData; json and yaml render value itself.
func Print(w io.Writer, format Format, value any, tableData Data) error {
	formatter := NewFormatter(format)
	if !format.IsTabular() {
		return formatter.Format(w, value)
	}
	if format == FormatMarkdown {
		if mw, ok := value.(MarkdownWriter); ok {
			return formatter.Format(w, mw)
		}
	}
	return formatter.Format(w, tableData)
}

// PrintTabular is Print for values that carry their own table rendering.
func PrintTabular(w io.Writer, format Format, value Tabular) error {
	return Print(w, format, value, value.TableData())
}
