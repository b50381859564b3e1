package sources

import (
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/errors"
)

// csvRow is one data row keyed by lower-cased header name.
type csvRow struct {
	line   int
	values map[string]string
}

func (r csvRow) get(column string) string {
	return r.values[strings.ToLower(column)]
}

// readCSV reads a CSV file with a header row. Cells are trimmed and rows
// whose cells are all empty are skipped.
func readCSV(data []byte, file string) ([]csvRow, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, csvError(file, err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []csvRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(file, err)
		}
		line, _ := r.FieldPos(0)

		row := csvRow{line: line, values: make(map[string]string, len(header))}
		empty := true
		for i, cell := range record {
			if i >= len(header) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				empty = false
			}
			row.values[header[i]] = cell
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func csvError(file string, err error) error {
	pe := errors.NewParseError("csv", file, err.Error(), err)
	var perr *csv.ParseError
	if stderrors.As(err, &perr) {
		pe.Line = perr.Line
		pe.Column = perr.Column
	}
	return pe
}

func decodeActivitiesCSV(data []byte, file string) ([]catalogs.Activity, error) {
	rows, err := readCSV(data, file)
	if err != nil {
		return nil, err
	}
	acts := make([]catalogs.Activity, 0, len(rows))
	for _, row := range rows {
		acts = append(acts, catalogs.Activity{
			Category: row.get("Category"),
			Activity: row.get("Activity"),
			Scope:    catalogs.Scope(row.get("Scope")),
		})
	}
	return acts, nil
}

func decodePricesCSV(data []byte, file string, logger *zerolog.Logger) ([]catalogs.Price, error) {
	rows, err := readCSV(data, file)
	if err != nil {
		return nil, err
	}
	prices := make([]catalogs.Price, 0, len(rows))
	for _, row := range rows {
		p := catalogs.Price{
			Service: row.get("Service"),
			Unit:    row.get("Unit"),
		}
		for _, col := range []struct {
			name string
			dst  *float64
		}{
			{"Median", &p.Median},
			{"Min", &p.Min},
			{"Max", &p.Max},
		} {
			v, err := parseAmount(row.get(col.name))
			if err != nil {
				warnCell(logger, file, row, col.name)
				continue
			}
			*col.dst = v
		}
		level, err := parseLevel(row.get("Level"))
		if err != nil {
			warnCell(logger, file, row, "Level")
		}
		p.Level = level
		prices = append(prices, p)
	}
	return prices, nil
}

// warnCell logs a price cell that could not be parsed. The row is kept
// with the value unset; an unset level keeps the row out of price lookups.
func warnCell(logger *zerolog.Logger, file string, row csvRow, column string) {
	logger.Warn().
		Str("file", file).
		Int("line", row.line).
		Str("column", column).
		Str("value", row.get(column)).
		Str("service", row.get("Service")).
		Msg("Unparseable price cell, value left unset")
}
