package fio

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
)

// Row is one record of a tabular endpoint, keyed by header name.
type Row map[string]string

// FetchCSV fetches a tabular endpoint and returns its rows. Short rows are
// rejected rather than padded: a truncated report is worse than none.
func (c *Client) FetchCSV(ctx context.Context, req Request) ([]Row, error) {
	req.Format = FormatCSV
	raw, err := c.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	rows, err := DecodeCSV(raw)
	if err != nil {
		return nil, &ParseError{Endpoint: req.Endpoint, Err: err}
	}
	return rows, nil
}

// DecodeCSV parses a header-labelled CSV body into rows.
func DecodeCSV(raw []byte) ([]Row, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	var rows []Row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", len(rows)+2, err)
		}
		row := make(Row, len(header))
		for i, name := range header {
			row[name] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
