// Package records reads student batches from JSON and CSV and writes
// analysis rows back out as CSV.
package records

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/student"
)

// CSVHeader is the column layout written by the dashboard export and
// expected by LoadCSV. Columns may appear in any order; extra columns are
// kept as pass-through fields.
var CSVHeader = []string{"id", "name", "class", "averageGrade", "attendance", "attitude", "tasks"}

// DecodeJSON validates data against the records schema and decodes it.
func DecodeJSON(data []byte) ([]student.Record, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ErrInvalidInput{Source: "json", Err: err}
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}

	var out []student.Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &ErrInvalidInput{Source: "json", Err: err}
	}
	if out == nil {
		out = []student.Record{}
	}
	return out, nil
}

// LoadJSON reads a JSON array of records from r.
func LoadJSON(r io.Reader) ([]student.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	return DecodeJSON(data)
}

// LoadCSV reads records from a CSV file with a header row. Blank metric
// cells are treated as absent. Metrics get the same bounds as JSON input:
// 0-100 for grade, attendance and attitude, tasks at least 0.
func LoadCSV(r io.Reader) ([]student.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	headers, err := cr.Read()
	if err == io.EOF {
		return []student.Record{}, nil
	}
	if err != nil {
		return nil, &ErrInvalidInput{Source: "csv", Line: 1, Err: err}
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	out := []student.Record{}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &ErrInvalidInput{Source: "csv", Line: line, Err: err}
		}
		rec, err := parseRow(headers, row)
		if err != nil {
			return nil, &ErrInvalidInput{Source: "csv", Line: line, Err: err}
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRow(headers, row []string) (student.Record, error) {
	var rec student.Record
	for i, h := range headers {
		if i >= len(row) {
			break
		}
		cell := strings.TrimSpace(row[i])
		switch h {
		case "id":
			rec.ID = cell
		case "name":
			rec.Name = cell
		case "class":
			rec.Class = cell
		case "averageGrade", "attendance", "attitude":
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return rec, fmt.Errorf("%s: %w", h, err)
			}
			if v < 0 || v > 100 {
				return rec, fmt.Errorf("%s: %v outside 0-100", h, v)
			}
			switch h {
			case "averageGrade":
				rec.AverageGrade = &v
			case "attendance":
				rec.Attendance = &v
			default:
				rec.Attitude = &v
			}
		case "tasks":
			if cell == "" {
				continue
			}
			n, err := strconv.Atoi(cell)
			if err != nil {
				return rec, fmt.Errorf("tasks: %w", err)
			}
			if n < 0 {
				return rec, fmt.Errorf("tasks: %d is negative", n)
			}
			rec.Tasks = &n
		default:
			if h == "" {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]any)
			}
			rec.Extra[h] = cell
		}
	}
	if rec.ID == "" {
		return rec, fmt.Errorf("missing id")
	}
	return rec, nil
}

// LoadFile reads records from path, picking the decoder by extension.
func LoadFile(path string) ([]student.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".csv":
		return LoadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .json or .csv)", filepath.Ext(path))
	}
}

// WriteCSV writes a header line followed by rows. Nothing is written for
// an empty header.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	if len(headers) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}
