// Package report collects validation rows in the order they were produced.
package report

import "github.com/jgivc/coursecheck/internal/entity"

var header = []string{"Course", "Section", "File", "Status", "Reason"}

// Report is an append-only sequence of rows. It is not safe for concurrent use.
type Report struct {
	rows []entity.ReportRow
}

func New() *Report {
	return &Report{}
}

func Header() []string {
	return append([]string(nil), header...)
}

func (r *Report) Append(rows ...entity.ReportRow) {
	r.rows = append(r.rows, rows...)
}

func (r *Report) Len() int {
	return len(r.rows)
}

// Rows returns a copy of the collected rows.
func (r *Report) Rows() []entity.ReportRow {
	return append([]entity.ReportRow(nil), r.rows...)
}

// Finalize returns the header followed by every row as plain cells.
func (r *Report) Finalize() [][]string {
	out := make([][]string, 0, len(r.rows)+1)
	out = append(out, Header())
	for _, row := range r.rows {
		out = append(out, row.Values())
	}

	return out
}

func (r *Report) Summary() entity.Summary {
	var s entity.Summary
	for _, row := range r.rows {
		switch row.Status {
		case entity.StatusValid:
			s.Valid++
		case entity.StatusInvalid:
			s.Invalid++
		case entity.StatusWarning:
			s.Warning++
		}
	}

	return s
}
