// Package reportadapter serializes a finished report into a tabular file.
package reportadapter

import (
	"fmt"
	"io"
	"time"

	"github.com/jgivc/coursecheck/internal/common"
	"github.com/jgivc/coursecheck/internal/config"
	"github.com/jgivc/coursecheck/internal/entity"
)

const (
	fileTimeLayout = "20060102_150405"
	partialSuffix  = "_partial"
)

// Document is everything a writer may render. Rows[0] is the header.
type Document struct {
	Title       string
	GeneratedAt time.Time
	Rows        [][]string
	Summary     entity.Summary
}

type Writer interface {
	Write(w io.Writer, doc *Document) error
	Ext() string
}

func NewWriter(format string) (Writer, error) {
	switch format {
	case config.FormatXLSX:
		return &xlsxWriter{}, nil
	case config.FormatCSV:
		return &csvWriter{}, nil
	case config.FormatHTML:
		return newHTMLWriter()
	}

	return nil, fmt.Errorf("%w: %q", common.ErrUnknownReportFormat, format)
}

// FileName builds names like validation_report_20250102_150405.xlsx.
func FileName(prefix string, w Writer, t time.Time, partial bool) string {
	name := prefix + "_" + t.Format(fileTimeLayout)
	if partial {
		name += partialSuffix
	}

	return name + "." + w.Ext()
}
