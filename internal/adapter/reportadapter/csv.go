package reportadapter

import (
	"encoding/csv"
	"fmt"
	"io"
)

type csvWriter struct{}

func (c *csvWriter) Ext() string {
	return "csv"
}

func (c *csvWriter) Write(w io.Writer, doc *Document) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(doc.Rows); err != nil {
		return fmt.Errorf("cannot write csv: %w", err)
	}

	return nil
}
