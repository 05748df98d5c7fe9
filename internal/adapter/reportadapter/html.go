package reportadapter

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	_ "embed"

	"github.com/jgivc/coursecheck/internal/entity"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/report.html
var defaultTemplateContent []byte

type PageContext struct {
	*Document
	ContentHTML template.HTML
}

// htmlWriter renders the rows as a Markdown table and converts it with goldmark.
type htmlWriter struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

func newHTMLWriter() (*htmlWriter, error) {
	tmpl, err := template.New("report").Parse(string(defaultTemplateContent))
	if err != nil {
		return nil, fmt.Errorf("cannot parse template content: %w", err)
	}

	return &htmlWriter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
		tmpl: tmpl,
	}, nil
}

func (h *htmlWriter) Ext() string {
	return "html"
}

func (h *htmlWriter) Write(w io.Writer, doc *Document) error {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(markdownTable(doc.Rows)), &buf); err != nil {
		return fmt.Errorf("cannot convert markdown: %w", err)
	}

	if err := h.tmpl.Execute(w, &PageContext{Document: doc, ContentHTML: template.HTML(buf.String())}); err != nil {
		return fmt.Errorf("cannot execute template: %w", err)
	}

	return nil
}

func markdownTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		sb.WriteString("|")
		for _, cell := range row {
			sb.WriteString(" ")
			sb.WriteString(escapeCell(cell))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(rows[0])
	sb.WriteString("|")
	sb.WriteString(strings.Repeat(" --- |", len(rows[0])))
	sb.WriteString("\n")

	for _, row := range rows[1:] {
		writeRow(row)
	}

	return sb.String()
}

// escapeCell backslash-escapes ASCII punctuation so names are rendered literally.
func escapeCell(cell string) string {
	if cell == "" {
		return entity.Placeholder
	}

	var sb strings.Builder
	for _, r := range cell {
		switch {
		case r == '\n' || r == '\r':
			sb.WriteRune(' ')
		case r < 0x80 && strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", r):
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
