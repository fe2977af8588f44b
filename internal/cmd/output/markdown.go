package output

import (
	"io"

	md "github.com/nao1215/markdown"
)

// MarkdownFormatter outputs GitHub-flavored markdown: one level 2 heading
// per titled table followed by the table itself.
type MarkdownFormatter struct{}

// Format implements the Formatter interface for markdown output.
func (f *MarkdownFormatter) Format(w io.Writer, data any) error {
	var tables []Data
	switch v := data.(type) {
	case Data:
		tables = []Data{v}
	case []Data:
		tables = v
	default:
		tf := &TableFormatter{}
		d := tf.convertToTableData(data)
		if d == nil {
			return (&JSONFormatter{Indent: "  "}).Format(w, data)
		}
		tables = []Data{*d}
	}

	doc := md.NewMarkdown(w)
	for _, t := range tables {
		if t.Title != "" {
			doc.H2(t.Title).LF()
		}
		doc.Table(md.TableSet{
			Header: t.Headers,
			Rows:   t.Rows,
		}).LF()
	}
	return doc.Build()
}
