// Package render turns an invoice.Document into bytes. A nil document renders
// the "no days" placeholder. Renderers keep no state between calls and may be
// used from several goroutines.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jesses-code-adventures/ndis-invoice/internal/invoice"
)

const NoContentText = "No days to display"

type Renderer interface {
	Render(w io.Writer, doc *invoice.Document) error
	Extension() string
}

var renderers = map[string]Renderer{
	"pdf":  PDFRenderer{},
	"html": HTMLRenderer{},
	"text": TextRenderer{},
	"csv":  CSVRenderer{},
	"xlsx": XLSXRenderer{},
}

func ForFormat(format string) (Renderer, error) {
	r, ok := renderers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q, expected one of %s", format, strings.Join(Formats(), ", "))
	}
	return r, nil
}

func Formats() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clientLine(doc *invoice.Document) string {
	return fmt.Sprintf("%s, NDIS#: %s", doc.Meta.ClientName, doc.Meta.ClientNDIS)
}
