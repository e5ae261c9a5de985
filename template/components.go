// Package template renders the XHTML pages and XML control documents
// that make up the e-book.
package template

import (
	"context"
	"fmt"
	"io"

	"github.com/Atsmon/seek-scraper/model"
	"github.com/a-h/templ"
)

const xhtmlOpen = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head>
<title>%s</title>
<link rel="stylesheet" type="text/css" href="style.css"/>
</head>
<body>
`

const xhtmlClose = `</body>
</html>
`

// ContentXHTML is a chapter page: a heading plus the extracted
// content fragment, written as-is.
func ContentXHTML(title string, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, xhtmlOpen, templ.EscapeString(title)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<h1>%s</h1>\n", templ.EscapeString(title)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, body); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n"+xhtmlClose)
		return err
	})
}

// TitleXHTML is the book title page.
func TitleXHTML(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, xhtmlOpen, templ.EscapeString(title)); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "<h1 style=\"text-align:center !important; margin-top:40vh;\">%s</h1>\n%s", templ.EscapeString(title), xhtmlClose)
		return err
	})
}

// ArcXHTML is an arc divider page. Arcs count from 1.
func ArcXHTML(index int, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, xhtmlOpen, templ.EscapeString(name)); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "<h1>Arc %d: %s</h1>\n%s", index, templ.EscapeString(name), xhtmlClose)
		return err
	})
}

func ContainerXML() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<?xml version="1.0" encoding="utf-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
<rootfiles>
<rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
</rootfiles>
</container>
`)
		return err
	})
}

// ContentOPF wraps the pre-marshalled metadata, manifest, spine and
// guide blocks in the package envelope. The guide may be nil.
func ContentOPF(bookID string, dc *model.DublinCoreMetadata, manifest *model.Manifest, spine *model.Spine, guide *model.Guide) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<?xml version="1.0" encoding="utf-8"?>
<package xmlns="http://www.idpf.org/2007/opf" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:opf="http://www.idpf.org/2007/opf" unique-identifier="%s" version="3.0">
`, templ.EscapeString(bookID)); err != nil {
			return err
		}
		parts := []interface{ Marshal() (string, error) }{dc, manifest, spine}
		if guide != nil {
			parts = append(parts, guide)
		}
		for _, part := range parts {
			s, err := part.Marshal()
			if err != nil {
				return err
			}
			if _, err := io.WriteString(w, s+"\n"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</package>\n")
		return err
	})
}

func TocNCX(title string, head *model.TocNCXHead, nav *model.NavMap) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		headXML, err := head.Marshal()
		if err != nil {
			return err
		}
		navXML, err := nav.Marshal()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, `<?xml version="1.0" encoding="utf-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
%s
<docTitle><text>%s</text></docTitle>
%s
</ncx>
`, headXML, templ.EscapeString(title), navXML)
		return err
	})
}
