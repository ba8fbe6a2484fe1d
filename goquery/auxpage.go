// Package goquery preprocesses auxiliary HTML pages before Markdown
// conversion: it extracts a display title and rewrites legacy cross-reference
// links against the symbol catalog.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdex"
)

// AuxPage is an auxiliary HTML page prepared for conversion.
type AuxPage struct {
	// Name is the page stem used for output paths and catalog registration.
	Name string
	// Title is the display title: <title> text, else the first <h1>, else
	// the name itself.
	Title string
	// HTML is the page body with legacy hrefs rewritten to local links.
	HTML string
}

// PrepareAuxPage parses one auxiliary page. Every anchor whose href resolves
// through the catalog is rewritten to the local Markdown link target relative
// to the page's own output location; unresolvable hrefs are left untouched.
func PrepareAuxPage(name, html string, catalog *docdex.Catalog, fromRelPath string) (*AuxPage, error) {
	if strings.TrimSpace(html) == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "auxiliary page %q is empty", name)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "failed to parse auxiliary page %q: %v", name, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		title = name
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		// Absolute URLs stay external even when their file name collides
		// with a local page.
		if strings.Contains(href, "://") {
			return
		}
		resolved := catalog.ResolveLegacy(href, docdex.StageAuxiliary)
		if resolved == nil {
			return
		}
		sel.SetAttr("href", resolved.Href(fromRelPath))
	})

	// The parser normalizes fragments into a full document, so the body
	// always exists.
	body, err := doc.Find("body").Html()
	if err != nil {
		return nil, err
	}

	return &AuxPage{Name: name, Title: title, HTML: body}, nil
}
