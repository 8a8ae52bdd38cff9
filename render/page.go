package render

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is one rendered document.
type Page struct {
	doc *goquery.Document
	URL string
}

// NewPageFromDocument wraps an already-parsed document. Tests build pages
// from fixture HTML this way.
func NewPageFromDocument(doc *goquery.Document, url string) *Page {
	return &Page{doc: doc, URL: url}
}

// Root returns the document root as an Item.
func (p *Page) Root() Item {
	return Item{sel: p.doc.Selection}
}

// SelectList tries each candidate selector in order and returns the items of
// the first candidate that yields more than min matches. Returns nil when no
// candidate does; the caller decides whether that is a fetch failure.
func (p *Page) SelectList(min int, candidates ...string) []Item {
	for _, selector := range candidates {
		sel := p.doc.Find(selector)
		if sel.Length() > min {
			return wrapAll(sel)
		}
	}
	return nil
}

// Item is one opaque element handle. All lookups are first-match over an
// ordered candidate list, resolve only to non-empty trimmed values, never
// fault, and never mutate the page.
type Item struct {
	sel *goquery.Selection
}

// NewItem wraps a selection, for tests.
func NewItem(sel *goquery.Selection) Item {
	return Item{sel: sel}
}

// Find returns the first element matched by the first candidate selector
// that matches anything, or nil when none do.
func (it Item) Find(candidates ...string) *Item {
	for _, selector := range candidates {
		sel := it.sel.Find(selector)
		if sel.Length() > 0 {
			found := Item{sel: sel.First()}
			return &found
		}
	}
	return nil
}

// All returns every element matched by selector, in document order.
func (it Item) All(selector string) []Item {
	return wrapAll(it.sel.Find(selector))
}

// Text returns the element's trimmed text, or nil when it is empty.
func (it Item) Text() *string {
	text := strings.TrimSpace(it.sel.Text())
	if text == "" {
		return nil
	}
	return &text
}

// Attr returns the named attribute's trimmed value, or nil when absent or
// empty.
func (it Item) Attr(name string) *string {
	val, ok := it.sel.Attr(name)
	if !ok {
		return nil
	}
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	return &val
}

// Package-level compiled regexes; RenderedText runs once per bulletin post
// but the tag set is fixed.
var (
	reBlockBreak = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|div|li|tr|h[1-6]|table|ul|ol)>`)
	reAnyTag     = regexp.MustCompile(`<[^>]*>`)
)

// RenderedText approximates the browser-visible text of the element: block
// element boundaries and <br> become newlines, all other markup is dropped,
// entities are unescaped. The bulletin section parser consumes this line by
// line.
func (it Item) RenderedText() string {
	raw, err := goquery.OuterHtml(it.sel)
	if err != nil {
		return strings.TrimSpace(it.sel.Text())
	}

	raw = reBlockBreak.ReplaceAllString(raw, "\n")
	raw = reAnyTag.ReplaceAllString(raw, "")
	raw = html.UnescapeString(raw)

	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func wrapAll(sel *goquery.Selection) []Item {
	items := make([]Item, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		items = append(items, Item{sel: s})
	})
	return items
}
