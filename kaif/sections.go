// Package kaif crawls the industry association's bulletin board. Each
// accepted post's body is unstructured rendered text that embeds four
// categorized link lists; sections.go recovers them with a line-by-line
// state machine, crawl.go drives the listing and detail navigation.
package kaif

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/hjpark/nukewire/news"
)

// Anchor is one hyperlink element found inside a post body, in original
// extraction order. That order is load-bearing: bullet lines resolve to the
// first anchor whose text they contain.
type Anchor struct {
	Text string
	URL  string
}

// bulletMarker prefixes each list entry line inside the post body.
const bulletMarker = "·"

// section is the parser state. The machine starts in sectionNone and
// switches on header lines; entries seen before any header are dropped.
type section int

const (
	sectionNone section = iota
	sectionDomestic
	sectionInternational
	sectionEditorial
	sectionNuclearNews
)

// sectionHeaders maps header keyword sets to states, checked in this order
// by raw substring containment. A matching line is consumed and produces no
// entry.
var sectionHeaders = []struct {
	keywords []string
	state    section
}{
	{[]string{"국내기사", "국내 기사"}, sectionDomestic},
	{[]string{"세계기사", "세계 기사", "국제기사"}, sectionInternational},
	{[]string{"사설", "칼럼", "기고"}, sectionEditorial},
	{[]string{"원자력계 소식"}, sectionNuclearNews},
}

// ParseSections classifies the post body's bullet entries into the four
// fixed sections. bodyText is the rendered text of the body, line by line;
// anchors is the flat list of hyperlinks found in the same body, in
// extraction order. Bullet lines that resolve to no anchor, or to an anchor
// without an external http(s) destination, produce no entry and no fault.
// Duplicates are not suppressed.
func ParseSections(bodyText string, anchors []Anchor) news.SectionMap {
	sections := news.EmptySectionMap()
	state := sectionNone

	for _, line := range strings.Split(bodyText, "\n") {
		line = strings.TrimSpace(line)

		if next, isHeader := headerState(line); isHeader {
			state = next
			continue
		}

		if !strings.HasPrefix(line, bulletMarker) {
			continue
		}
		candidate := strings.TrimSpace(strings.TrimPrefix(line, bulletMarker))

		anchor, found := resolveAnchor(candidate, anchors)
		if !found || !isExternalURL(anchor.URL) {
			continue
		}

		entry := splitEntry(candidate, anchor.URL)
		switch state {
		case sectionDomestic:
			sections.Domestic = append(sections.Domestic, entry)
		case sectionInternational:
			sections.International = append(sections.International, entry)
		case sectionEditorial:
			sections.Editorial = append(sections.Editorial, entry)
		case sectionNuclearNews:
			sections.NuclearNews = append(sections.NuclearNews, entry)
		}
	}

	return sections
}

func headerState(line string) (section, bool) {
	for _, header := range sectionHeaders {
		for _, keyword := range header.keywords {
			if strings.Contains(line, keyword) {
				return header.state, true
			}
		}
	}
	return sectionNone, false
}

// resolveAnchor scans the anchors in original order and returns the first
// whose non-empty text is a substring of the candidate line. First match
// wins; this tie-break is behavior-determining, not an optimization.
func resolveAnchor(candidate string, anchors []Anchor) (Anchor, bool) {
	for _, anchor := range anchors {
		text := strings.TrimSpace(anchor.Text)
		if text != "" && strings.Contains(candidate, text) {
			return anchor, true
		}
	}
	return Anchor{}, false
}

func isExternalURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// splitEntry splits the candidate text at its last whitespace boundary. Two
// non-empty parts mean title plus outlet name; anything else keeps the whole
// text as the title.
func splitEntry(candidate, anchorURL string) news.SectionLink {
	idx := strings.LastIndexFunc(candidate, unicode.IsSpace)
	if idx > 0 {
		title := strings.TrimSpace(candidate[:idx])
		outlet := strings.TrimSpace(candidate[idx:])
		if title != "" && outlet != "" {
			return news.SectionLink{Title: title, Source: &outlet, URL: anchorURL}
		}
	}
	return news.SectionLink{Title: candidate, URL: anchorURL}
}
