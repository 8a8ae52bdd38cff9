package kaif

import (
	"log"
	"time"

	"github.com/hjpark/nukewire/dates"
	"github.com/hjpark/nukewire/news"
	"github.com/hjpark/nukewire/render"
)

// Config holds the bulletin crawl parameters.
type Config struct {
	URL string
	// DetailSettle is the post-navigation wait on detail pages; the board
	// renders them faster than the listing.
	DetailSettle time.Duration
}

// DefaultConfig returns the production bulletin configuration.
func DefaultConfig(url string) Config {
	return Config{URL: url, DetailSettle: 3 * time.Second}
}

// Listing row locator candidates; a candidate is accepted only when it
// yields more than three rows, which filters out layout tables.
var rowCandidates = []string{
	"table tbody tr",
	"div.board-list table tr",
	"table.board-list tr",
	".list-item",
	"div.list tbody tr",
}

// Crawl fetches the bulletin listing, keeps the rows whose date cell denotes
// the target day, and parses each accepted row's detail page. Rows are
// processed strictly one after another. A listing-level failure yields an
// empty result; a row-level failure drops that row only.
func Crawl(session *render.Session, cfg Config, target dates.TargetDay) []news.BulletinPost {
	posts := []news.BulletinPost{}

	page, err := session.Fetch(cfg.URL)
	if err != nil {
		log.Printf("kaif: fetch failed: %v", err)
		return posts
	}

	rows := page.SelectList(3, rowCandidates...)
	if rows == nil {
		log.Printf("kaif: board locator not found at %s", cfg.URL)
		return posts
	}

	for _, row := range rows {
		dateText, title, postURL, ok := acceptRow(row, target)
		if !ok {
			continue
		}
		log.Printf("kaif: target-day post found: %s (%s)", title, dateText)

		// Once a row passes the date gate its detail page is always fetched;
		// no secondary date check applies.
		detail, err := session.FetchWithSettle(postURL, cfg.DetailSettle)
		if err != nil {
			log.Printf("kaif: detail fetch failed for %s: %v", postURL, err)
			continue
		}

		posts = append(posts, parseDetail(detail, title, dateText, postURL))
	}

	log.Printf("kaif: collected %d posts", len(posts))
	return posts
}

// acceptRow applies the listing date gate and extracts the row's title and
// detail URL. Rows without a date cell, a non-matching date, or no usable
// title link are skipped silently.
func acceptRow(row render.Item, target dates.TargetDay) (dateText, title, postURL string, ok bool) {
	dateCell := row.Find("td.col-date, td.date, .date, td:last-child")
	if dateCell == nil {
		return "", "", "", false
	}
	dateVal := dateCell.Text()
	if dateVal == nil || !target.MatchesListing(*dateVal) {
		return "", "", "", false
	}

	titleLink := row.Find("td.subject a, .title a, td a")
	if titleLink == nil {
		return "", "", "", false
	}
	href := titleLink.Attr("href")
	if href == nil {
		return "", "", "", false
	}
	if text := titleLink.Text(); text != nil {
		title = *text
	}

	return *dateVal, title, *href, true
}

// parseDetail extracts the post's detail fields. Every field is independent
// and fail-soft; a missing body degrades the section map to all-empty
// without dropping the post.
func parseDetail(page *render.Page, listTitle, dateText, postURL string) news.BulletinPost {
	root := page.Root()
	post := news.BulletinPost{
		Title:       listTitle,
		DetailTitle: listTitle,
		Date:        dateText,
		ListURL:     postURL,
		NewsLinks:   news.EmptySectionMap(),
		Attachments: []news.Attachment{},
	}

	if detailTitle := root.Find("h3.bbs-view-tit", "h1", ".view-title", ".subject"); detailTitle != nil {
		if text := detailTitle.Text(); text != nil {
			post.DetailTitle = *text
		}
	}

	body := root.Find("#bbsContents", ".bbs-view-content", ".view-content", ".content")
	if body != nil {
		text := body.RenderedText()
		if text != "" {
			post.Content = &text
		}
		post.NewsLinks = ParseSections(text, bodyAnchors(body))
	} else {
		log.Printf("kaif: post body not found at %s, sections degraded to empty", postURL)
	}

	for _, attach := range root.All(".attach a, .file a, .attachment a") {
		var attachment news.Attachment
		if text := attach.Text(); text != nil {
			attachment.Filename = *text
		}
		if href := attach.Attr("href"); href != nil {
			attachment.URL = *href
		}
		post.Attachments = append(post.Attachments, attachment)
	}

	if author := root.Find(".author", ".writer", ".name"); author != nil {
		post.Author = author.Text()
	}
	if views := root.Find(".views", ".hit", ".count"); views != nil {
		post.Views = views.Text()
	}

	return post
}

// bodyAnchors flattens the body's hyperlinks in document order, the order
// the section parser's tie-break depends on.
func bodyAnchors(body *render.Item) []Anchor {
	var anchors []Anchor
	for _, link := range body.All("a") {
		anchor := Anchor{}
		if text := link.Text(); text != nil {
			anchor.Text = *text
		}
		if href := link.Attr("href"); href != nil {
			anchor.URL = *href
		}
		anchors = append(anchors, anchor)
	}
	return anchors
}
