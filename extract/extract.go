// Package extract turns rendered listing items into news records, one
// extractor per source variant. Every field is extracted independently
// through an ordered candidate chain; a field that resolves nothing is nil
// and never aborts the record.
package extract

import (
	"log"

	"github.com/hjpark/nukewire/news"
	"github.com/hjpark/nukewire/render"
)

// EnergyNewsRecord extracts one record from an energy_news listing item.
// This is the lenient variant: the item is kept even when title and URL are
// both absent.
func EnergyNewsRecord(item render.Item) news.Record {
	rec := news.Record{Source: news.SourceEnergyNews}

	if img := item.Find("a.thumb img", "img"); img != nil {
		rec.Thumbnail = img.Attr("src")
	}

	if title := item.Find("h2.titles a"); title != nil {
		rec.Title = title.Text()
		rec.URL = title.Attr("href")
	}

	if lead := item.Find("p.lead a"); lead != nil {
		rec.Preview = lead.Text()
	}

	rec.Category, rec.Reporter, rec.Date = bylineFields(item, "span.byline")
	return rec
}

// KNPNewsRecord extracts one record from a knpnews listing item. This is the
// strict variant: ok is false unless both title and URL resolved, and the
// caller must drop the item. The title chain falls back to the item's bare
// anchor when none of the heading selectors match.
func KNPNewsRecord(item render.Item) (rec news.Record, ok bool) {
	rec = news.Record{Source: news.SourceKNPNews}

	if img := item.Find("img"); img != nil {
		rec.Thumbnail = img.Attr("src")
	}

	if title := item.Find("h2 a, h3 a, .titles a, strong a", "a"); title != nil {
		rec.Title = title.Text()
		rec.URL = title.Attr("href")
	}

	if lead := item.Find("p.lead, .description, .summary"); lead != nil {
		rec.Preview = lead.Text()
	}

	rec.Category, rec.Reporter, rec.Date = bylineFields(item, "span.byline, .info, .meta")

	return rec, rec.Title != nil && rec.URL != nil
}

func bylineFields(item render.Item, candidates ...string) (category, reporter *string, date string) {
	cat, rep, d := bylineOf(item, candidates...)
	if d != nil {
		date = *d
	}
	return cat, rep, date
}

// CrawlEnergyNews fetches the energy_news listing and extracts every item.
// A fetch failure or an absent listing locator aborts this source only: the
// result is empty and the run continues. When the listing yields nothing and
// rssURL is configured, the RSS feed is tried as a fallback.
func CrawlEnergyNews(session *render.Session, url, rssURL string) []news.Record {
	records := []news.Record{}

	page, err := session.Fetch(url)
	if err != nil {
		log.Printf("energy_news: fetch failed: %v", err)
		return crawlEnergyNewsFeed(records, rssURL)
	}

	items := page.SelectList(0, "#section-list ul.type2 li")
	if items == nil {
		log.Printf("energy_news: listing locator not found at %s", url)
		return crawlEnergyNewsFeed(records, rssURL)
	}

	for _, item := range items {
		records = append(records, EnergyNewsRecord(item))
	}

	log.Printf("energy_news: extracted %d records", len(records))
	if len(records) == 0 {
		return crawlEnergyNewsFeed(records, rssURL)
	}
	return records
}

// crawlEnergyNewsFeed falls back to the source's RSS feed when the rendered
// listing produced nothing. Disabled unless a feed URL is configured.
func crawlEnergyNewsFeed(records []news.Record, rssURL string) []news.Record {
	if rssURL == "" || len(records) > 0 {
		return records
	}
	feedRecords, err := FetchFeedRecords(rssURL)
	if err != nil {
		log.Printf("energy_news: RSS fallback failed: %v", err)
		return records
	}
	log.Printf("energy_news: RSS fallback yielded %d records", len(feedRecords))
	return append(records, feedRecords...)
}

// knpListingCandidates are tried in order; a candidate is accepted only when
// it yields more than five items, which filters out navigation lists that
// happen to match the looser selectors.
var knpListingCandidates = []string{
	"#section-list ul li",
	"#section-list .type2 li",
	"section.section-list ul li",
	"div.article-list li",
	"ul.article-list li",
	".news-list li",
}

// CrawlKNPNews fetches the knpnews listing and extracts every item that
// passes the strict inclusion policy.
func CrawlKNPNews(session *render.Session, url string) []news.Record {
	records := []news.Record{}

	page, err := session.Fetch(url)
	if err != nil {
		log.Printf("knpnews: fetch failed: %v", err)
		return records
	}

	items := page.SelectList(5, knpListingCandidates...)
	if items == nil {
		log.Printf("knpnews: listing locator not found at %s", url)
		return records
	}

	for _, item := range items {
		if rec, ok := KNPNewsRecord(item); ok {
			records = append(records, rec)
		}
	}

	log.Printf("knpnews: extracted %d records", len(records))
	return records
}
