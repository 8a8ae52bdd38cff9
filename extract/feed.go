package extract

import (
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/hjpark/nukewire/news"
)

// FetchFeedRecords fetches an RSS or Atom feed and maps its items to lenient
// energy_news records. The published timestamp is kept as the raw string the
// feed carried, so the date filter sees the same kind of input as with
// scraped records.
func FetchFeedRecords(url string) ([]news.Record, error) {
	fp := gofeed.NewParser()
	feed, err := fp.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	records := make([]news.Record, 0, len(feed.Items))
	for _, item := range feed.Items {
		records = append(records, feedItemRecord(item))
	}
	return records, nil
}

func feedItemRecord(item *gofeed.Item) news.Record {
	rec := news.Record{Source: news.SourceEnergyNews}

	if item.Title != "" {
		rec.Title = news.Str(item.Title)
	}
	if item.Link != "" {
		rec.URL = news.Str(item.Link)
	}
	if item.Description != "" {
		rec.Preview = news.Str(item.Description)
	}
	if item.PublishedParsed != nil {
		// Normalize to the dotted rendering the sites use, so the target-day
		// filter applies unchanged.
		rec.Date = item.PublishedParsed.Format("2006.01.02 15:04")
	} else {
		rec.Date = item.Published
	}
	if len(item.Authors) > 0 && item.Authors[0].Name != "" {
		rec.Reporter = news.Str(item.Authors[0].Name)
	}

	return rec
}
