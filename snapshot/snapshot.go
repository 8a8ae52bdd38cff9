// Package snapshot writes the pipeline's JSON artifacts. Every artifact is
// written unconditionally, even when its contents are empty, so downstream
// consumers never have to treat a missing file as a distinct failure mode
// from zero records.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hjpark/nukewire/dates"
	"github.com/hjpark/nukewire/news"
	"github.com/hjpark/nukewire/slack"
)

const timeLayout = "2006-01-02 15:04:05"

// Writer writes artifacts into one output directory.
type Writer struct {
	dir string
}

// NewWriter creates the output directory if needed (0700: owner-only
// access).
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// listingSnapshot is the per-listing-source artifact.
type listingSnapshot struct {
	Source     news.Source   `json:"source"`
	URL        string        `json:"url"`
	TotalCount int           `json:"total_count"`
	NewsList   []news.Record `json:"news_list"`
}

// WriteListing writes one listing source's snapshot
// ({source}_data.json).
func (w *Writer) WriteListing(source news.Source, url string, records []news.Record) error {
	if records == nil {
		records = []news.Record{}
	}
	return w.write(string(source)+"_data.json", listingSnapshot{
		Source:     source,
		URL:        url,
		TotalCount: len(records),
		NewsList:   records,
	})
}

// bulletinSnapshot is the bulletin source artifact.
type bulletinSnapshot struct {
	Source     news.Source         `json:"source"`
	URL        string              `json:"url"`
	CrawledAt  string              `json:"crawled_at"`
	TargetDate string              `json:"target_date"`
	TotalCount int                 `json:"total_count"`
	Posts      []news.BulletinPost `json:"posts"`
}

// WriteBulletin writes the bulletin snapshot (kaif_data.json).
func (w *Writer) WriteBulletin(url string, crawledAt time.Time, target dates.TargetDay, posts []news.BulletinPost) error {
	if posts == nil {
		posts = []news.BulletinPost{}
	}
	return w.write("kaif_data.json", bulletinSnapshot{
		Source:     news.SourceKAIF,
		URL:        url,
		CrawledAt:  crawledAt.In(dates.KST).Format(timeLayout),
		TargetDate: target.Time().Format("2006-01-02"),
		TotalCount: len(posts),
		Posts:      posts,
	})
}

// combinedSnapshot is the whole-run artifact, written before filtering.
type combinedSnapshot struct {
	CrawledAt  string              `json:"crawled_at"`
	TotalCount int                 `json:"total_count"`
	PostsCount int                 `json:"kaif_posts_count"`
	Sources    news.SourceCounts   `json:"sources"`
	NewsList   []news.Record       `json:"news_list"`
	KAIFPosts  []news.BulletinPost `json:"kaif_posts"`
}

// WriteCombined writes the combined run snapshot (all_news_data.json) from
// the unfiltered per-source collections.
func (w *Writer) WriteCombined(crawledAt time.Time, energy, knp []news.Record, posts []news.BulletinPost) error {
	merged := make([]news.Record, 0, len(energy)+len(knp))
	merged = append(merged, energy...)
	merged = append(merged, knp...)
	if posts == nil {
		posts = []news.BulletinPost{}
	}
	return w.write("all_news_data.json", combinedSnapshot{
		CrawledAt:  crawledAt.In(dates.KST).Format(timeLayout),
		TotalCount: len(merged),
		PostsCount: len(posts),
		Sources: news.SourceCounts{
			EnergyNews: len(energy),
			KNPNews:    len(knp),
			KAIF:       len(posts),
		},
		NewsList:  merged,
		KAIFPosts: posts,
	})
}

// WriteDaily writes the filtered daily digest snapshot, keyed by date
// (yesterday_news_YYYYMMDD.json).
func (w *Writer) WriteDaily(d news.Digest, target dates.TargetDay) error {
	return w.write(fmt.Sprintf("yesterday_news_%s.json", target.Compact()), d)
}

// WritePreview writes the delivery preview (slack_message_preview.json).
// It is written before any delivery attempt and is unaffected by delivery
// failures.
func (w *Writer) WritePreview(blocks []slack.Block) error {
	if blocks == nil {
		blocks = []slack.Block{}
	}
	return w.write("slack_message_preview.json", slack.Message{Blocks: blocks})
}

// Path returns the absolute path of an artifact by filename.
func (w *Writer) Path(filename string) string {
	return filepath.Join(w.dir, filename)
}

func (w *Writer) write(filename string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}
	if err := os.WriteFile(w.Path(filename), data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
