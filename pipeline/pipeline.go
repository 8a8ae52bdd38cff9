// Package pipeline drives one batch run: crawl every source in fixed order,
// filter to the target day, build and persist the digest, then format and
// deliver it. Sources are processed strictly one after another; a failing
// source contributes an empty collection and never blocks the others.
package pipeline

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/hjpark/nukewire/config"
	"github.com/hjpark/nukewire/dates"
	"github.com/hjpark/nukewire/digest"
	"github.com/hjpark/nukewire/extract"
	"github.com/hjpark/nukewire/kaif"
	"github.com/hjpark/nukewire/news"
	"github.com/hjpark/nukewire/render"
	"github.com/hjpark/nukewire/slack"
	"github.com/hjpark/nukewire/snapshot"
)

// CrawlResult holds the unfiltered per-source collections of one crawl.
type CrawlResult struct {
	Energy []news.Record
	KNP    []news.Record
	Posts  []news.BulletinPost
}

// Report summarizes one completed run.
type Report struct {
	Digest    news.Digest
	RunID     uuid.UUID
	Delivered bool
}

// Crawl fetches all three sources in fixed order. The render session and
// its profile directory live exactly as long as the crawl.
func Crawl(cfg *config.Config, target dates.TargetDay) (*CrawlResult, error) {
	session, err := render.NewSession(render.WithSettle(cfg.Settle()))
	if err != nil {
		return nil, fmt.Errorf("failed to create render session: %w", err)
	}
	defer session.Close()

	log.Printf("crawl starting, target day %s", target.Dotted())

	result := &CrawlResult{}
	result.Energy = extract.CrawlEnergyNews(session, cfg.Sources.EnergyNews.URL, cfg.Sources.EnergyNews.RSSURL)
	result.KNP = extract.CrawlKNPNews(session, cfg.Sources.KNPNews.URL)
	result.Posts = kaif.Crawl(session, kaif.Config{
		URL:          cfg.Sources.KAIF.URL,
		DetailSettle: cfg.DetailSettle(),
	}, target)

	return result, nil
}

// Run executes the whole pipeline once. Snapshot artifacts are written
// unconditionally, even when every source came back empty; a delivery
// failure is logged and does not fail the run.
func Run(cfg *config.Config, now time.Time) (*Report, error) {
	target := dates.Yesterday(now)

	result, err := Crawl(cfg, target)
	if err != nil {
		return nil, err
	}

	writer, err := snapshot.NewWriter(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	writeOrLog := func(name string, err error) {
		if err != nil {
			log.Printf("failed to write %s snapshot: %v", name, err)
		}
	}
	writeOrLog("energy_news", writer.WriteListing(news.SourceEnergyNews, cfg.Sources.EnergyNews.URL, result.Energy))
	writeOrLog("knpnews", writer.WriteListing(news.SourceKNPNews, cfg.Sources.KNPNews.URL, result.KNP))
	writeOrLog("kaif", writer.WriteBulletin(cfg.Sources.KAIF.URL, now, target, result.Posts))
	writeOrLog("combined", writer.WriteCombined(now, result.Energy, result.KNP, result.Posts))

	d := digest.Build(target,
		digest.FilterRecords(result.Energy, target),
		digest.FilterRecords(result.KNP, target),
		result.Posts,
	)
	writeOrLog("daily", writer.WriteDaily(d, target))

	store, err := digest.NewStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	runID, err := store.Save(d)
	if err != nil {
		return nil, err
	}
	log.Printf("digest for %s saved, run %s: %d records, %d posts",
		d.TargetDate, runID, d.TotalCount, d.PostsCount)

	delivered := deliver(cfg, writer, d, now)

	return &Report{Digest: d, RunID: runID, Delivered: delivered}, nil
}

// Send re-delivers the stored digest for the target day without crawling.
func Send(cfg *config.Config, now time.Time) error {
	target := dates.Yesterday(now)

	store, err := digest.NewStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	stored, err := store.Load(target.Dotted())
	if err != nil {
		return fmt.Errorf("failed to load digest for %s: %w", target.Dotted(), err)
	}

	writer, err := snapshot.NewWriter(cfg.OutputDir)
	if err != nil {
		return err
	}

	deliver(cfg, writer, stored.Digest, now)
	return nil
}

// deliver formats the digest, writes the preview artifact, then posts to
// the webhook when one is configured. The preview is written before any
// delivery attempt and is unaffected by its outcome.
func deliver(cfg *config.Config, writer *snapshot.Writer, d news.Digest, now time.Time) bool {
	blocks := slack.FormatDigest(d, now)

	if err := writer.WritePreview(blocks); err != nil {
		log.Printf("failed to write preview snapshot: %v", err)
	}

	if cfg.SlackWebhookURL == "" {
		log.Printf("no webhook URL configured, skipping delivery")
		return false
	}

	if err := slack.NewClient().Send(cfg.SlackWebhookURL, blocks); err != nil {
		log.Printf("delivery failed: %v", err)
		return false
	}

	log.Printf("digest delivered: %d blocks", len(blocks))
	return true
}
