// Package digest merges per-source filtered collections into one ordered,
// counted digest and persists it as a versioned record keyed by date.
package digest

import (
	"github.com/hjpark/nukewire/dates"
	"github.com/hjpark/nukewire/news"
)

// Build merges already-filtered per-source collections into one Digest. The
// merge order is fixed: energy_news records, knpnews records, then the
// bulletin posts' domestic links, then their international links. The
// editorial and nuclear_news sections stay inside the retained posts but are
// deliberately excluded from the merged record sequence. Nothing is
// deduplicated; identical inputs always produce an identical digest.
func Build(target dates.TargetDay, energy, knp []news.Record, posts []news.BulletinPost) news.Digest {
	records := make([]news.Record, 0, len(energy)+len(knp))
	records = append(records, energy...)
	records = append(records, knp...)

	kaifSegment := 0
	for _, post := range posts {
		for _, link := range post.NewsLinks.Domestic {
			records = append(records, linkRecord(link, post.Date))
			kaifSegment++
		}
	}
	for _, post := range posts {
		for _, link := range post.NewsLinks.International {
			records = append(records, linkRecord(link, post.Date))
			kaifSegment++
		}
	}

	if posts == nil {
		posts = []news.BulletinPost{}
	}

	return news.Digest{
		TargetDate: target.Dotted(),
		TotalCount: len(records),
		PostsCount: len(posts),
		Sources: news.SourceCounts{
			EnergyNews: len(energy),
			KNPNews:    len(knp),
			KAIF:       kaifSegment,
		},
		Records: records,
		Posts:   posts,
	}
}

// linkRecord converts one bulletin section link into a record. The post's
// raw date stands in for the link's own, which the board never renders.
func linkRecord(link news.SectionLink, postDate string) news.Record {
	rec := news.Record{
		Source: news.SourceKAIF,
		Date:   postDate,
	}
	if link.Title != "" {
		rec.Title = news.Str(link.Title)
	}
	if link.URL != "" {
		rec.URL = news.Str(link.URL)
	}
	return rec
}

// FilterRecords keeps the records whose raw date denotes the target day.
// Order is preserved.
func FilterRecords(records []news.Record, target dates.TargetDay) []news.Record {
	kept := []news.Record{}
	for _, rec := range records {
		if target.MatchesRecord(rec.Date) {
			kept = append(kept, rec)
		}
	}
	return kept
}
