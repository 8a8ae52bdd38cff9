package digest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjpark/nukewire/dates"
	"github.com/hjpark/nukewire/news"
)

func testTarget() dates.TargetDay {
	return dates.On(time.Date(2026, 1, 12, 0, 0, 0, 0, dates.KST))
}

func record(source news.Source, title, url string) news.Record {
	return news.Record{
		Title:  news.Str(title),
		URL:    news.Str(url),
		Date:   "2026.01.12 09:00",
		Source: source,
	}
}

func testPost(domestic, international int) news.BulletinPost {
	links := news.EmptySectionMap()
	for i := 0; i < domestic; i++ {
		links.Domestic = append(links.Domestic, news.SectionLink{
			Title: "국내", URL: "https://d/" + string(rune('a'+i)),
		})
	}
	for i := 0; i < international; i++ {
		links.International = append(links.International, news.SectionLink{
			Title: "세계", URL: "https://i/" + string(rune('a'+i)),
		})
	}
	links.Editorial = append(links.Editorial, news.SectionLink{Title: "사설란", URL: "https://e/1"})
	links.NuclearNews = append(links.NuclearNews, news.SectionLink{Title: "소식", URL: "https://n/1"})
	return news.BulletinPost{
		Title:     "일일 뉴스",
		Date:      "2026.01.12",
		NewsLinks: links,
	}
}

func TestBuildMergeOrderAndCounts(t *testing.T) {
	energy := []news.Record{
		record(news.SourceEnergyNews, "e1", "https://e/1"),
		record(news.SourceEnergyNews, "e2", "https://e/2"),
	}
	knp := []news.Record{
		record(news.SourceKNPNews, "k1", "https://k/1"),
	}
	posts := []news.BulletinPost{testPost(2, 1)}

	d := Build(testTarget(), energy, knp, posts)

	// Segments in exactly this order: energy, knp, domestic, international.
	require.Len(t, d.Records, 2+1+2+1)
	assert.Equal(t, "e1", *d.Records[0].Title)
	assert.Equal(t, "e2", *d.Records[1].Title)
	assert.Equal(t, "k1", *d.Records[2].Title)
	assert.Equal(t, news.SourceKAIF, d.Records[3].Source)
	assert.Equal(t, "국내", *d.Records[3].Title)
	assert.Equal(t, "국내", *d.Records[4].Title)
	assert.Equal(t, "세계", *d.Records[5].Title)

	assert.Equal(t, 6, d.TotalCount)
	assert.Equal(t, 2, d.Sources.EnergyNews)
	assert.Equal(t, 1, d.Sources.KNPNews)
	assert.Equal(t, 3, d.Sources.KAIF)
	assert.Equal(t, 1, d.PostsCount)
	assert.Equal(t, "2026.01.12", d.TargetDate)

	// Editorial and nuclear_news links never enter the merged sequence but
	// survive inside the retained post.
	for _, rec := range d.Records {
		require.NotNil(t, rec.URL)
		assert.NotEqual(t, "https://e/1x", *rec.URL)
	}
	assert.Len(t, d.Posts[0].NewsLinks.Editorial, 1)
	assert.Len(t, d.Posts[0].NewsLinks.NuclearNews, 1)
}

func TestBuildMultiplePostsGroupBySection(t *testing.T) {
	posts := []news.BulletinPost{testPost(1, 1), testPost(1, 1)}
	d := Build(testTarget(), nil, nil, posts)

	// All domestic links (both posts) come before any international link.
	require.Len(t, d.Records, 4)
	assert.Equal(t, "국내", *d.Records[0].Title)
	assert.Equal(t, "국내", *d.Records[1].Title)
	assert.Equal(t, "세계", *d.Records[2].Title)
	assert.Equal(t, "세계", *d.Records[3].Title)
}

func TestBuildDeterministic(t *testing.T) {
	energy := []news.Record{record(news.SourceEnergyNews, "e1", "https://e/1")}
	posts := []news.BulletinPost{testPost(1, 2)}

	first := Build(testTarget(), energy, nil, posts)
	second := Build(testTarget(), energy, nil, posts)
	assert.Equal(t, first, second)
}

func TestBuildEmptyInputs(t *testing.T) {
	d := Build(testTarget(), nil, nil, nil)
	assert.Equal(t, 0, d.TotalCount)
	assert.NotNil(t, d.Records)
	assert.NotNil(t, d.Posts)
	assert.Empty(t, d.Records)
}

func TestFilterRecords(t *testing.T) {
	records := []news.Record{
		{Date: "2026.01.12 09:01", Source: news.SourceEnergyNews},
		{Date: "2026.01.13", Source: news.SourceEnergyNews},
		{Date: "오늘 업데이트", Source: news.SourceKNPNews},
		{Date: "", Source: news.SourceKNPNews},
	}

	kept := FilterRecords(records, testTarget())
	require.Len(t, kept, 2)
	assert.Equal(t, "2026.01.12 09:01", kept[0].Date)
	assert.Equal(t, "오늘 업데이트", kept[1].Date)
}

func TestStoreSaveAndLoad(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "digests.db")
	store, err := NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	d := Build(testTarget(), []news.Record{record(news.SourceEnergyNews, "e1", "https://e/1")}, nil, nil)

	runID, err := store.Save(d)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, runID)

	stored, err := store.Load("2026.01.12")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Version)
	assert.Equal(t, runID, stored.RunID)
	assert.Equal(t, d, stored.Digest)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestStoreSaveReplacesSameDate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "digests.db")
	store, err := NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	first := Build(testTarget(), nil, nil, nil)
	_, err = store.Save(first)
	require.NoError(t, err)

	second := Build(testTarget(), []news.Record{record(news.SourceEnergyNews, "e1", "https://e/1")}, nil, nil)
	secondRun, err := store.Save(second)
	require.NoError(t, err)

	stored, err := store.Load("2026.01.12")
	require.NoError(t, err)
	assert.Equal(t, secondRun, stored.RunID)
	assert.Equal(t, 1, stored.Digest.TotalCount)
}

func TestStoreLoadMissingDate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "digests.db")
	store, err := NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load("1999.01.01")
	assert.ErrorIs(t, err, ErrDigestNotFound)
}
