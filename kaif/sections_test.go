package kaif

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjpark/nukewire/news"
)

func TestParseSectionsTwoSections(t *testing.T) {
	body := strings.Join([]string{
		"국내기사",
		"· 원전 가동률 상승 연합뉴스",
		"세계기사",
		"· IAEA 보고서 발표 로이터",
	}, "\n")
	anchors := []Anchor{
		{Text: "원전 가동률 상승", URL: "https://a/1"},
		{Text: "IAEA 보고서 발표", URL: "https://b/2"},
	}

	sections := ParseSections(body, anchors)

	require.Len(t, sections.Domestic, 1)
	assert.Equal(t, "원전 가동률 상승", sections.Domestic[0].Title)
	require.NotNil(t, sections.Domestic[0].Source)
	assert.Equal(t, "연합뉴스", *sections.Domestic[0].Source)
	assert.Equal(t, "https://a/1", sections.Domestic[0].URL)

	require.Len(t, sections.International, 1)
	assert.Equal(t, "IAEA 보고서 발표", sections.International[0].Title)
	require.NotNil(t, sections.International[0].Source)
	assert.Equal(t, "로이터", *sections.International[0].Source)
	assert.Equal(t, "https://b/2", sections.International[0].URL)

	assert.Empty(t, sections.Editorial)
	assert.Empty(t, sections.NuclearNews)
}

func TestParseSectionsHeaderVariants(t *testing.T) {
	body := strings.Join([]string{
		"[ 국내 기사 ]",
		"· 첫번째 기사 매일경제",
		"국제기사 모음",
		"· 두번째 기사 Reuters",
		"오늘의 사설",
		"· 세번째 논평 한겨레",
		"원자력계 소식",
		"· 행사 안내 원자력신문",
	}, "\n")
	anchors := []Anchor{
		{Text: "첫번째 기사", URL: "https://a/1"},
		{Text: "두번째 기사", URL: "https://a/2"},
		{Text: "세번째 논평", URL: "https://a/3"},
		{Text: "행사 안내", URL: "https://a/4"},
	}

	sections := ParseSections(body, anchors)
	assert.Len(t, sections.Domestic, 1)
	assert.Len(t, sections.International, 1)
	assert.Len(t, sections.Editorial, 1)
	assert.Len(t, sections.NuclearNews, 1)
}

func TestParseSectionsEntryBeforeAnyHeaderDropped(t *testing.T) {
	body := strings.Join([]string{
		"· 헤더 이전 기사 연합뉴스",
		"국내기사",
		"· 헤더 이후 기사 연합뉴스",
	}, "\n")
	anchors := []Anchor{
		{Text: "헤더 이전 기사", URL: "https://a/0"},
		{Text: "헤더 이후 기사", URL: "https://a/1"},
	}

	sections := ParseSections(body, anchors)
	require.Len(t, sections.Domestic, 1)
	assert.Equal(t, "https://a/1", sections.Domestic[0].URL)
	assert.Empty(t, sections.International)
}

func TestParseSectionsNoMatchingAnchor(t *testing.T) {
	body := "국내기사\n· 링크 없는 기사 연합뉴스"

	sections := ParseSections(body, []Anchor{{Text: "다른 기사", URL: "https://a/1"}})
	assert.Empty(t, sections.Domestic)
}

func TestParseSectionsFirstAnchorWins(t *testing.T) {
	// Both anchors' texts are substrings of the bullet line; the first in
	// extraction order wins even though the second is the longer match.
	body := "국내기사\n· 원전 수출 계약 체결 연합뉴스"
	anchors := []Anchor{
		{Text: "원전 수출", URL: "https://first/1"},
		{Text: "원전 수출 계약 체결", URL: "https://second/2"},
	}

	sections := ParseSections(body, anchors)
	require.Len(t, sections.Domestic, 1)
	assert.Equal(t, "https://first/1", sections.Domestic[0].URL)
}

func TestParseSectionsNonExternalAnchorProducesNoEntry(t *testing.T) {
	body := "국내기사\n· 내부 공지 사무국"
	anchors := []Anchor{
		{Text: "내부 공지", URL: "/ko/board/view?id=1"},
	}

	sections := ParseSections(body, anchors)
	assert.Empty(t, sections.Domestic)
}

func TestParseSectionsEmptyAnchorTextIgnored(t *testing.T) {
	body := "국내기사\n· 기사 제목 연합뉴스"
	anchors := []Anchor{
		{Text: "  ", URL: "https://blank/0"},
		{Text: "기사 제목", URL: "https://a/1"},
	}

	sections := ParseSections(body, anchors)
	require.Len(t, sections.Domestic, 1)
	assert.Equal(t, "https://a/1", sections.Domestic[0].URL)
}

func TestParseSectionsSingleWordBulletHasNilSource(t *testing.T) {
	body := "국내기사\n· 단독기사"
	anchors := []Anchor{{Text: "단독기사", URL: "https://a/1"}}

	sections := ParseSections(body, anchors)
	require.Len(t, sections.Domestic, 1)
	assert.Equal(t, "단독기사", sections.Domestic[0].Title)
	assert.Nil(t, sections.Domestic[0].Source)
}

func TestParseSectionsDuplicatesNotSuppressed(t *testing.T) {
	body := strings.Join([]string{
		"국내기사",
		"· 같은 기사 연합뉴스",
		"· 같은 기사 연합뉴스",
	}, "\n")
	anchors := []Anchor{{Text: "같은 기사", URL: "https://a/1"}}

	sections := ParseSections(body, anchors)
	assert.Len(t, sections.Domestic, 2)
}

func TestParseSectionsEmptyInput(t *testing.T) {
	sections := ParseSections("", nil)
	assert.Equal(t, news.EmptySectionMap(), sections)

	// All four keys survive JSON round-trips as [] rather than null.
	assert.NotNil(t, sections.Domestic)
	assert.NotNil(t, sections.International)
	assert.NotNil(t, sections.Editorial)
	assert.NotNil(t, sections.NuclearNews)
}

func TestParseSectionsIgnoresPlainLines(t *testing.T) {
	body := strings.Join([]string{
		"2026년 1월 12일 일일 뉴스",
		"국내기사",
		"안내 문구입니다",
		"· 기사 제목 연합뉴스",
	}, "\n")
	anchors := []Anchor{{Text: "기사 제목", URL: "https://a/1"}}

	sections := ParseSections(body, anchors)
	assert.Len(t, sections.Domestic, 1)
}
