// Package slack renders a digest into Block Kit blocks and delivers them to
// an incoming webhook.
package slack

import (
	"fmt"
	"time"

	"github.com/hjpark/nukewire/dates"
	"github.com/hjpark/nukewire/news"
)

// Text is one Block Kit text object.
type Text struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// Block is one Block Kit layout block. Only the fields the digest uses are
// modeled.
type Block struct {
	Type     string `json:"type"`
	Text     *Text  `json:"text,omitempty"`
	Elements []Text `json:"elements,omitempty"`
}

// Message is the webhook payload: an ordered block sequence.
type Message struct {
	Blocks []Block `json:"blocks"`
}

func headerBlock(text string) Block {
	return Block{Type: "header", Text: &Text{Type: "plain_text", Text: text, Emoji: true}}
}

func dividerBlock() Block {
	return Block{Type: "divider"}
}

func sectionBlock(markdown string) Block {
	return Block{Type: "section", Text: &Text{Type: "mrkdwn", Text: markdown}}
}

func contextBlock(markdown string) Block {
	return Block{Type: "context", Elements: []Text{{Type: "mrkdwn", Text: markdown}}}
}

// FormatDigest renders the digest into its delivery blocks: a dated header,
// a count summary, one section per record, and a trailing context line with
// the generation timestamp. No pagination or truncation is applied however
// many records there are, even though the webhook API caps the block count;
// that mirrors the known limitation of the reference pipeline.
func FormatDigest(d news.Digest, now time.Time) []Block {
	blocks := []Block{
		headerBlock(fmt.Sprintf("📰 원자력 뉴스 브리핑 - %s", headerDate(d.TargetDate))),
		dividerBlock(),
	}

	if len(d.Records) > 0 {
		blocks = append(blocks, sectionBlock(fmt.Sprintf("*📌 어제의 뉴스* (%d건)", len(d.Records))))
		for i, rec := range d.Records {
			title, url := "", ""
			if rec.Title != nil {
				title = *rec.Title
			}
			if rec.URL != nil {
				url = *rec.URL
			}
			blocks = append(blocks, sectionBlock(fmt.Sprintf("%d. <%s|%s>", i+1, url, title)))
		}
	}

	blocks = append(blocks, dividerBlock())
	blocks = append(blocks, contextBlock(fmt.Sprintf(
		"총 %d건의 뉴스 | 수집 시간: %s (KST)",
		len(d.Records),
		now.In(dates.KST).Format("2006-01-02 15:04:05"),
	)))

	return blocks
}

// headerDate renders the digest's dotted target date in the long Korean
// form. An unparseable date falls back to the raw string.
func headerDate(dotted string) string {
	day, err := time.ParseInLocation("2006.01.02", dotted, dates.KST)
	if err != nil {
		return dotted
	}
	return dates.On(day).Korean()
}
