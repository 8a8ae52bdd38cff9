package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reference clock: 2026-01-13 in KST, so the target day is 2026-01-12.
func referenceNow() time.Time {
	return time.Date(2026, 1, 13, 9, 30, 0, 0, KST)
}

func TestYesterdayComputesInKST(t *testing.T) {
	// 2026-01-13 00:30 KST is still 2026-01-12 in UTC; yesterday must be
	// computed from the KST calendar day, not the UTC one.
	now := time.Date(2026, 1, 12, 15, 30, 0, 0, time.UTC)
	target := Yesterday(now)
	require.Equal(t, "2026.01.12", target.Dotted())
}

func TestMatchesRecord(t *testing.T) {
	target := Yesterday(referenceNow())

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"dotted with time", "2026.01.12 09:01", true},
		{"dashed with suffix", "2026-01-12 보도", true},
		{"dotted exact", "2026.01.12", true},
		{"wrong day", "2026.01.13", false},
		{"today korean token", "오늘 업데이트", true},
		{"today english mixed case", "Posted Today", true},
		{"empty", "", false},
		{"unrelated text", "지난주 기사", false},
		{"embedded dashed", "기사 2026-01-12", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, target.MatchesRecord(tt.raw))
		})
	}
}

func TestMatchesListingAcceptsMonthDay(t *testing.T) {
	target := Yesterday(referenceNow())

	assert.True(t, target.MatchesListing("01.12"))
	assert.True(t, target.MatchesListing("2026.01.12"))
	assert.False(t, target.MatchesListing("01.13"))

	// The MM.DD form is listing-only; record matching must not accept it.
	assert.False(t, target.MatchesRecord("01.12"))
}

func TestRenderings(t *testing.T) {
	target := On(time.Date(2026, 1, 12, 0, 0, 0, 0, KST))

	assert.Equal(t, "2026.01.12", target.Dotted())
	assert.Equal(t, "20260112", target.Compact())
	assert.Equal(t, "2026년 01월 12일 (Monday)", target.Korean())
}
