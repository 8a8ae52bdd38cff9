// Package dates centralizes the pipeline's timezone arithmetic. The target
// day is computed once per run from an injected reference clock, in the
// fixed Korean offset, and every date comparison goes through the resulting
// TargetDay value.
package dates

import (
	"strings"
	"time"
)

// KST is the fixed UTC+9 offset used by every source in the pipeline. The
// sites render dates in Korean local time and carry no zone information, so
// no per-string timezone conversion is ever attempted.
var KST = time.FixedZone("KST", 9*60*60)

// TargetDay is the calendar day the digest selects for. It precomputes the
// literal renderings the sites use so the predicates stay pure string
// checks.
type TargetDay struct {
	day time.Time

	dashed  string // 2026-01-12
	dotted  string // 2026.01.12
	dayOnly string // 01.12
}

// Yesterday returns the TargetDay for the calendar day before now, evaluated
// in KST. Callers compute it once per run and pass it down rather than
// re-reading the clock per comparison.
func Yesterday(now time.Time) TargetDay {
	return On(now.In(KST).AddDate(0, 0, -1))
}

// On returns the TargetDay for the given day.
func On(day time.Time) TargetDay {
	day = day.In(KST)
	return TargetDay{
		day:     day,
		dashed:  day.Format("2006-01-02"),
		dotted:  day.Format("2006.01.02"),
		dayOnly: day.Format("01.02"),
	}
}

// Time returns the underlying day in KST.
func (t TargetDay) Time() time.Time {
	return t.day
}

// Dotted returns the day rendered as YYYY.MM.DD, the form the persisted
// digest is keyed by.
func (t TargetDay) Dotted() string {
	return t.dotted
}

// Compact returns the day rendered as YYYYMMDD, used in artifact filenames.
func (t TargetDay) Compact() string {
	return t.day.Format("20060102")
}

// Korean returns the day rendered as "2006년 01월 02일 (Monday)" for the
// digest header.
func (t TargetDay) Korean() string {
	return t.day.Format("2006년 01월 02일 (Monday)")
}

// MatchesRecord reports whether a raw article date string denotes the target
// day. It passes on containment (or prefix) of either full rendering, and on
// the relative "today" tokens: the Korean token as-is, the English word
// case-insensitively. The "today" branch is a preserved legacy rule; it
// passes regardless of any literal date also present in the string.
func (t TargetDay) MatchesRecord(raw string) bool {
	if raw == "" {
		return false
	}
	if strings.Contains(raw, t.dashed) || strings.Contains(raw, t.dotted) {
		return true
	}
	if strings.HasPrefix(raw, t.dashed) || strings.HasPrefix(raw, t.dotted) {
		return true
	}
	if strings.Contains(raw, "오늘") {
		return true
	}
	return strings.Contains(strings.ToLower(raw), "today")
}

// MatchesListing reports whether a bulletin listing date cell denotes the
// target day. Board listings often render month and day only, so this
// accepts the MM.DD form in addition to everything MatchesRecord accepts.
func (t TargetDay) MatchesListing(raw string) bool {
	if t.MatchesRecord(raw) {
		return true
	}
	return strings.Contains(raw, t.dayOnly)
}
