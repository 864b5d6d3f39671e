// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dates normalizes the heterogeneous date representations found in
// course-schedule spreadsheets into canonical calendar dates.
// Implements: prd001-dates (R1-R4); docs/ARCHITECTURE § Date Normalizer.
package dates

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// serialEpoch is the spreadsheet serial-date epoch. Serial values count
// whole and fractional days from this instant.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Serial values outside this range are treated as plain numbers, not dates.
// 20000 is mid-1954 and 80000 is early 2119; week numbers and scores fall
// well below the floor.
const (
	serialMin = 20000
	serialMax = 80000
)

// genericLayouts are tried first, before the numeric M/D/Y forms.
var genericLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"02 Jan 2006",
	"2006-01-02",
	time.RFC3339,
}

var (
	mdyRe     = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
	weekdayRe = regexp.MustCompile(`(?i)^(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*\.?,?\s+(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?$`)
	dueByRe   = regexp.MustCompile(`(?i)due\s+by\s+(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?`)
	tokenRe   = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)

	weekdayDateRe = regexp.MustCompile(`(?i)\b(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*\.?,?\s+(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?\b`)

	weekdayWordRe = regexp.MustCompile(`(?i)\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
)

// Parse converts a raw cell value into a calendar date. It accepts
// spreadsheet serial day-counts, M/D/YY and M/D/YYYY with / or - separators,
// weekday-prefixed dates, generic date strings, and prose containing a
// "due by M/D" phrase. contextYear anchors 2-digit years with no year of
// their own and bounds the sanity correction; zero disables both. The
// second return is false when the value is not a recognizable date.
func Parse(raw string, contextYear, window int) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// Spreadsheet serial day-count. Raw cell values surface native dates
	// as serial strings, so this runs before any string matching. NaN
	// passes neither range comparison, so it needs its own rejection;
	// pandas exports write literal "NaN" for missing cells.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < serialMin || f > serialMax {
			return time.Time{}, false
		}
		d := serialEpoch.Add(time.Duration(f*86400000) * time.Millisecond)
		return sanitize(StartOfDay(d), contextYear, window), true
	}

	// Numeric M/D/Y runs before the generic layouts: a dashed form like
	// "3-10-25" would otherwise be swallowed by the ISO layout with the
	// fields transposed.
	if m := mdyRe.FindStringSubmatch(s); m != nil {
		if d, ok := fromParts(m[1], m[2], m[3], contextYear); ok {
			return sanitize(d, contextYear, window), true
		}
		return time.Time{}, false
	}

	for _, layout := range genericLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return sanitize(StartOfDay(d), contextYear, window), true
		}
	}

	if m := weekdayRe.FindStringSubmatch(s); m != nil {
		if d, ok := fromParts(m[1], m[2], m[3], contextYear); ok {
			return sanitize(d, contextYear, window), true
		}
		return time.Time{}, false
	}

	if d, ok := FindDueBy(s, contextYear, window); ok {
		return d, true
	}

	return time.Time{}, false
}

// FindDueBy extracts an embedded "due by M/D[/Y]" phrase from prose.
func FindDueBy(s string, contextYear, window int) (time.Time, bool) {
	m := dueByRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	d, ok := fromParts(m[1], m[2], m[3], contextYear)
	if !ok {
		return time.Time{}, false
	}
	return sanitize(d, contextYear, window), true
}

// FindWeekdayDate extracts an embedded "Friday 4/11" style phrase from
// prose. The weekday anchor is what makes a year-less M/D safe to accept
// here; see FindInText.
func FindWeekdayDate(s string, contextYear, window int) (time.Time, bool) {
	m := weekdayDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	d, ok := fromParts(m[1], m[2], m[3], contextYear)
	if !ok {
		return time.Time{}, false
	}
	return sanitize(d, contextYear, window), true
}

// FindInText extracts the first embedded M/D/Y token from arbitrary text.
// The year is required here: a bare "3/4" inside prose is as likely to be a
// fraction as a date.
func FindInText(s string, contextYear, window int) (time.Time, bool) {
	m := tokenRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	d, ok := fromParts(m[1], m[2], m[3], contextYear)
	if !ok {
		return time.Time{}, false
	}
	return sanitize(d, contextYear, window), true
}

// IsDateLike reports whether s contains anything Parse or FindInText would
// accept as a date. Used by the classifier's data-row fallback and the
// format detector.
func IsDateLike(s string) bool {
	if _, ok := Parse(s, 0, 0); ok {
		return true
	}
	return tokenRe.MatchString(s)
}

// HasWeekday reports whether s contains a spelled-out weekday name.
func HasWeekday(s string) bool {
	return weekdayWordRe.MatchString(s)
}

// Canonical renders a date as M/D/YYYY with no zero padding.
func Canonical(d time.Time) string {
	return strconv.Itoa(int(d.Month())) + "/" + strconv.Itoa(d.Day()) + "/" + strconv.Itoa(d.Year())
}

// IsPastDue reports whether d falls strictly before the start of today.
// A date equal to today is not past due.
func IsPastDue(d, today time.Time) bool {
	return StartOfDay(d).Before(StartOfDay(today))
}

// StartOfDay truncates t to midnight UTC of its calendar date.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// fromParts builds a date from month/day/year strings. An empty year falls
// back to contextYear (or the current year when contextYear is zero). The
// result is validated so that 2/30 and month 13 are rejected rather than
// normalized into neighboring dates.
func fromParts(monthStr, dayStr, yearStr string, contextYear int) (time.Time, bool) {
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)

	var year int
	switch {
	case yearStr == "":
		year = contextYear
		if year == 0 {
			year = time.Now().Year()
		}
	default:
		year, _ = strconv.Atoi(yearStr)
		year = expandYear(year)
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// expandYear maps 2-digit years onto centuries with a pivot at 50:
// values below 50 land in 2000-2049, 50-99 in 1950-1999.
func expandYear(y int) int {
	if y >= 100 {
		return y
	}
	if y < 50 {
		return 2000 + y
	}
	return 1900 + y
}

// sanitize forces the year to contextYear when the parsed year strays more
// than window years from it. Spreadsheet date corruption (usually an epoch
// mismatch) produces dates decades off; a syllabus never legitimately spans
// that far.
func sanitize(d time.Time, contextYear, window int) time.Time {
	if contextYear == 0 {
		return d
	}
	if window <= 0 {
		window = 5
	}
	diff := d.Year() - contextYear
	if diff > window || diff < -window {
		return time.Date(contextYear, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return d
}
