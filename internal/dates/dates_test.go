// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseNumericForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"slash four-digit year", "3/10/2025", date(2025, time.March, 10)},
		{"zero-padded", "03/05/2025", date(2025, time.March, 5)},
		{"dash separators", "3-10-2025", date(2025, time.March, 10)},
		{"two-digit year below pivot", "3/5/24", date(2024, time.March, 5)},
		{"two-digit year above pivot", "3/5/87", date(1987, time.March, 5)},
		{"dashed two-digit year", "3-10-25", date(2025, time.March, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input, 0, 0)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGenericStrings(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"March 10, 2025", date(2025, time.March, 10)},
		{"Mar 10, 2025", date(2025, time.March, 10)},
		{"2025-03-10", date(2025, time.March, 10)},
		{"10 March 2025", date(2025, time.March, 10)},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.input, 0, 0)
		require.True(t, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseSerial(t *testing.T) {
	// Serial 45727 is March 11, 2025 from the Dec 30, 1899 epoch.
	got, ok := Parse("45727", 2025, 5)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.March, 11), got)

	// Fractional serials carry a time of day; the date part wins.
	got, ok = Parse("45727.5", 2025, 5)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.March, 11), got)
}

func TestParseRejectsNonDates(t *testing.T) {
	for _, input := range []string{
		"", "   ", "Week 3", "3", "45", "100000", "13/40/2025", "2/30/2025",
		"homework", "3/10", // bare M/D is only accepted inside a due-by phrase
		// Non-finite floats parse as numbers but are never serials; pandas
		// exports write literal NaN for missing cells.
		"NaN", "nan", "+Inf", "-Inf", "Infinity",
	} {
		_, ok := Parse(input, 2025, 5)
		assert.False(t, ok, "input %q should not parse", input)
	}
}

func TestParseWeekdayPrefixed(t *testing.T) {
	tests := []string{
		"Monday 3/10/2025",
		"Mon 3/10/2025",
		"Mon, 3/10/2025",
		"Wednesday, 3/10/2025",
	}
	for _, input := range tests {
		got, ok := Parse(input, 0, 0)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, date(2025, time.March, 10), got, "input %q", input)
	}
}

func TestFindDueBy(t *testing.T) {
	got, ok := FindDueBy("HW 3 assigned, due by 3/17/2025 at midnight", 0, 0)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.March, 17), got)

	// No year: context year fills in.
	got, ok = FindDueBy("Due By 3/17", 2025, 5)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.March, 17), got)

	_, ok = FindDueBy("reading due next week", 2025, 5)
	assert.False(t, ok)
}

func TestFindWeekdayDate(t *testing.T) {
	// No year: the weekday anchor makes M/D safe, context year fills in.
	got, ok := FindWeekdayDate("Project 2 due Friday 4/11", 2025, 5)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.April, 11), got)

	got, ok = FindWeekdayDate("submit Mon. 3/17/2025 in class", 0, 0)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.March, 17), got)

	// A weekday alone, or a date with no weekday, is not enough.
	_, ok = FindWeekdayDate("due Friday", 2025, 5)
	assert.False(t, ok)
	_, ok = FindWeekdayDate("report 4/11", 2025, 5)
	assert.False(t, ok)
}

func TestFindInText(t *testing.T) {
	got, ok := FindInText("Project kickoff (report 4/1/2025)", 0, 0)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.April, 1), got)

	// A bare fraction is not a date.
	_, ok = FindInText("read 3/4 of the chapter", 0, 0)
	assert.False(t, ok)
}

func TestYearSanityCorrection(t *testing.T) {
	// An epoch mismatch lands the date decades away; the year snaps to
	// the context year.
	got, ok := Parse("3/10/1925", 2025, 5)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.March, 10), got)

	// Inside the window the parsed year stands.
	got, ok = Parse("3/10/2023", 2025, 5)
	require.True(t, ok)
	assert.Equal(t, date(2023, time.March, 10), got)

	// Zero context year disables the correction.
	got, ok = Parse("3/10/1925", 0, 5)
	require.True(t, ok)
	assert.Equal(t, date(1925, time.March, 10), got)
}

func TestCanonicalRoundTrip(t *testing.T) {
	for _, s := range []string{"3/10/2025", "12/1/2024", "1/31/2026", "9/9/1999"} {
		d, ok := Parse(s, 0, 0)
		require.True(t, ok, "input %q", s)
		assert.Equal(t, s, Canonical(d), "round trip %q", s)
	}
}

func TestCanonicalNoPadding(t *testing.T) {
	assert.Equal(t, "3/5/2025", Canonical(date(2025, time.March, 5)))
}

func TestIsPastDueTodayInclusive(t *testing.T) {
	today := date(2025, time.March, 10)

	assert.False(t, IsPastDue(today, today), "today is not past due")
	assert.True(t, IsPastDue(today.AddDate(0, 0, -1), today))
	assert.False(t, IsPastDue(today.AddDate(0, 0, 1), today))

	// Time-of-day noise on either side must not shift the boundary.
	noon := time.Date(2025, time.March, 10, 12, 30, 0, 0, time.UTC)
	assert.False(t, IsPastDue(today, noon))
	assert.False(t, IsPastDue(noon, today))
}

func TestIsDateLike(t *testing.T) {
	assert.True(t, IsDateLike("3/10/2025"))
	assert.True(t, IsDateLike("lab report 3/10/2025 in class"))
	assert.True(t, IsDateLike("45727"))
	assert.False(t, IsDateLike("Week 3"))
	assert.False(t, IsDateLike("Homework 2"))
	assert.False(t, IsDateLike("NaN"))
}

func TestHasWeekday(t *testing.T) {
	assert.True(t, HasWeekday("Monday lecture"))
	assert.True(t, HasWeekday("quiz on friday"))
	assert.False(t, HasWeekday("Mon 3/10"))
}
