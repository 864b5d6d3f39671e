// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/syllabus-engine/internal/dates"
	"github.com/pdiddy/syllabus-engine/pkg/types"
)

var (
	timelineNameRe = regexp.MustCompile(`(?i)schedule|timeline|syllabus|course|semester|calendar`)
	courseCodeRe   = regexp.MustCompile(`(?i)^[a-z]{2,4}[\s-]?\d{3}`)
	semesterRe     = regexp.MustCompile(`(?i)(spring|summer|fall|winter)\s*'?\d{2,4}`)

	assignmentWordRe = regexp.MustCompile(`(?i)\b(hw|homework|assignment|project|exam|quiz|lab|activity|due)\b`)
)

// detectSampleRows bounds how many leading rows the content heuristics scan.
const detectSampleRows = 10

// IsTimeline decides whether a sheet uses the timeline layout (one row per
// calendar session, assignments embedded in topic cells) rather than a flat
// one-row-per-assignment table. The heuristics deliberately favor recall:
// misreading a flat table as a timeline degrades gracefully in the row
// extractor, while skipping a real timeline loses every assignment in it.
func IsTimeline(sheetName string, rows [][]string, singleSheet bool, cfg types.HeuristicsConfig) bool {
	// An explicit title+due-date header is the one decisive flat signal:
	// every data row of such a table pairs a date with an assignment
	// keyword, which would otherwise satisfy the row heuristics below.
	if len(rows) > 0 && headerSuggestsFlat(rows[0]) {
		return false
	}

	if timelineNameRe.MatchString(sheetName) ||
		courseCodeRe.MatchString(strings.TrimSpace(sheetName)) ||
		semesterRe.MatchString(sheetName) {
		return true
	}

	if len(rows) > 0 && headerSuggestsTimeline(rows[0]) {
		return true
	}

	sample := rows
	if len(sample) > detectSampleRows {
		sample = sample[:detectSampleRows]
	}
	for _, row := range sample {
		if rowSuggestsTimeline(row) {
			return true
		}
	}

	// Most real-world course schedules arrive as single-sheet workbooks.
	if cfg.AssumeTimelineSingleSheet && singleSheet && len(rows) >= 6 {
		return true
	}

	return false
}

// headerSuggestsFlat checks for the one-row-per-assignment signature: a
// named title column next to a due/date column, with no week column.
func headerSuggestsFlat(header []string) bool {
	var hasTitle, hasDue, hasWeek bool
	for _, cell := range header {
		h := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case h == "title" || h == "name" || h == "assignment" || h == "task" ||
			h == "assignment name" || h == "item":
			hasTitle = true
		case strings.Contains(h, "due") || strings.Contains(h, "deadline") || strings.Contains(h, "date"):
			hasDue = true
		case strings.Contains(h, "week") || h == "wk":
			hasWeek = true
		}
	}
	return hasTitle && hasDue && !hasWeek
}

// headerSuggestsTimeline checks for the date+week+(lecture|lab) header
// signature of a session-per-row schedule.
func headerSuggestsTimeline(header []string) bool {
	var hasDate, hasWeek, hasSession bool
	for _, cell := range header {
		h := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case strings.Contains(h, "date") || strings.Contains(h, "day"):
			hasDate = true
		case strings.Contains(h, "week") || h == "wk":
			hasWeek = true
		case strings.Contains(h, "lecture") || strings.Contains(h, "lab") || strings.Contains(h, "topic"):
			hasSession = true
		}
	}
	return hasDate && hasWeek && hasSession
}

// rowSuggestsTimeline fires on rows whose cells mix dates with schedule
// prose: two or more date tokens, a date next to an assignment keyword, or
// a weekday name next to a date.
func rowSuggestsTimeline(row []string) bool {
	var dateCells, keywordCells, weekdayCells int
	for _, cell := range row {
		if cell == "" {
			continue
		}
		if dates.IsDateLike(cell) {
			dateCells++
		}
		if assignmentWordRe.MatchString(cell) {
			keywordCells++
		}
		if dates.HasWeekday(cell) {
			weekdayCells++
		}
	}
	if dateCells >= 2 {
		return true
	}
	if dateCells >= 1 && keywordCells >= 1 {
		return true
	}
	return weekdayCells >= 1 && dateCells >= 1
}
