// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/syllabus-engine/internal/dates"
	"github.com/pdiddy/syllabus-engine/pkg/types"
)

// ColumnMap assigns semantic roles to physical column indices. A role may
// claim several columns; a column belongs to at most one role. Built once
// per sheet, consumed by the row extractors, then discarded.
type ColumnMap struct {
	Date        []int
	DueDate     []int
	Week        []int
	Topic       []int
	Lab         []int
	Homework    []int
	Activity    []int
	Project     []int
	Exam        []int
	Assignment  []int
	Description []int
}

// columnRule pairs a keyword test with the ColumnMap slice it feeds.
type columnRule struct {
	match  func(string) bool
	assign func(*ColumnMap, int)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func wordIs(s string, words ...string) bool {
	for _, w := range words {
		if s == w {
			return true
		}
	}
	return false
}

// columnRules is the single, fixed classification order. The first matching
// rule claims the header; later rules never see it. Due-date phrases run
// before generic date phrases, which is the only place a more-specific rule
// could otherwise lose a column, so one pass suffices.
var columnRules = []columnRule{
	{ // due/deadline-qualified date phrases
		match:  func(h string) bool { return containsAny(h, "due", "deadline") },
		assign: func(m *ColumnMap, i int) { m.DueDate = append(m.DueDate, i) },
	},
	{ // generic date phrases
		match:  func(h string) bool { return containsAny(h, "date", "day") || wordIs(h, "when") },
		assign: func(m *ColumnMap, i int) { m.Date = append(m.Date, i) },
	},
	{ // week markers
		match:  func(h string) bool { return strings.Contains(h, "week") || wordIs(h, "wk", "wk#", "wk #") },
		assign: func(m *ColumnMap, i int) { m.Week = append(m.Week, i) },
	},
	{ // P&C activities
		match:  func(h string) bool { return containsAny(h, "p&c", "activity", "activities") || wordIs(h, "act") },
		assign: func(m *ColumnMap, i int) { m.Activity = append(m.Activity, i) },
	},
	{ // homework
		match:  func(h string) bool { return containsAny(h, "hw", "homework", "assignment") },
		assign: func(m *ColumnMap, i int) { m.Homework = append(m.Homework, i) },
	},
	{ // lecture topics
		match:  func(h string) bool { return containsAny(h, "lecture", "topic", "subject", "content") },
		assign: func(m *ColumnMap, i int) { m.Topic = append(m.Topic, i) },
	},
	{ // labs
		match:  func(h string) bool { return containsAny(h, "lab", "practical", "exercise") },
		assign: func(m *ColumnMap, i int) { m.Lab = append(m.Lab, i) },
	},
	{ // projects
		match:  func(h string) bool { return strings.Contains(h, "project") },
		assign: func(m *ColumnMap, i int) { m.Project = append(m.Project, i) },
	},
	{ // generic assignment-bearing columns
		match: func(h string) bool {
			return containsAny(h, "assign", "task", "work", "deliverable", "submission")
		},
		assign: func(m *ColumnMap, i int) { m.Assignment = append(m.Assignment, i) },
	},
	{ // descriptions
		match:  func(h string) bool { return containsAny(h, "description", "details", "notes") },
		assign: func(m *ColumnMap, i int) { m.Description = append(m.Description, i) },
	},
	{ // exams get their own role when named outright
		match:  func(h string) bool { return containsAny(h, "exam", "quiz", "test", "midterm", "final") },
		assign: func(m *ColumnMap, i int) { m.Exam = append(m.Exam, i) },
	},
}

// ClassifyColumns assigns roles to the header row's columns. It never
// hard-fails: when no date column emerges from the header, dataRows are
// scanned for date-like cells, and as a last resort a conventional column
// index is assumed, so every sheet ends up with at least one date source.
func ClassifyColumns(header []string, dataRows [][]string, cfg types.HeuristicsConfig) ColumnMap {
	var m ColumnMap

	for i, cell := range header {
		h := strings.ToLower(strings.TrimSpace(cell))
		if h == "" {
			continue
		}
		for _, rule := range columnRules {
			if rule.match(h) {
				rule.assign(&m, i)
				break
			}
		}
	}

	if len(m.Date) == 0 && len(m.DueDate) > 0 {
		m.Date = append(m.Date, m.DueDate...)
	}

	if len(m.Date) == 0 {
		if col, ok := scanForDateColumn(dataRows, cfg.DateScanRows); ok {
			m.Date = append(m.Date, col)
		} else {
			m.Date = append(m.Date, cfg.FallbackDateColumn)
		}
	}

	return m
}

// scanForDateColumn looks through the first maxRows data rows for a column
// whose cells look like dates, returning the first such column index.
func scanForDateColumn(rows [][]string, maxRows int) (int, bool) {
	if maxRows <= 0 {
		maxRows = 8
	}
	if len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	for _, row := range rows {
		for col, cell := range row {
			if cell != "" && dates.IsDateLike(cell) {
				return col, true
			}
		}
	}
	return 0, false
}
