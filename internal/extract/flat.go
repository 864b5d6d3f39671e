// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"time"

	"github.com/pdiddy/syllabus-engine/internal/dates"
	"github.com/pdiddy/syllabus-engine/pkg/types"
)

// Column-name variants tried in order, case-insensitively, by the flat-table
// strategy. Deliberately simple: flat tables name their columns, so schema
// tolerance comes from the breadth of the variant lists, not from patterns.
var (
	dueDateVariants = []string{
		"due date", "due", "deadline", "date", "due by",
		"submission date", "due on", "when",
	}
	titleVariants = []string{
		"title", "assignment", "task", "name", "assignment name",
		"homework", "project", "activity", "item",
	}
	descriptionVariants = []string{
		"description", "details", "notes", "content", "instructions",
	}
	typeVariants = []string{
		"type", "category", "kind", "assignment type",
	}
	courseVariants = []string{
		"course", "class", "subject", "course name",
	}
)

// flatExtractor pulls one assignment per row from a conventional table with
// explicit title/date columns.
type flatExtractor struct {
	cfg         types.HeuristicsConfig
	course      string
	sourceFile  string
	contextYear int
	today       time.Time

	// header maps lower-cased header text to column index.
	header map[string]int
}

func newFlatExtractor(header []string, course, sourceFile string, contextYear int, today time.Time, cfg types.HeuristicsConfig) *flatExtractor {
	m := make(map[string]int, len(header))
	for i, cell := range header {
		h := strings.ToLower(strings.TrimSpace(cell))
		if h == "" {
			continue
		}
		if _, taken := m[h]; !taken {
			m[h] = i
		}
	}
	return &flatExtractor{
		cfg:         cfg,
		course:      course,
		sourceFile:  sourceFile,
		contextYear: contextYear,
		today:       today,
		header:      m,
	}
}

// extractRow converts one table row into an assignment, or nothing when the
// row has no parseable future due date.
func (x *flatExtractor) extractRow(row []string) (types.Assignment, bool) {
	dueText, ok := x.lookup(row, dueDateVariants)
	if !ok {
		return types.Assignment{}, false
	}
	due, ok := dates.Parse(dueText, x.contextYear, x.cfg.YearSanityWindow)
	if !ok || dates.IsPastDue(due, x.today) {
		return types.Assignment{}, false
	}

	title, ok := x.lookup(row, titleVariants)
	if !ok {
		title = types.DefaultTitle
	}

	description, _ := x.lookup(row, descriptionVariants)

	typ, ok := x.lookup(row, typeVariants)
	if !ok {
		typ = types.TypeGeneric
	}

	course, ok := x.lookup(row, courseVariants)
	if !ok {
		course = x.course
	}
	if course == "" {
		course = types.DefaultCourse
	}

	return types.Assignment{
		Title:       title,
		DueDate:     dates.Canonical(due),
		Course:      course,
		Description: description,
		Type:        typ,
		SourceFile:  x.sourceFile,
	}, true
}

// lookup returns the first non-empty cell among the variant columns.
func (x *flatExtractor) lookup(row []string, variants []string) (string, bool) {
	for _, v := range variants {
		col, ok := x.header[v]
		if !ok {
			continue
		}
		if cell := strings.TrimSpace(cellAt(row, col)); cell != "" {
			return cell, true
		}
	}
	return "", false
}
