// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/syllabus-engine/internal/dates"
	"github.com/pdiddy/syllabus-engine/pkg/types"
)

var (
	hwTriggerRe   = regexp.MustCompile(`(?i)\b(?:hw|homework)\b`)
	hwNumberRe    = regexp.MustCompile(`(?i)\b(?:hw|homework)\s*#?\s*(\d+)`)
	pcTriggerRe   = regexp.MustCompile(`(?i)p&c|\bactivit(?:y|ies)\b`)
	pcNumberRe    = regexp.MustCompile(`(?i)(?:p&c|activit(?:y|ies))\s*#?\s*(\d+)`)
	projTriggerRe = regexp.MustCompile(`(?i)\bproject\b`)
	projNumberRe  = regexp.MustCompile(`(?i)\bproject\s*#?\s*(\d+)`)
	examTriggerRe = regexp.MustCompile(`(?i)\b(midterm|final|exam|test|quiz)\b`)

	// Prep-session rows mention an exam without assigning anything.
	prepWordRe = regexp.MustCompile(`(?i)\b(review|buffer|opens?)\b`)
	dueWordRe  = regexp.MustCompile(`(?i)\b(due|closes?|closed)\b`)

	genericWordRe   = regexp.MustCompile(`(?i)\b(submit|task|due|deliverable)\b`)
	genericPrefixRe = regexp.MustCompile(`(?i)^\s*(?:due|submit)\s*:?\s+`)
)

// timelineExtractor walks a timeline sheet top to bottom, carrying the most
// recently resolved row date so that rows sharing a session date can leave
// their date cell blank.
type timelineExtractor struct {
	cfg         types.HeuristicsConfig
	course      string
	sourceFile  string
	contextYear int
	today       time.Time

	lastDate    time.Time
	hasLastDate bool
}

// extractRow pulls zero or more assignments out of one timeline row. A
// single row can yield a homework, an activity, and an exam at once; each
// type is matched independently.
func (x *timelineExtractor) extractRow(row []string, cm ColumnMap) []types.Assignment {
	rowDate, ok := x.resolveRowDate(row, cm)
	if !ok {
		return nil
	}
	rowPast := dates.IsPastDue(rowDate, x.today)

	cols := x.scanColumns(row, cm)
	context := x.contextText(row, cm)

	var out []types.Assignment

	add := func(a types.Assignment, due time.Time, explicit bool) {
		// A past row only contributes records whose cell text names a
		// future due date outright; derived offsets inherit the row's
		// staleness.
		if rowPast && !explicit {
			return
		}
		if dates.IsPastDue(due, x.today) {
			return
		}
		a.DueDate = dates.Canonical(due)
		a.Course = x.course
		a.SourceFile = x.sourceFile
		out = append(out, a)
	}

	matched := false

	if cell, ok := firstMatch(cols, pcTriggerRe); ok {
		matched = true
		due, explicit := x.explicitDue(cell)
		if !explicit {
			due = rowDate.AddDate(0, 0, x.cfg.ActivityLeadDays)
		}
		add(types.Assignment{
			Title:       numberedTitle("P&C Activity", cell, pcNumberRe),
			Type:        types.TypeActivity,
			Description: joinText(context, cell),
		}, due, explicit)
	}

	if cell, ok := firstMatch(cols, hwTriggerRe); ok {
		matched = true
		due, explicit := x.explicitDue(cell)
		if !explicit {
			due = rowDate.AddDate(0, 0, x.cfg.HomeworkLeadDays)
		}
		add(types.Assignment{
			Title:       numberedTitle("Homework", cell, hwNumberRe),
			Type:        types.TypeHomework,
			Description: joinText(context, cell),
		}, due, explicit)
	}

	if cell, ok := firstMatch(cols, projTriggerRe); ok {
		matched = true
		due, explicit := x.explicitDue(cell)
		if !explicit {
			if dueWordRe.MatchString(cell) {
				due = rowDate.AddDate(0, 0, x.cfg.ProjectLeadDays)
			} else {
				due = rowDate
			}
		}
		add(types.Assignment{
			Title:       numberedTitle("Project", cell, projNumberRe),
			Type:        types.TypeProject,
			Description: joinText(context, cell),
		}, due, explicit)
	}

	if cell, ok := firstMatch(cols, examTriggerRe); ok {
		matched = true
		// "Exam review" and "exam opens" rows are prep sessions, not
		// deliverables, unless the cell also says due/closes.
		if !prepWordRe.MatchString(cell) || dueWordRe.MatchString(cell) {
			due, explicit := x.explicitDue(cell)
			if !explicit {
				due = rowDate
			}
			title, typ := examKind(cell)
			add(types.Assignment{
				Title:       title,
				Type:        typ,
				Description: joinText(context, cell),
			}, due, explicit)
		}
	}

	if !matched {
		if a, due, explicit, ok := x.genericFallback(row, rowDate); ok {
			a.Description = joinText(context, a.Description)
			add(a, due, explicit)
		}
	}

	return out
}

// resolveRowDate finds the calendar date a row belongs to: date/due-date
// columns first, then a date embedded in the week column, then any cell,
// then the previous row's date.
func (x *timelineExtractor) resolveRowDate(row []string, cm ColumnMap) (time.Time, bool) {
	record := func(d time.Time) (time.Time, bool) {
		x.lastDate = d
		x.hasLastDate = true
		return d, true
	}

	for _, col := range append(append([]int{}, cm.Date...), cm.DueDate...) {
		if d, ok := dates.Parse(cellAt(row, col), x.contextYear, x.cfg.YearSanityWindow); ok {
			return record(d)
		}
	}

	for _, col := range cm.Week {
		if d, ok := dates.FindInText(cellAt(row, col), x.contextYear, x.cfg.YearSanityWindow); ok {
			return record(d)
		}
	}

	for _, cell := range row {
		if cell == "" {
			continue
		}
		if d, ok := dates.Parse(cell, x.contextYear, x.cfg.YearSanityWindow); ok {
			return record(d)
		}
		if d, ok := dates.FindInText(cell, x.contextYear, x.cfg.YearSanityWindow); ok {
			return record(d)
		}
	}

	if x.cfg.CarryForwardRowDate && x.hasLastDate {
		return x.lastDate, true
	}
	return time.Time{}, false
}

// explicitDue looks for a due date stated in the cell itself: a "due by"
// phrase first, then a weekday-anchored date (which may omit the year),
// then any embedded full date.
func (x *timelineExtractor) explicitDue(cell string) (time.Time, bool) {
	if d, ok := dates.FindDueBy(cell, x.contextYear, x.cfg.YearSanityWindow); ok {
		return d, true
	}
	if d, ok := dates.FindWeekdayDate(cell, x.contextYear, x.cfg.YearSanityWindow); ok {
		return d, true
	}
	if d, ok := dates.FindInText(cell, x.contextYear, x.cfg.YearSanityWindow); ok {
		return d, true
	}
	return time.Time{}, false
}

// scanColumns collects the row's assignment-bearing cells in the fixed
// priority order: activity, homework, project, exam, assignment,
// description, topic, lab. Each type extractor takes the first cell its
// trigger matches.
func (x *timelineExtractor) scanColumns(row []string, cm ColumnMap) []string {
	var cols []string
	seen := map[int]bool{}
	for _, group := range [][]int{
		cm.Activity, cm.Homework, cm.Project, cm.Exam,
		cm.Assignment, cm.Description, cm.Topic, cm.Lab,
	} {
		for _, col := range group {
			if seen[col] {
				continue
			}
			seen[col] = true
			if cell := strings.TrimSpace(cellAt(row, col)); cell != "" {
				cols = append(cols, cell)
			}
		}
	}
	return cols
}

// contextText concatenates the row's topic and lab cells for use as the
// leading part of each record's description.
func (x *timelineExtractor) contextText(row []string, cm ColumnMap) string {
	var parts []string
	for _, col := range append(append([]int{}, cm.Topic...), cm.Lab...) {
		if cell := strings.TrimSpace(cellAt(row, col)); cell != "" {
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, "; ")
}

// genericFallback emits a generic Assignment record when none of the typed
// triggers fired but a cell still reads like a deliverable.
func (x *timelineExtractor) genericFallback(row []string, rowDate time.Time) (types.Assignment, time.Time, bool, bool) {
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" || !genericWordRe.MatchString(cell) {
			continue
		}
		due, explicit := x.explicitDue(cell)
		if !explicit {
			due = rowDate
		}
		return types.Assignment{
			Title:       genericTitle(cell),
			Type:        types.TypeGeneric,
			Description: cell,
		}, due, explicit, true
	}
	return types.Assignment{}, time.Time{}, false, false
}

// firstMatch returns the first cell the trigger matches.
func firstMatch(cells []string, trigger *regexp.Regexp) (string, bool) {
	for _, cell := range cells {
		if trigger.MatchString(cell) {
			return cell, true
		}
	}
	return "", false
}

// numberedTitle builds "Homework 3" style titles, falling back to the bare
// base when the cell carries no number.
func numberedTitle(base, cell string, numberRe *regexp.Regexp) string {
	if m := numberRe.FindStringSubmatch(cell); m != nil {
		return base + " " + m[1]
	}
	return base
}

// examKind classifies an exam cell into its subtype.
func examKind(cell string) (string, types.AssignmentType) {
	lower := strings.ToLower(cell)
	switch {
	case strings.Contains(lower, "midterm"):
		return types.TypeMidterm, types.TypeMidterm
	case strings.Contains(lower, "final"):
		return types.TypeFinal, types.TypeFinal
	case strings.Contains(lower, "quiz"):
		return types.TypeQuiz, types.TypeQuiz
	default:
		return types.TypeExam, types.TypeExam
	}
}

// genericTitle cleans a triggering cell into a usable title: strips leading
// due:/submit: prefixes and falls back to a generic label when the text is
// too long to be a name.
func genericTitle(cell string) string {
	title := strings.TrimSpace(genericPrefixRe.ReplaceAllString(cell, ""))
	if title == "" || len(title) > 60 {
		return types.TypeGeneric
	}
	return title
}

func joinText(context, cell string) string {
	context = strings.TrimSpace(context)
	cell = strings.TrimSpace(cell)
	switch {
	case context == "":
		return cell
	case cell == "" || context == cell:
		return context
	default:
		return context + "; " + cell
	}
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
