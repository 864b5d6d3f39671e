// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"
	"time"

	"github.com/pdiddy/syllabus-engine/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTimelineFixture(today time.Time) *timelineExtractor {
	return &timelineExtractor{
		cfg:         types.DefaultHeuristics(),
		course:      "CMP168",
		sourceFile:  "CMP168_Schedule.xlsx",
		contextYear: 2025,
		today:       today,
	}
}

// scheduleColumns is the classified map for a typical timeline header:
// Date | Lecture Topic.
func scheduleColumns() ColumnMap {
	return ClassifyColumns([]string{"Date", "Lecture Topic"}, nil, types.DefaultHeuristics())
}

func TestTimelineHomeworkExplicitDueBy(t *testing.T) {
	x := newTimelineFixture(date(2025, time.March, 1))
	got := x.extractRow([]string{"3/10/2025", "HW 3 due by 3/17/2025"}, scheduleColumns())

	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	a := got[0]
	if a.Title != "Homework 3" {
		t.Errorf("title = %q, want %q", a.Title, "Homework 3")
	}
	if a.DueDate != "3/17/2025" {
		t.Errorf("due date = %q, want %q", a.DueDate, "3/17/2025")
	}
	if a.Type != types.TypeHomework {
		t.Errorf("type = %q, want %q", a.Type, types.TypeHomework)
	}
	if a.Course != "CMP168" {
		t.Errorf("course = %q, want %q", a.Course, "CMP168")
	}
}

func TestTimelineHomeworkDefaultLead(t *testing.T) {
	x := newTimelineFixture(date(2025, time.March, 1))
	got := x.extractRow([]string{"3/10/2025", "HW 4 assigned"}, scheduleColumns())

	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	// No explicit due date: one-week default lead from the row date.
	if got[0].DueDate != "3/17/2025" {
		t.Errorf("due date = %q, want %q", got[0].DueDate, "3/17/2025")
	}
}

func TestTimelineActivity(t *testing.T) {
	x := newTimelineFixture(date(2025, time.March, 1))
	got := x.extractRow([]string{"3/10/2025", "P&C Activity 2 in class"}, scheduleColumns())

	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	if got[0].Title != "P&C Activity 2" {
		t.Errorf("title = %q, want %q", got[0].Title, "P&C Activity 2")
	}
	if got[0].Type != types.TypeActivity {
		t.Errorf("type = %q", got[0].Type)
	}
	if got[0].DueDate != "3/17/2025" {
		t.Errorf("due date = %q, want %q", got[0].DueDate, "3/17/2025")
	}
}

func TestTimelineProject(t *testing.T) {
	x := newTimelineFixture(date(2025, time.March, 1))

	tests := []struct {
		name    string
		cell    string
		wantDue string
	}{
		{"explicit date", "Project 1 due 4/11/2025", "4/11/2025"},
		{"weekday date without year", "Project 1 due Friday 4/11", "4/11/2025"},
		{"due without date", "Project 1 assigned, due in three weeks", "3/31/2025"},
		{"mention only", "Project brainstorming", "3/10/2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := x.extractRow([]string{"3/10/2025", tt.cell}, scheduleColumns())
			if len(got) != 1 {
				t.Fatalf("records = %d, want 1", len(got))
			}
			if got[0].Type != types.TypeProject {
				t.Errorf("type = %q", got[0].Type)
			}
			if got[0].DueDate != tt.wantDue {
				t.Errorf("due date = %q, want %q", got[0].DueDate, tt.wantDue)
			}
		})
	}
}

func TestTimelineExamSubtypes(t *testing.T) {
	x := newTimelineFixture(date(2025, time.March, 1))

	tests := []struct {
		cell      string
		wantTitle string
	}{
		{"Midterm Exam", types.TypeMidterm},
		{"Final exam", types.TypeFinal},
		{"Quiz 1 in class", types.TypeQuiz},
		{"Exam on chapters 1-3", types.TypeExam},
	}
	for _, tt := range tests {
		got := x.extractRow([]string{"3/10/2025", tt.cell}, scheduleColumns())
		if len(got) != 1 {
			t.Fatalf("%q: records = %d, want 1", tt.cell, len(got))
		}
		if got[0].Title != tt.wantTitle {
			t.Errorf("%q: title = %q, want %q", tt.cell, got[0].Title, tt.wantTitle)
		}
		if got[0].DueDate != "3/10/2025" {
			t.Errorf("%q: due date = %q, want row date", tt.cell, got[0].DueDate)
		}
	}
}

func TestTimelineExamPrepRowsSkipped(t *testing.T) {
	x := newTimelineFixture(date(2025, time.March, 1))

	for _, cell := range []string{"Exam review", "Midterm buffer day", "Final exam opens"} {
		if got := x.extractRow([]string{"3/10/2025", cell}, scheduleColumns()); len(got) != 0 {
			t.Errorf("%q: records = %d, want 0", cell, len(got))
		}
	}

	// "closes" marks a real deadline even next to "opens".
	got := x.extractRow([]string{"3/10/2025", "Final exam opens, closes 3/21/2025"}, scheduleColumns())
	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	if got[0].DueDate != "3/21/2025" {
		t.Errorf("due date = %q, want %q", got[0].DueDate, "3/21/2025")
	}
}

func TestTimelineCarryForwardDate(t *testing.T) {
	x := newTimelineFixture(date(2025, time.March, 1))
	cm := scheduleColumns()

	first := x.extractRow([]string{"3/10/2025", "HW 1"}, cm)
	if len(first) != 1 {
		t.Fatalf("first row records = %d, want 1", len(first))
	}

	// Second row has no date of its own; it inherits 3/10.
	second := x.extractRow([]string{"", "HW 2"}, cm)
	if len(second) != 1 {
		t.Fatalf("second row records = %d, want 1", len(second))
	}
	if second[0].DueDate != "3/17/2025" {
		t.Errorf("due date = %q, want %q", second[0].DueDate, "3/17/2025")
	}

	// With carry-forward disabled the dateless row yields nothing.
	x2 := newTimelineFixture(date(2025, time.March, 1))
	x2.cfg.CarryForwardRowDate = false
	x2.extractRow([]string{"3/10/2025", "HW 1"}, cm)
	if got := x2.extractRow([]string{"", "HW 2"}, cm); len(got) != 0 {
		t.Errorf("records = %d, want 0 with carry-forward disabled", len(got))
	}
}

func TestTimelinePastRowSkipped(t *testing.T) {
	x := newTimelineFixture(date(2025, time.March, 20))

	// Past row, derived due date: nothing.
	if got := x.extractRow([]string{"3/10/2025", "HW 3"}, scheduleColumns()); len(got) != 0 {
		t.Errorf("records = %d, want 0 for past row", len(got))
	}

	// Past row, explicit future due date: the explicit date wins.
	got := x.extractRow([]string{"3/10/2025", "HW 3 due by 3/27/2025"}, scheduleColumns())
	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	if got[0].DueDate != "3/27/2025" {
		t.Errorf("due date = %q", got[0].DueDate)
	}

	// Past row, explicit past due date: still dropped.
	if got := x.extractRow([]string{"3/10/2025", "HW 3 due by 3/15/2025"}, scheduleColumns()); len(got) != 0 {
		t.Errorf("records = %d, want 0 for past explicit date", len(got))
	}
}

func TestTimelineRowDatedTodayKept(t *testing.T) {
	today := date(2025, time.March, 10)
	x := newTimelineFixture(today)

	got := x.extractRow([]string{"3/10/2025", "Quiz 1"}, scheduleColumns())
	if len(got) != 1 {
		t.Fatalf("records = %d, want 1: a row dated today is not past", len(got))
	}
}

func TestTimelineGenericFallback(t *testing.T) {
	x := newTimelineFixture(date(2025, time.March, 1))
	cm := ClassifyColumns([]string{"Date", "Topic", "Notes"}, nil, types.DefaultHeuristics())

	got := x.extractRow([]string{"3/10/2025", "Ethics discussion", "Submit: reflection essay"}, cm)
	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	a := got[0]
	if a.Title != "reflection essay" {
		t.Errorf("title = %q, want %q", a.Title, "reflection essay")
	}
	if a.Type != types.TypeGeneric {
		t.Errorf("type = %q, want %q", a.Type, types.TypeGeneric)
	}
	if a.DueDate != "3/10/2025" {
		t.Errorf("due date = %q, want row date", a.DueDate)
	}
}

func TestTimelineMultipleTypesPerRow(t *testing.T) {
	x := newTimelineFixture(date(2025, time.March, 1))
	cm := ClassifyColumns([]string{"Date", "Lecture Topic", "Exam"}, nil, types.DefaultHeuristics())

	got := x.extractRow([]string{"3/10/2025", "HW 2 and P&C Activity 3", "Midterm Exam"}, cm)
	if len(got) != 3 {
		t.Fatalf("records = %d, want 3 (activity, homework, exam)", len(got))
	}

	titles := map[string]bool{}
	for _, a := range got {
		titles[a.Title] = true
	}
	for _, want := range []string{"P&C Activity 3", "Homework 2", types.TypeMidterm} {
		if !titles[want] {
			t.Errorf("missing record %q in %v", want, titles)
		}
	}
}

func TestTimelineNoDateNoRecords(t *testing.T) {
	x := newTimelineFixture(date(2025, time.March, 1))
	if got := x.extractRow([]string{"", "HW 1"}, scheduleColumns()); len(got) != 0 {
		t.Errorf("records = %d, want 0 when no date was ever resolved", len(got))
	}
}

func TestTimelineDescriptionCarriesTopic(t *testing.T) {
	x := newTimelineFixture(date(2025, time.March, 1))
	cm := ClassifyColumns([]string{"Date", "Lecture Topic", "HW"}, nil, types.DefaultHeuristics())

	got := x.extractRow([]string{"3/10/2025", "Loops and slices", "HW 2"}, cm)
	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	want := "Loops and slices; HW 2"
	if got[0].Description != want {
		t.Errorf("description = %q, want %q", got[0].Description, want)
	}
}
