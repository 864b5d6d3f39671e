// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"
	"time"

	"github.com/pdiddy/syllabus-engine/pkg/types"
)

func newFlatFixture(header []string, today time.Time) *flatExtractor {
	return newFlatExtractor(header, "BIO101", "tasks.csv", 2025, today, types.DefaultHeuristics())
}

func TestFlatRowBasics(t *testing.T) {
	x := newFlatFixture([]string{"Due Date", "Assignment", "Type"}, date(2025, time.March, 1))

	a, ok := x.extractRow([]string{"04/01/2025", "Project Report", "Project"})
	if !ok {
		t.Fatal("expected a record")
	}
	if a.Title != "Project Report" {
		t.Errorf("title = %q", a.Title)
	}
	if a.DueDate != "4/1/2025" {
		t.Errorf("due date = %q, want canonical 4/1/2025", a.DueDate)
	}
	if a.Type != "Project" {
		t.Errorf("type = %q", a.Type)
	}
	if a.Course != "BIO101" {
		t.Errorf("course = %q", a.Course)
	}
}

func TestFlatRowHeaderVariants(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		row    []string
	}{
		{"deadline and task", []string{"Deadline", "Task"}, []string{"4/1/2025", "Essay"}},
		{"due by and name", []string{"Due By", "Name"}, []string{"4/1/2025", "Essay"}},
		{"submission date", []string{"Submission Date", "Title"}, []string{"4/1/2025", "Essay"}},
		{"mixed case", []string{"DUE DATE", "ASSIGNMENT NAME"}, []string{"4/1/2025", "Essay"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := newFlatFixture(tt.header, date(2025, time.March, 1))
			a, ok := x.extractRow(tt.row)
			if !ok {
				t.Fatal("expected a record")
			}
			if a.Title != "Essay" {
				t.Errorf("title = %q", a.Title)
			}
			if a.DueDate != "4/1/2025" {
				t.Errorf("due date = %q", a.DueDate)
			}
		})
	}
}

func TestFlatRowDefaults(t *testing.T) {
	x := newFlatFixture([]string{"Due Date", "Notes"}, date(2025, time.March, 1))

	a, ok := x.extractRow([]string{"4/1/2025", "bring laptop"})
	if !ok {
		t.Fatal("expected a record")
	}
	if a.Title != types.DefaultTitle {
		t.Errorf("title = %q, want %q", a.Title, types.DefaultTitle)
	}
	if a.Type != types.TypeGeneric {
		t.Errorf("type = %q, want %q", a.Type, types.TypeGeneric)
	}
	if a.Description != "bring laptop" {
		t.Errorf("description = %q", a.Description)
	}
}

func TestFlatRowExplicitCourseColumn(t *testing.T) {
	x := newFlatFixture([]string{"Due Date", "Assignment", "Class"}, date(2025, time.March, 1))

	a, ok := x.extractRow([]string{"4/1/2025", "Essay", "MAT210"})
	if !ok {
		t.Fatal("expected a record")
	}
	if a.Course != "MAT210" {
		t.Errorf("course = %q, want the explicit column value", a.Course)
	}
}

func TestFlatRowSkips(t *testing.T) {
	x := newFlatFixture([]string{"Due Date", "Assignment"}, date(2025, time.March, 1))

	tests := []struct {
		name string
		row  []string
	}{
		{"no date", []string{"", "Essay"}},
		{"unparseable date", []string{"next week", "Essay"}},
		{"past due", []string{"2/1/2025", "Essay"}},
		{"short row", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := x.extractRow(tt.row); ok {
				t.Error("expected no record")
			}
		})
	}
}

func TestFlatRowDueTodayKept(t *testing.T) {
	today := date(2025, time.April, 1)
	x := newFlatFixture([]string{"Due Date", "Assignment"}, today)

	if _, ok := x.extractRow([]string{"4/1/2025", "Essay"}); !ok {
		t.Error("a record due today is not past due")
	}
}
