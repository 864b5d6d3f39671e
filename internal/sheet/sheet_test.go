// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "CMP168_Schedule.csv",
		"Date,Lecture Topic,HW\n3/10/2025,Loops,HW 3\n3/17/2025,Slices,\n")

	wb, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(wb.Sheets) != 1 {
		t.Fatalf("sheets = %d, want 1", len(wb.Sheets))
	}

	s := wb.Sheets[0]
	if s.Name != "CMP168_Schedule" {
		t.Errorf("sheet name = %q", s.Name)
	}
	if got := len(s.Rows); got != 3 {
		t.Fatalf("rows = %d, want 3", got)
	}
	if s.Header()[1] != "Lecture Topic" {
		t.Errorf("header[1] = %q", s.Header()[1])
	}
	if len(s.DataRows()) != 2 {
		t.Errorf("data rows = %d, want 2", len(s.DataRows()))
	}
}

func TestLoadCSVRaggedRows(t *testing.T) {
	// Real exports routinely have rows with differing field counts.
	path := writeFile(t, "sched.csv", "Date,Topic\n3/10/2025\n3/17/2025,Slices,extra\n")

	wb, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(wb.Sheets[0].Rows); got != 3 {
		t.Errorf("rows = %d, want 3", got)
	}
}

func TestLoadEmptyCSV(t *testing.T) {
	path := writeFile(t, "empty.csv", "")
	if _, err := Load(path); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCourseName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"CMP168_Schedule.xlsx", "CMP168 Schedule"},
		{"/tmp/uploads/bio-101-fall.csv", "bio 101 fall"},
		{"syllabus.csv", "syllabus"},
		{"Intro.To.Stats.xlsx", "Intro To Stats"},
	}
	for _, tt := range tests {
		if got := CourseName(tt.path); got != tt.want {
			t.Errorf("CourseName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSheetCourse(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"CMP168", "CMP168"},
		{"cmp 168 schedule", "CMP168"},
		{"BIO-101", "BIO101"},
		{"Sheet1", ""},
		{"Fall 2025", ""},
	}
	for _, tt := range tests {
		if got := SheetCourse(tt.name); got != tt.want {
			t.Errorf("SheetCourse(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
