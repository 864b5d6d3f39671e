// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"io"

	"github.com/pdiddy/syllabus-engine/internal/dates"
	"github.com/pdiddy/syllabus-engine/pkg/types"
)

// plannerTypes maps extraction types onto the planner tool's category
// vocabulary. Unknown types pass through unchanged.
var plannerTypes = map[string]string{
	"Homework":     "Homework",
	"HW":           "Homework",
	"P&C Activity": "Activity",
	"Project":      "Project",
	"Exam":         "Exam",
	"Midterm":      "Exam",
	"Midterm Exam": "Exam",
	"Final":        "Exam",
	"Final Exam":   "Exam",
	"Quiz":         "Quiz",
	"Test":         "Test",
}

// WritePlannerCSV renders assignments as the planner import format:
// Name, Class, DueDate, Details, Type.
func WritePlannerCSV(w io.Writer, assignments []types.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Class", "DueDate", "Details", "Type"}); err != nil {
		return err
	}
	for _, a := range assignments {
		if err := cw.Write([]string{
			a.Title, a.Course, canonicalDue(a.DueDate), a.Description, plannerType(a.Type),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV dumps assignment fields directly.
func WriteCSV(w io.Writer, assignments []types.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Title", "DueDate", "Course", "Description", "Type", "SourceFile"}); err != nil {
		return err
	}
	for _, a := range assignments {
		if err := cw.Write([]string{
			a.Title, a.DueDate, a.Course, a.Description, a.Type, a.SourceFile,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func plannerType(t string) string {
	if mapped, ok := plannerTypes[t]; ok {
		return mapped
	}
	return t
}

// canonicalDue re-renders a due date as unpadded M/D/YYYY. Records straight
// from the engine are already canonical; store contents or hand-edited
// result files may not be.
func canonicalDue(s string) string {
	if d, ok := dates.Parse(s, 0, 0); ok {
		return dates.Canonical(d)
	}
	return s
}
