// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AssignmentType categorizes an extracted assignment. The set is open:
// a value outside the constants below is carried through unchanged.
// Per prd002-extraction R1.1.
type AssignmentType = string

const (
	TypeHomework AssignmentType = "Homework"
	TypeActivity AssignmentType = "P&C Activity"
	TypeProject  AssignmentType = "Project"
	TypeExam     AssignmentType = "Exam"
	TypeMidterm  AssignmentType = "Midterm Exam"
	TypeFinal    AssignmentType = "Final Exam"
	TypeQuiz     AssignmentType = "Quiz"
	TypeGeneric  AssignmentType = "Assignment"
)

// Defaults substituted when a source row carries no usable value.
const (
	DefaultTitle  = "Unnamed Assignment"
	DefaultCourse = "Unknown Course"
)

// Assignment is a normalized assignment record, the sole output unit of the
// extraction engine. It is a plain value: once produced it is never mutated,
// and it carries no reference back to the workbook it came from.
// Per prd002-extraction R1.1-R1.4.
type Assignment struct {
	// Title is the assignment name, derived or literal. Never empty.
	Title string `json:"title" yaml:"title"`

	// DueDate is the canonical M/D/YYYY due date (no zero padding).
	DueDate string `json:"due_date" yaml:"due_date"`

	// Course names the course, from an explicit column or file/sheet context.
	Course string `json:"course" yaml:"course"`

	// Description is free text accumulated from topic/lab cells and the
	// triggering cell. May be empty.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Type is one of the AssignmentType constants or a passthrough value.
	Type AssignmentType `json:"type" yaml:"type"`

	// SourceFile records provenance only; it never affects identity.
	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`
}

// Key returns the deduplication identity for the assignment. Two records
// with the same key are the same assignment regardless of how they were
// derived. Per prd002-extraction R4.2.
func (a Assignment) Key() string {
	return a.Title + "|" + a.DueDate + "|" + a.Course
}

// ExtractionResult holds the output of extracting assignments from a single
// input file. Per prd002-extraction R5.1.
type ExtractionResult struct {
	// SourceFile is the input file the assignments came from.
	SourceFile string `json:"source_file" yaml:"source_file"`

	// Course is the course name used for records without an explicit course.
	Course string `json:"course" yaml:"course"`

	// Assignments contains the finalized records, deduplicated and sorted
	// by due date.
	Assignments []Assignment `json:"assignments" yaml:"assignments"`

	// Error records a file-level extraction failure message. Empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
