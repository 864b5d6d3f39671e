// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// HeuristicsConfig holds the tunable extraction heuristics. Several of these
// encode conventions observed in real course schedules (single-sheet
// workbooks are usually timelines, a blank date cell means "same date as the
// row above") that were never validated against a broad corpus, so they are
// overridable rather than hard-coded. Per prd002-extraction R6.1-R6.4.
type HeuristicsConfig struct {
	// HomeworkLeadDays is the default number of days between a homework's
	// row date and its due date when no explicit due date appears (default 7).
	HomeworkLeadDays int `json:"homework_lead_days" yaml:"homework_lead_days"`

	// ActivityLeadDays is the same default lead for P&C activities (default 7).
	ActivityLeadDays int `json:"activity_lead_days" yaml:"activity_lead_days"`

	// ProjectLeadDays is the default lead for projects whose cell mentions
	// "due" without an explicit date (default 21).
	ProjectLeadDays int `json:"project_lead_days" yaml:"project_lead_days"`

	// YearSanityWindow is the maximum distance in years a parsed date may
	// sit from the context year before the year is forced to the context
	// year (default 5). Guards against spreadsheet epoch corruption.
	YearSanityWindow int `json:"year_sanity_window" yaml:"year_sanity_window"`

	// DateScanRows is how many leading data rows are scanned for date-like
	// cells when no date column is found in the header (default 8).
	DateScanRows int `json:"date_scan_rows" yaml:"date_scan_rows"`

	// FallbackDateColumn is the column index assumed to hold dates when both
	// the header pass and the data scan come up empty (default 0).
	FallbackDateColumn int `json:"fallback_date_column" yaml:"fallback_date_column"`

	// AssumeTimelineSingleSheet makes a single-sheet workbook with at least
	// five data rows and no contrary signal default to timeline layout.
	AssumeTimelineSingleSheet bool `json:"assume_timeline_single_sheet" yaml:"assume_timeline_single_sheet"`

	// CarryForwardRowDate reuses the most recently resolved row date for
	// rows that carry none of their own.
	CarryForwardRowDate bool `json:"carry_forward_row_date" yaml:"carry_forward_row_date"`
}

// DefaultHeuristics returns the heuristics defaults documented above.
func DefaultHeuristics() HeuristicsConfig {
	return HeuristicsConfig{
		HomeworkLeadDays:          7,
		ActivityLeadDays:          7,
		ProjectLeadDays:           21,
		YearSanityWindow:          5,
		DateScanRows:              8,
		FallbackDateColumn:        0,
		AssumeTimelineSingleSheet: true,
		CarryForwardRowDate:       true,
	}
}

// ExtractionConfig holds settings for the extraction stage.
// Per prd002-extraction R5.1-R5.3.
type ExtractionConfig struct {
	HeuristicsConfig `yaml:",inline"`

	// PlannerDir is the base directory for planner output (contains
	// extracted/, index/).
	PlannerDir string `json:"planner_dir" yaml:"planner_dir"`

	// Course overrides the course name inferred from the input filename.
	Course string `json:"course,omitempty" yaml:"course,omitempty"`

	// Year overrides the context year used for date sanity correction and
	// 2-digit year expansion. Zero means "derive from today".
	Year int `json:"year,omitempty" yaml:"year,omitempty"`
}

// StoreConfig holds settings for the assignment store.
// Per prd003-store R1.2.
type StoreConfig struct {
	// PlannerDir is the base directory for planner output (contains
	// extracted/, index/).
	PlannerDir string `json:"planner_dir" yaml:"planner_dir"`

	// MaxResults is the default maximum number of list/search results
	// (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ExportFormat selects the export serialization.
// Per prd004-export R1.1.
type ExportFormat string

const (
	FormatPlannerCSV ExportFormat = "planner-csv"
	FormatICS        ExportFormat = "ics"
	FormatCSV        ExportFormat = "csv"
)

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// Format selects the serialization: planner-csv, ics, or csv.
	Format ExportFormat `json:"format" yaml:"format"`

	// OutPath is the output file. Empty writes to stdout.
	OutPath string `json:"out_path,omitempty" yaml:"out_path,omitempty"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Store      StoreConfig      `json:"store" yaml:"store"`
	Export     ExportConfig     `json:"export" yaml:"export"`
}
