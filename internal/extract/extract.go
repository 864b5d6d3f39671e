// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract is the heuristic assignment-extraction engine. It infers
// structure from schedule spreadsheets with no fixed schema: which columns
// hold dates, which cells carry assignments, and what each assignment's due
// date is. Extraction is best effort with layered fallbacks; the acceptable
// failure mode is finding fewer assignments than a human would, never a
// hard error past the file-open boundary.
// Implements: prd002-extraction (R1-R6); docs/ARCHITECTURE § Extraction.
package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/syllabus-engine/internal/dates"
	"github.com/pdiddy/syllabus-engine/internal/sheet"
	"github.com/pdiddy/syllabus-engine/pkg/types"
)

const extractedDir = "extracted"

// Engine runs the extraction pipeline over input files. Today is injected
// rather than read from the system clock so past-due filtering is
// deterministic under test.
type Engine struct {
	Config types.ExtractionConfig
	Today  time.Time
}

// NewEngine builds an engine. A zero-value heuristics section takes the
// full documented defaults, booleans included; a partially built one
// should start from DefaultHeuristics, since a false boolean there is
// indistinguishable from unset. Unset numeric knobs are always filled in.
func NewEngine(cfg types.ExtractionConfig, today time.Time) *Engine {
	def := types.DefaultHeuristics()
	if cfg.HeuristicsConfig == (types.HeuristicsConfig{}) {
		cfg.HeuristicsConfig = def
	}
	if cfg.HomeworkLeadDays <= 0 {
		cfg.HomeworkLeadDays = def.HomeworkLeadDays
	}
	if cfg.ActivityLeadDays <= 0 {
		cfg.ActivityLeadDays = def.ActivityLeadDays
	}
	if cfg.ProjectLeadDays <= 0 {
		cfg.ProjectLeadDays = def.ProjectLeadDays
	}
	if cfg.YearSanityWindow <= 0 {
		cfg.YearSanityWindow = def.YearSanityWindow
	}
	if cfg.DateScanRows <= 0 {
		cfg.DateScanRows = def.DateScanRows
	}
	return &Engine{Config: cfg, Today: today}
}

// BatchSummary holds counts from a batch extraction run.
type BatchSummary struct {
	Extracted   int // files that yielded at least one assignment
	Empty       int // files that parsed but yielded nothing
	Failed      int // files that could not be read or parsed
	Assignments int // total assignments across all files
}

// Total returns the number of files processed.
func (s BatchSummary) Total() int {
	return s.Extracted + s.Empty + s.Failed
}

// HasFailures reports whether any file failed outright.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// FoundNothing distinguishes "parsed fine, zero assignments" from partial
// success, so callers can show a targeted message instead of an empty list.
func (s BatchSummary) FoundNothing() bool {
	return s.Failed == 0 && s.Assignments == 0
}

// ExtractAll processes each input file in order, writes one result YAML per
// file to plannerDir/extracted/, and prints per-file progress to w. Files
// are independent: an unreadable file is reported and the batch continues.
func (e *Engine) ExtractAll(paths []string, w io.Writer) (BatchSummary, []types.ExtractionResult) {
	outDir := filepath.Join(e.Config.PlannerDir, extractedDir)

	var summary BatchSummary
	var results []types.ExtractionResult

	for _, path := range paths {
		result, err := e.ExtractFile(path, w)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", filepath.Base(path), err)
			summary.Failed++
			results = append(results, types.ExtractionResult{
				SourceFile: filepath.Base(path),
				Error:      err.Error(),
			})
			continue
		}

		if err := writeResult(outDir, result); err != nil {
			fmt.Fprintf(w, "failed  %s: write error: %v\n", result.SourceFile, err)
			summary.Failed++
			continue
		}

		if len(result.Assignments) == 0 {
			fmt.Fprintf(w, "empty   %s: no assignments found, check the file\n", result.SourceFile)
			summary.Empty++
		} else {
			fmt.Fprintf(w, "extracted %s (%d assignments)\n", result.SourceFile, len(result.Assignments))
			summary.Extracted++
			summary.Assignments += len(result.Assignments)
		}
		results = append(results, result)
	}

	fmt.Fprintf(w, "\n%d assignments from %d file(s): %d extracted, %d empty, %d failed\n",
		summary.Assignments, summary.Total(), summary.Extracted, summary.Empty, summary.Failed)

	return summary, results
}

// ExtractFile loads one spreadsheet or CSV and runs per-sheet extraction.
// The returned result holds only plain assignment values; the workbook
// handle never leaves this function.
func (e *Engine) ExtractFile(path string, w io.Writer) (types.ExtractionResult, error) {
	wb, err := sheet.Load(path)
	if err != nil {
		return types.ExtractionResult{}, err
	}

	course := e.Config.Course
	if course == "" {
		course = sheet.CourseName(path)
	}
	if course == "" {
		course = types.DefaultCourse
	}

	single := len(wb.Sheets) == 1

	var records []types.Assignment
	for _, s := range wb.Sheets {
		records = append(records, e.extractSheet(s, single, course, filepath.Base(path), w)...)
	}

	return types.ExtractionResult{
		SourceFile:  filepath.Base(path),
		Course:      course,
		Assignments: Finalize(records, e.Today),
	}, nil
}

// extractSheet runs one sheet through format detection and the matching row
// extractor. A sheet whose structure defeats the heuristics badly enough to
// panic is logged and skipped; the remaining sheets still run.
func (e *Engine) extractSheet(s sheet.Sheet, single bool, course, sourceFile string, w io.Writer) (records []types.Assignment) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(w, "skipped sheet %q: %v\n", s.Name, r)
			records = nil
		}
	}()

	if c := sheet.SheetCourse(s.Name); c != "" {
		course = c
	}

	contextYear := e.Config.Year
	if contextYear == 0 {
		contextYear = e.Today.Year()
	}

	header, dataRows := splitHeader(s)

	if IsTimeline(s.Name, s.Rows, single, e.Config.HeuristicsConfig) {
		cm := ClassifyColumns(header, dataRows, e.Config.HeuristicsConfig)
		x := &timelineExtractor{
			cfg:         e.Config.HeuristicsConfig,
			course:      course,
			sourceFile:  sourceFile,
			contextYear: contextYear,
			today:       e.Today,
		}
		for _, row := range dataRows {
			records = append(records, x.extractRow(row, cm)...)
		}
		return records
	}

	x := newFlatExtractor(header, course, sourceFile, contextYear, e.Today, e.Config.HeuristicsConfig)
	for _, row := range dataRows {
		if a, ok := x.extractRow(row); ok {
			records = append(records, a)
		}
	}
	return records
}

// splitHeader separates the header row from the data rows. A first row that
// already carries a date is data, not a header; such sheets classify on an
// empty header and lean on the data-row date scan.
func splitHeader(s sheet.Sheet) ([]string, [][]string) {
	if len(s.Rows) == 0 {
		return nil, nil
	}
	for _, cell := range s.Rows[0] {
		if cell != "" && dates.IsDateLike(cell) {
			return nil, s.Rows
		}
	}
	return s.Rows[0], s.Rows[1:]
}

// writeResult marshals one file's extraction result to
// outDir/[stem]-assignments.yaml.
func writeResult(outDir string, result types.ExtractionResult) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	stem := strings.TrimSuffix(result.SourceFile, filepath.Ext(result.SourceFile))
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return os.WriteFile(filepath.Join(outDir, stem+"-assignments.yaml"), data, 0o644)
}
