// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet loads spreadsheet workbooks and delimited text files into a
// uniform in-memory row grid. The extraction engine only ever sees this
// grid; no excelize handle crosses the package boundary.
// Implements: prd002-extraction R2.1-R2.3; docs/ARCHITECTURE § Ingestion.
package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is one named grid of raw cell values. Cells are strings exactly as
// the source format yields them: formatted text from CSV, raw stored values
// (including date serial numbers) from xlsx.
type Sheet struct {
	Name string
	Rows [][]string
}

// Header returns the first row, or nil for an empty sheet.
func (s Sheet) Header() []string {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[0]
}

// DataRows returns every row after the header.
func (s Sheet) DataRows() [][]string {
	if len(s.Rows) < 2 {
		return nil
	}
	return s.Rows[1:]
}

// Workbook is a fully loaded input file. The whole file is read up front:
// the extraction heuristics need random access to all rows because later
// rows inherit date context from earlier ones.
type Workbook struct {
	// Path is the source file path.
	Path string

	// Sheets holds every non-empty sheet in file order.
	Sheets []Sheet
}

// Load reads path into a Workbook. The format is chosen by extension:
// .xlsx/.xlsm via excelize, anything else as delimited text.
func Load(path string) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadExcel(path)
	default:
		return loadCSV(path)
	}
}

// loadExcel reads every sheet with raw cell values, so dates surface as
// serial numbers rather than locale-formatted strings.
func loadExcel(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	wb := &Workbook{Path: path}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			// A single unreadable sheet does not fail the workbook.
			continue
		}
		if len(rows) == 0 {
			continue
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}

	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("workbook %s contains no readable sheets", path)
	}
	return wb, nil
}

// loadCSV reads a delimited text file as a single unnamed sheet.
func loadCSV(path string) (*Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	return &Workbook{
		Path:   path,
		Sheets: []Sheet{{Name: stem(path), Rows: rows}},
	}, nil
}

// courseCodeRe matches course codes like "CMP168", "MAT 210", or "BIO-101".
var courseCodeRe = regexp.MustCompile(`(?i)\b([a-z]{2,4})[\s-]?(\d{3})\b`)

// CourseName derives a course name from a file path: the file stem with
// separators normalized to spaces. "CMP168_Schedule.xlsx" becomes
// "CMP168 Schedule".
func CourseName(path string) string {
	name := stem(path)
	name = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	return name
}

// SheetCourse extracts a course code from a sheet name, or "" when the name
// carries none. A sheet named after a course overrides the filename-derived
// course for that sheet.
func SheetCourse(sheetName string) string {
	m := courseCodeRe.FindStringSubmatch(sheetName)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1]) + m[2]
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
