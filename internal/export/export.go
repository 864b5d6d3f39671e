// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes normalized assignment records into external
// planning-tool formats: planner CSV, iCalendar, and a generic CSV dump.
// Implements: prd004-export (R1-R3); docs/ARCHITECTURE § Export.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/syllabus-engine/pkg/types"
)

// Write renders assignments in the selected format.
func Write(w io.Writer, format types.ExportFormat, assignments []types.Assignment, now time.Time) error {
	switch format {
	case types.FormatPlannerCSV:
		return WritePlannerCSV(w, assignments)
	case types.FormatICS:
		return WriteICS(w, assignments, now)
	case types.FormatCSV, "":
		return WriteCSV(w, assignments)
	default:
		return fmt.Errorf("unsupported format %q: use planner-csv, ics, or csv", format)
	}
}
