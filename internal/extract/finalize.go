// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"sort"
	"time"

	"github.com/pdiddy/syllabus-engine/internal/dates"
	"github.com/pdiddy/syllabus-engine/pkg/types"
)

// Finalize validates, deduplicates, and sorts extraction candidates.
// Malformed records (empty title, unparseable due date) and past-due
// records are dropped silently; a bad record never aborts the batch.
// Duplicates collapse on the (title, due date, course) identity with the
// first occurrence winning. The result is sorted by ascending due date,
// stable within a day. Running Finalize on its own output is a no-op.
func Finalize(records []types.Assignment, today time.Time) []types.Assignment {
	seen := make(map[string]bool, len(records))
	due := make(map[string]time.Time, len(records))

	var out []types.Assignment
	for _, a := range records {
		if a.Title == "" {
			continue
		}
		d, ok := dates.Parse(a.DueDate, 0, 0)
		if !ok || dates.IsPastDue(d, today) {
			continue
		}
		if a.Course == "" {
			a.Course = types.DefaultCourse
		}
		key := a.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		due[key] = d
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return due[out[i].Key()].Before(due[out[j].Key()])
	})
	return out
}
