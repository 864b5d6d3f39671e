// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/syllabus-engine/internal/dates"
	"github.com/pdiddy/syllabus-engine/pkg/types"
)

// icsEscaper backslash-escapes the characters iCalendar treats as
// structural inside text values.
var icsEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\n", `\n`,
	"\r", "",
)

// newUID is swapped out in tests for deterministic output.
var newUID = uuid.NewString

// WriteICS renders assignments as an iCalendar file with one all-day event
// per record (DTSTART and DTEND both on the due date). Event text is short
// enough that 75-octet line folding is not applied.
func WriteICS(w io.Writer, assignments []types.Assignment, now time.Time) error {
	var b strings.Builder
	line := func(s string) { b.WriteString(s + "\r\n") }

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:-//syllabus-engine//EN")
	line("CALSCALE:GREGORIAN")

	stamp := now.UTC().Format("20060102T150405Z")

	for _, a := range assignments {
		due, ok := dates.Parse(a.DueDate, 0, 0)
		if !ok {
			continue
		}
		day := due.Format("20060102")

		line("BEGIN:VEVENT")
		line("UID:" + newUID())
		line("DTSTAMP:" + stamp)
		line("DTSTART;VALUE=DATE:" + day)
		line("DTEND;VALUE=DATE:" + day)
		line("SUMMARY:" + icsEscaper.Replace(a.Title))
		if a.Description != "" {
			line("DESCRIPTION:" + icsEscaper.Replace(a.Description))
		}
		line("LOCATION:" + icsEscaper.Replace(a.Course))
		line("CATEGORIES:" + icsEscaper.Replace(a.Type))
		line("END:VEVENT")
	}

	line("END:VCALENDAR")

	_, err := fmt.Fprint(w, b.String())
	return err
}
