// Package render turns log events into the text written to artifacts.
package render

import (
	"strings"
	"time"

	"github.com/printx/pxologs/internal/logservice"
)

const (
	// DateLayout matches the en-US locale date, e.g. 1/2/2006.
	DateLayout = "1/2/2006"
	// TimeLayout matches the en-US locale time, e.g. 3:04:05 PM.
	TimeLayout = "3:04:05 PM"
)

// Render formats every event as "<date> <time> - <message>" and concatenates them in order.
// Messages carry their own line terminators so no separator is added.
// A nil loc renders in the local time zone.
func Render(events []logservice.LogEvent, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder
	for _, e := range events {
		ts := time.UnixMilli(e.Timestamp).In(loc)
		b.WriteString(ts.Format(DateLayout))
		b.WriteByte(' ')
		b.WriteString(ts.Format(TimeLayout))
		b.WriteString(" - ")
		b.WriteString(strings.TrimPrefix(e.Message, "\n"))
	}
	return b.String()
}
