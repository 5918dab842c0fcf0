package rendering

import (
	"strings"
	"time"
)

const (
	monthLayout   = "2006-01"
	displayLayout = "Jan 2006"
	present       = "Present"
)

// FormatMonth turns a "YYYY-MM" value into "Jan 2006" form.
// Blank input gives "" and anything unparseable is returned unchanged.
func FormatMonth(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	t, err := time.Parse(monthLayout, value)
	if err != nil {
		return value
	}
	return t.Format(displayLayout)
}

// FormatRange renders a start/end pair as "Jan 2020 - Mar 2022".
// When current is set the end is "Present" regardless of end.
// Blank sides are dropped, so an entry with no dates renders "".
func FormatRange(start, end string, current bool) string {
	from := FormatMonth(start)
	to := FormatMonth(end)
	if current {
		to = present
	}

	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return to
	case to == "":
		return from
	default:
		return from + " - " + to
	}
}
