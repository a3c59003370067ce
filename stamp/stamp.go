// Package stamp formats timestamps and elapsed durations for log lines.
package stamp

import (
	"fmt"
	"strings"
	"time"
)

// Options controls how a timestamp is rendered.
type Options struct {
	Brackets bool // surround the stamp in square brackets
	Micro    bool // include microseconds
	Offset   bool // include the UTC offset, e.g. -06:00
	Readable bool // use a space instead of 'T' between date and time
	Seconds  bool // include seconds
	UTC      bool // render in UTC rather than local time
}

// Default is the rendering used by files.Log: [2022-08-19 13:24:54 -06:00].
var Default = Options{Brackets: true, Offset: true, Readable: true, Seconds: true}

// Format renders t in ISO form with the given options.
func Format(t time.Time, o Options) string {
	if o.UTC {
		t = t.UTC()
	}
	layout := "2006-01-02T15:04"
	if o.Seconds {
		layout += ":05"
		if o.Micro {
			layout += ".000000"
		}
	}
	if o.Readable {
		layout = strings.Replace(layout, "T", " ", 1)
	}
	s := t.Format(layout)
	if o.Offset {
		if o.Readable {
			s += " "
		}
		s += t.Format("-07:00")
	}
	if o.Brackets {
		s = "[" + s + "]"
	}
	return s
}

// Now renders the current time with the given options.
func Now(o Options) string {
	return Format(time.Now(), o)
}

// Elapsed formats a duration as zero-padded day/hour/minute/second groups,
// e.g. "04d16h47m09s". Zero-valued groups are omitted and sep is inserted
// between the groups that remain. A zero duration is "0s".
func Elapsed(d time.Duration, sep string) string {
	secs := int64(d.Abs() / time.Second)
	if secs == 0 {
		return "0s"
	}
	days := secs / 86400
	hours := secs % 86400 / 3600
	mins := secs % 3600 / 60
	secs %= 60

	var groups []string
	if days > 0 {
		groups = append(groups, fmt.Sprintf("%02dd", days))
	}
	if hours > 0 {
		groups = append(groups, fmt.Sprintf("%02dh", hours))
	}
	if mins > 0 {
		groups = append(groups, fmt.Sprintf("%02dm", mins))
	}
	if secs > 0 {
		groups = append(groups, fmt.Sprintf("%02ds", secs))
	}
	return strings.Join(groups, sep)
}
