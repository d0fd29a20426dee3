package logger

import (
	"bytes"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultFieldSeparator  = " | "
	defaultTimestampFormat = time.RFC3339
)

// LevelNameDisplayMode controls which log levels print their level name.
type LevelNameDisplayMode int

const (
	// ShowAll prints the level name for every entry.
	ShowAll LevelNameDisplayMode = iota
	// ShowAboveWarn prints the level name for WARN and above.
	ShowAboveWarn
	// HideAll never prints level names.
	HideAll
)

// Formatter implements logrus.Formatter with ordered execution-scope fields.
type Formatter struct {
	// TimestampFormat specifies the timestamp layout. Default: time.RFC3339.
	TimestampFormat string
	// NoColors disables ANSI color codes around the level name.
	NoColors bool
	// DisableTimestamp drops the timestamp entirely.
	DisableTimestamp bool
	// DisplayLevelName controls when level names are printed.
	DisplayLevelName LevelNameDisplayMode
	// FieldsDisplayWithOrder lists field keys to print first, in order.
	// Remaining fields follow alphabetically.
	FieldsDisplayWithOrder []string
	// FieldSeparator separates printed fields. Default " | ".
	FieldSeparator string
	// DisableCaller drops caller information even when the logger reports it.
	DisableCaller bool
	// CustomCallerFormatter overrides the default caller rendering.
	CustomCallerFormatter func(*runtime.Frame) string
}

// Format renders a single log entry.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := &bytes.Buffer{}

	if !f.DisableTimestamp {
		layout := f.TimestampFormat
		if layout == "" {
			layout = defaultTimestampFormat
		}
		b.WriteString(entry.Time.Format(layout))
		b.WriteString(" ")
	}

	if f.showLevel(entry.Level) {
		if !f.NoColors {
			fmt.Fprintf(b, "\x1b[%dm", colorByLevel(entry.Level))
		}
		level := strings.ToUpper(entry.Level.String())
		if len(level) > 4 {
			level = level[:4]
		}
		fmt.Fprintf(b, "[%s]", level)
		if !f.NoColors {
			b.WriteString("\x1b[0m")
		}
		b.WriteString(" ")
	}

	if len(entry.Data) > 0 {
		b.WriteString("[")
		f.writeFields(b, entry)
		b.WriteString("] ")
	}

	b.WriteString(entry.Message)

	if !f.DisableCaller && entry.HasCaller() {
		b.WriteString(" ")
		if f.CustomCallerFormatter != nil {
			b.WriteString(f.CustomCallerFormatter(entry.Caller))
		} else {
			fmt.Fprintf(b, "(%s:%d)", entry.Caller.File, entry.Caller.Line)
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func (f *Formatter) showLevel(level logrus.Level) bool {
	switch f.DisplayLevelName {
	case ShowAboveWarn:
		return level <= logrus.WarnLevel
	case HideAll:
		return false
	default:
		return true
	}
}

func (f *Formatter) writeFields(b *bytes.Buffer, entry *logrus.Entry) {
	separator := f.FieldSeparator
	if separator == "" {
		separator = defaultFieldSeparator
	}

	written := 0
	ordered := make(map[string]bool, len(f.FieldsDisplayWithOrder))
	for _, key := range f.FieldsDisplayWithOrder {
		value, ok := entry.Data[key]
		if !ok {
			continue
		}
		if written > 0 {
			b.WriteString(separator)
		}
		fmt.Fprintf(b, "%s:%v", key, value)
		ordered[key] = true
		written++
	}

	rest := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if !ordered[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		if written > 0 {
			b.WriteString(separator)
		}
		fmt.Fprintf(b, "%s:%v", key, entry.Data[key])
		written++
	}
}

func colorByLevel(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return colorBlue
	case logrus.WarnLevel:
		return colorYellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return colorRed
	default:
		return colorGray
	}
}

const (
	colorRed    = 31
	colorYellow = 33
	colorBlue   = 36
	colorGray   = 37
)
