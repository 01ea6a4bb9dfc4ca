// Package timeparsing parses the date/time strings missions are scheduled with.
//
// Stored mission dates are parsed with ParseInstant, which only accepts
// absolute layouts. User input goes through ParseInput, which additionally
// understands compact durations (+6h, 2d) and natural language
// ("tomorrow 5pm", "next friday at noon").
package timeparsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// CanonicalLayout is the layout ParseInput normalizes relative input to.
const CanonicalLayout = time.RFC3339

// zonedLayouts carry their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// localLayouts are interpreted in the local time zone, matching how a
// datetime-local form field is read.
var localLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseInstant parses an absolute mission date.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// IsValidInstant reports whether s parses as an absolute mission date.
func IsValidInstant(s string) bool {
	_, err := ParseInstant(s)
	return err == nil
}

// compactDurationRe matches compact duration patterns: [+-]?(\d+)([smhdw])
var compactDurationRe = regexp.MustCompile(`^([+-]?)(\d+)([smhdw])$`)

// ParseCompactDuration parses "+90s", "+6h", "2d", "-1w" relative to now.
func ParseCompactDuration(s string, now time.Time) (time.Time, error) {
	matches := compactDurationRe.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return time.Time{}, fmt.Errorf("not a compact duration: %q", s)
	}

	amount, err := strconv.Atoi(matches[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid duration amount: %q", matches[2])
	}
	if matches[1] == "-" {
		amount = -amount
	}

	switch matches[3] {
	case "s":
		return now.Add(time.Duration(amount) * time.Second), nil
	case "m":
		return now.Add(time.Duration(amount) * time.Minute), nil
	case "h":
		return now.Add(time.Duration(amount) * time.Hour), nil
	case "d":
		return now.AddDate(0, 0, amount), nil
	default: // "w"
		return now.AddDate(0, 0, amount*7), nil
	}
}

var naturalParser = newNaturalParser()

func newNaturalParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseInput turns user input into a date string suitable for a mission.
// Absolute dates are returned unchanged so they round-trip verbatim; relative
// and natural-language input is resolved against now and rendered in
// CanonicalLayout.
func ParseInput(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty date")
	}
	if IsValidInstant(s) {
		return s, nil
	}
	if t, err := ParseCompactDuration(s, now); err == nil {
		return t.Format(CanonicalLayout), nil
	}

	r, err := naturalParser.Parse(s, now)
	if err != nil {
		return "", fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	if r == nil {
		return "", fmt.Errorf("unrecognized date %q", s)
	}
	return r.Time.Format(CanonicalLayout), nil
}
