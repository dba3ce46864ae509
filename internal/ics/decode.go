// Package ics fetches and decodes iCalendar feeds into calendar events.
// Only the properties the conversion pipeline reads are decoded; the rest
// of RFC 5545 (recurrence, timezones beyond UTC, alarms) is ignored.
package ics

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/claude/runsync/internal/models"
)

// Decode parses an iCalendar stream into events. VEVENT components are
// read for UID, SUMMARY, DESCRIPTION and DTSTART; everything else is
// skipped. A malformed DTSTART is an error so feed problems surface to
// the caller instead of producing half-parsed events.
func Decode(r io.Reader) ([]models.Event, error) {
	lines, err := unfold(r)
	if err != nil {
		return nil, fmt.Errorf("reading calendar: %w", err)
	}

	var events []models.Event
	var cur *models.Event

	for _, line := range lines {
		switch {
		case line == "BEGIN:VEVENT":
			cur = &models.Event{}
		case line == "END:VEVENT":
			if cur != nil {
				events = append(events, *cur)
				cur = nil
			}
		case cur != nil:
			name, value := splitProperty(line)
			switch name {
			case "UID":
				cur.UID = value
			case "SUMMARY":
				cur.Summary = unescapeText(value)
			case "DESCRIPTION":
				cur.Description = unescapeText(value)
			case "DTSTART":
				t, err := parseDateTime(value)
				if err != nil {
					return nil, fmt.Errorf("parsing DTSTART %q: %w", value, err)
				}
				cur.Start = t
			}
		}
	}

	return events, nil
}

// unfold reads physical lines and joins RFC 5545 continuations: a line
// starting with a space or tab extends the previous line.
func unfold(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// splitProperty separates a content line into its upper-cased property
// name (parameters stripped) and value.
func splitProperty(line string) (name, value string) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", ""
	}
	name, value = line[:idx], line[idx+1:]
	if semi := strings.Index(name, ";"); semi >= 0 {
		name = name[:semi]
	}
	return strings.ToUpper(name), value
}

// dtstartLayouts are the DTSTART shapes seen in training-calendar feeds:
// UTC datetime, floating datetime, and date-only (all-day events).
var dtstartLayouts = []string{
	"20060102T150405Z",
	"20060102T150405",
	"20060102",
}

func parseDateTime(value string) (time.Time, error) {
	for _, layout := range dtstartLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

// unescapeText reverses RFC 5545 text escaping: \n, \, \; and \\.
func unescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		case ',', ';', '\\':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
