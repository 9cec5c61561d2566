package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/cfb-tracker/internal/game"
)

const (
	ProdID   = "-//CFB Schedule Tracker//cfb-tracker//EN"
	Timezone = "America/New_York"

	// maxLineOctets is the RFC 5545 content line limit, excluding CRLF.
	maxLineOctets = 75
)

// Document is a VCALENDAR with its events
type Document struct {
	ProdID   string
	Name     string
	Timezone string
	Events   []Event
}

// NewDocument creates a calendar document with the standard header values.
func NewDocument(name string, events []Event) Document {
	return Document{
		ProdID:   ProdID,
		Name:     name,
		Timezone: Timezone,
		Events:   events,
	}
}

// String renders the document as iCalendar text.
func (d Document) String() string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	writeProperty(&ics, "PRODID", d.ProdID)
	writeProperty(&ics, "VERSION", "2.0")
	writeProperty(&ics, "CALSCALE", "GREGORIAN")
	writeProperty(&ics, "METHOD", "PUBLISH")
	if d.Name != "" {
		writeProperty(&ics, "X-WR-CALNAME", escapeICS(d.Name))
	}
	if d.Timezone != "" {
		writeProperty(&ics, "X-WR-TIMEZONE", d.Timezone)
	}

	for _, evt := range d.Events {
		writeEvent(&ics, evt)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

// Encode writes the document to w
func Encode(w io.Writer, doc Document) error {
	if _, err := io.WriteString(w, doc.String()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

func writeEvent(ics *strings.Builder, evt Event) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	writeProperty(ics, "UID", evt.UID)
	writeProperty(ics, "DTSTAMP", formatICSTime(evt.Stamp))
	writeProperty(ics, "CREATED", formatICSTime(evt.Created))

	if evt.AllDay {
		writeProperty(ics, "DTSTART;VALUE=DATE", formatICSDate(evt.Start))
		writeProperty(ics, "DTEND;VALUE=DATE", formatICSDate(evt.End))
	} else {
		writeProperty(ics, "DTSTART", formatICSTime(evt.Start))
		writeProperty(ics, "DTEND", formatICSTime(evt.End))
	}

	writeProperty(ics, "SUMMARY", escapeICS(evt.Summary))
	writeProperty(ics, "DESCRIPTION", escapeICS(evt.Description))
	if evt.Location != nil {
		writeProperty(ics, "LOCATION", escapeICS(*evt.Location))
	}
	if len(evt.Categories) > 0 {
		escaped := make([]string, 0, len(evt.Categories))
		for _, c := range evt.Categories {
			escaped = append(escaped, escapeICS(c))
		}
		writeProperty(ics, "CATEGORIES", strings.Join(escaped, ","))
	}

	if evt.Reminder != nil {
		ics.WriteString("BEGIN:VALARM\r\n")
		writeProperty(ics, "ACTION", "DISPLAY")
		writeProperty(ics, "DESCRIPTION", escapeICS(evt.ReminderText))
		writeProperty(ics, "TRIGGER", formatTrigger(*evt.Reminder))
		ics.WriteString("END:VALARM\r\n")
	}

	ics.WriteString("END:VEVENT\r\n")
}

// writeProperty writes one content line, folded at 75 octets.
// Continuation lines start with a single space.
func writeProperty(ics *strings.Builder, name, value string) {
	line := name + ":" + value
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		ics.WriteString(line[:cut])
		ics.WriteString("\r\n ")
		line = line[cut:]
		limit = maxLineOctets - 1
	}
	ics.WriteString(line)
	ics.WriteString("\r\n")
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatICSDate formats the calendar date of t in the schedule's home zone.
func formatICSDate(t time.Time) string {
	return t.In(game.DefaultLocation).Format("20060102")
}

// formatTrigger renders a negative offset as "-PT{n}M".
func formatTrigger(offset time.Duration) string {
	minutes := int(offset / time.Minute)
	if minutes < 0 {
		return fmt.Sprintf("-PT%dM", -minutes)
	}
	return fmt.Sprintf("PT%dM", minutes)
}

// escapeICS escapes special characters for iCalendar text values
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
