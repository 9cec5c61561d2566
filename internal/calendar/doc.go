// Package calendar turns games into iCalendar documents.
//
// NewEvent and Synthesize map games to Event values; Encode serializes a
// Document as RFC 5545 text; Manager writes the per-team, per-conference and
// combined calendar files.
package calendar
