// Package cli implements the command-line interface for cfb-tracker.
//
// The cli package provides the Cobra-based CLI: configuring the API key and
// tracked teams, syncing a season into calendar files, viewing the schedule
// (text/JSON), and serving the generated calendars over HTTP. It coordinates
// the config, cfbd, schedule, calendar, storage and server packages.
package cli
