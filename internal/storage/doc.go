// Package storage provides JSON-based persistence for season snapshots.
//
// Each sync writes the games it fetched to snapshot_{season}.json in the data
// directory (by default ~/.local/share/cfb-tracker/). The next sync diffs
// against that file to report new, rescheduled and newly final games, and the
// schedule command can list games from it without calling the API.
package storage
