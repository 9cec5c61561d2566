// Package cfbd is a small client for the College Football Data API (v2).
//
// It fetches raw game, broadcast, venue, team, conference and calendar
// records. Normalization into game.Game happens in the game and schedule
// packages; this package only moves bytes and reports upstream failures as
// *APIError values.
//
// Team and conference lists change rarely, so the client memoizes them in a
// RefCache for the lifetime of the process. Call Client.Cache().Invalidate()
// to force a refetch.
package cfbd
