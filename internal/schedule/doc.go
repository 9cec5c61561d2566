// Package schedule assembles a season's games from the CFBD source.
//
// FetchSeason runs the whole pipeline: it fetches regular-season and
// postseason records, normalizes them, attaches broadcast and venue details,
// filters by team and conference, and sorts the result. Every step after the
// fetches is a pure function exported on its own so callers can reuse it on
// games they already hold.
//
// Only a failed regular-season fetch (or a postseason fetch that never
// reached the API) fails the call. Missing postseason data, broadcast data and
// venue data degrade the result and are logged as warnings.
package schedule
