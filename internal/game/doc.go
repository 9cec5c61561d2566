// Package game provides the normalized college-football game model.
//
// Raw records from the CFBD API are converted into Game values by Normalize,
// which never fails: malformed optional fields degrade to absent values and a
// warning is logged. Optional data (scores, conferences, venue, broadcast) is
// held in pointers so that "absent" is never confused with zero or empty.
//
// The package also owns the matching predicates used by schedule filters,
// the season ordering used everywhere games are listed, and snapshot diffing
// between sync runs.
package game
