package game

import "sort"

// Sort orders games in place by start date, then week. Games without a
// start date sort as if they kicked off at the latest possible moment, so
// they follow every dated game and are ordered among themselves by week.
// The sort is stable: ties keep their input order.
func Sort(games []Game) {
	sort.SliceStable(games, func(i, j int) bool {
		return Less(games[i], games[j])
	})
}

// Less reports whether a sorts before b in season order.
func Less(a, b Game) bool {
	switch {
	case a.StartDate != nil && b.StartDate != nil:
		if !a.StartDate.Equal(*b.StartDate) {
			return a.StartDate.Before(*b.StartDate)
		}
	case a.StartDate != nil:
		return true
	case b.StartDate != nil:
		return false
	}
	return a.Week < b.Week
}
