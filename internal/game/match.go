package game

import "strings"

// TeamMatches reports whether two team names refer to the same team under
// bidirectional, case-insensitive substring containment: "ohio st" matches
// "Ohio State" and vice versa.
//
// The rule tolerates abbreviations in user input at the cost of false
// positives for very short names ("Miami" matches "Miami (OH)"). Blank names
// never match.
func TeamMatches(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// ConferenceMatches reports whether two conference names are equal, ignoring
// case. Unlike team matching there is no substring rule: conference codes are
// a closed set.
func ConferenceMatches(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
