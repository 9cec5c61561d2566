package cfbd

import (
	"sort"
	"strings"
)

// ResolveTeam maps user input to a canonical school name from teams.
//
// Matching is case-insensitive and tried in three passes so that a more
// specific match always beats a looser one:
//  1. exact school name
//  2. exact mascot ("Wolverines" -> "Michigan")
//  3. input contained in the school name ("Ohio" -> "Ohio State")
//
// Within a pass the first team in list order wins.
func ResolveTeam(teams []Team, name string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return "", false
	}

	for _, t := range teams {
		if strings.ToLower(t.School) == needle {
			return t.School, true
		}
	}
	for _, t := range teams {
		if t.Mascot != nil && strings.ToLower(*t.Mascot) == needle {
			return t.School, true
		}
	}
	for _, t := range teams {
		if strings.Contains(strings.ToLower(t.School), needle) {
			return t.School, true
		}
	}
	return "", false
}

// TeamNames returns the sorted school names of teams.
func TeamNames(teams []Team) []string {
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.School)
	}
	sort.Strings(names)
	return names
}

// TeamsInConference returns the teams whose conference equals conference,
// ignoring case.
func TeamsInConference(teams []Team, conference string) []Team {
	var out []Team
	for _, t := range teams {
		if t.Conference != nil && strings.EqualFold(*t.Conference, conference) {
			out = append(out, t)
		}
	}
	return out
}
