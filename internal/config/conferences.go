package config

import "strings"

// Conference is an FBS conference as users name it (Code) and as schedules
// name it (ScheduleName).
type Conference struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	ScheduleName string `json:"schedule_name"`
}

// FBSConferences lists the FBS conferences in display order.
var FBSConferences = []Conference{
	{Code: "ACC", Name: "Atlantic Coast Conference", ScheduleName: "ACC"},
	{Code: "B12", Name: "Big 12 Conference", ScheduleName: "Big 12"},
	{Code: "B1G", Name: "Big Ten Conference", ScheduleName: "Big Ten"},
	{Code: "SEC", Name: "Southeastern Conference", ScheduleName: "SEC"},
	{Code: "PAC", Name: "Pac-12 Conference", ScheduleName: "Pac-12"},
	{Code: "AAC", Name: "American Athletic Conference", ScheduleName: "American Athletic"},
	{Code: "CUSA", Name: "Conference USA", ScheduleName: "Conference USA"},
	{Code: "IND", Name: "FBS Independents", ScheduleName: "FBS Independents"},
	{Code: "MAC", Name: "Mid-American Conference", ScheduleName: "Mid-American"},
	{Code: "MWC", Name: "Mountain West Conference", ScheduleName: "Mountain West"},
	{Code: "SBC", Name: "Sun Belt Conference", ScheduleName: "Sun Belt"},
}

// LookupConference finds a conference by code, ignoring case.
func LookupConference(code string) (Conference, bool) {
	code = strings.TrimSpace(code)
	for _, c := range FBSConferences {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return Conference{}, false
}

// ValidateConference returns the canonical code for input, which may be a
// code ("b1g") or part of a full name ("big ten").
func ValidateConference(input string) (string, bool) {
	if c, ok := LookupConference(input); ok {
		return c.Code, true
	}

	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return "", false
	}
	for _, c := range FBSConferences {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			return c.Code, true
		}
	}
	return "", false
}

// ConferenceAliases maps tracked codes to the conference names schedules
// use. Unknown codes pass through unchanged.
func ConferenceAliases(codes []string) []string {
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		if c, ok := LookupConference(code); ok {
			names = append(names, c.ScheduleName)
			continue
		}
		names = append(names, code)
	}
	return names
}
