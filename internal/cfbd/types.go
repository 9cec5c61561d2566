package cfbd

import "time"

// Team represents a team record from the /teams endpoint
type Team struct {
	ID             int      `json:"id"`
	School         string   `json:"school"`
	Mascot         *string  `json:"mascot"`
	Abbreviation   *string  `json:"abbreviation"`
	AlternateNames []string `json:"alternateNames"`
	Conference     *string  `json:"conference"`
	Classification *string  `json:"classification"`
}

// Conference represents a conference record from the /conferences endpoint
type Conference struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	ShortName      *string `json:"shortName"`
	Abbreviation   *string `json:"abbreviation"`
	Classification *string `json:"classification"`
}

// CalendarWeek is one week of a season from the /calendar endpoint
type CalendarWeek struct {
	Season     int       `json:"season"`
	Week       int       `json:"week"`
	SeasonType string    `json:"seasonType"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
}

// Contains reports whether t falls inside the week.
func (w CalendarWeek) Contains(t time.Time) bool {
	return !t.Before(w.StartDate) && !t.After(w.EndDate)
}

// WeekAt returns the calendar week containing t, if any.
func WeekAt(weeks []CalendarWeek, t time.Time) (CalendarWeek, bool) {
	for _, w := range weeks {
		if w.Contains(t) {
			return w, true
		}
	}
	return CalendarWeek{}, false
}
