package cfbd

// RefCache memoizes reference lists (teams per classification and the
// conference list) for the lifetime of a Client. It is not safe for
// concurrent use.
type RefCache struct {
	teams          map[string][]Team
	conferences    []Conference
	hasConferences bool
}

// NewRefCache creates an empty cache
func NewRefCache() *RefCache {
	return &RefCache{teams: make(map[string][]Team)}
}

// Teams returns the cached teams for a classification.
func (c *RefCache) Teams(classification string) ([]Team, bool) {
	teams, ok := c.teams[classification]
	return teams, ok
}

// SetTeams stores the teams for a classification. An empty list is cached too.
func (c *RefCache) SetTeams(classification string, teams []Team) {
	c.teams[classification] = teams
}

// Conferences returns the cached conference list.
func (c *RefCache) Conferences() ([]Conference, bool) {
	return c.conferences, c.hasConferences
}

// SetConferences stores the conference list.
func (c *RefCache) SetConferences(conferences []Conference) {
	c.conferences = conferences
	c.hasConferences = true
}

// Invalidate drops every cached list
func (c *RefCache) Invalidate() {
	c.teams = make(map[string][]Team)
	c.conferences = nil
	c.hasConferences = false
}
