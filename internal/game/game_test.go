package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string        { return &s }
func intPtr(i int) *int              { return &i }
func timePtr(t time.Time) *time.Time { return &t }

func sampleGame() Game {
	return Game{
		ID:             12345,
		Season:         2025,
		Week:           1,
		SeasonType:     Regular,
		StartDate:      timePtr(time.Date(2025, 8, 30, 19, 30, 0, 0, DefaultLocation)),
		ConferenceGame: true,
		HomeTeam:       "Michigan",
		HomeConference: strPtr("Big Ten"),
		AwayTeam:       "Ohio State",
		AwayConference: strPtr("Big Ten"),
		Venue:          strPtr("Michigan Stadium"),
		VenueCity:      strPtr("Ann Arbor"),
		VenueState:     strPtr("MI"),
		TVNetwork:      strPtr("ABC"),
	}
}

func TestGame_Matchup(t *testing.T) {
	assert.Equal(t, "Ohio State @ Michigan", sampleGame().Matchup())
}

func TestGame_IsCompleted(t *testing.T) {
	tests := []struct {
		name string
		home *int
		away *int
		want bool
	}{
		{"no scores", nil, nil, false},
		{"both scores", intPtr(28), intPtr(21), true},
		{"zero scores count", intPtr(0), intPtr(0), true},
		{"home only", intPtr(28), nil, false},
		{"away only", nil, intPtr(21), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := sampleGame()
			g.HomePoints = tt.home
			g.AwayPoints = tt.away
			assert.Equal(t, tt.want, g.IsCompleted())
		})
	}
}

func TestGame_Location(t *testing.T) {
	tests := []struct {
		name  string
		venue *string
		city  *string
		state *string
		want  *string
	}{
		{"all parts", strPtr("Michigan Stadium"), strPtr("Ann Arbor"), strPtr("MI"), strPtr("Michigan Stadium - Ann Arbor, MI")},
		{"venue only", strPtr("Rose Bowl"), nil, nil, strPtr("Rose Bowl")},
		{"city without state", nil, strPtr("Pasadena"), nil, strPtr("Pasadena")},
		{"nothing", nil, nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := sampleGame()
			g.Venue, g.VenueCity, g.VenueState = tt.venue, tt.city, tt.state
			assert.Equal(t, tt.want, g.Location())
		})
	}
}

func TestGame_InvolvesTeam(t *testing.T) {
	g := sampleGame()

	assert.True(t, g.InvolvesTeam("Michigan"))
	assert.True(t, g.InvolvesTeam("ohio state"))
	assert.True(t, g.InvolvesTeam("Ohio"), "abbreviated input matches canonical name")
	assert.True(t, g.InvolvesTeam("The Ohio State University Buckeyes"), "canonical name inside longer input")
	assert.False(t, g.InvolvesTeam("Alabama"))
	assert.False(t, g.InvolvesTeam(""))
}

func TestGame_InvolvesConference(t *testing.T) {
	g := sampleGame()

	assert.True(t, g.InvolvesConference("Big Ten"))
	assert.True(t, g.InvolvesConference("big ten"))
	assert.False(t, g.InvolvesConference("Big"), "conference match is exact, not substring")
	assert.False(t, g.InvolvesConference("SEC"))

	g.HomeConference, g.AwayConference = nil, nil
	assert.False(t, g.InvolvesConference("Big Ten"))
}

func TestGame_WithBroadcast(t *testing.T) {
	g := sampleGame()
	g.TVNetwork = nil

	withTV := g.WithBroadcast("ESPN")

	require.NotNil(t, withTV.TVNetwork)
	assert.Equal(t, "ESPN", *withTV.TVNetwork)
	assert.Nil(t, g.TVNetwork, "original must not be modified")
	assert.Nil(t, g.WithBroadcast("  ").TVNetwork)
}

func TestGame_WithVenue(t *testing.T) {
	g := sampleGame()
	g.VenueCity, g.VenueState = nil, nil

	located := g.WithVenue("Ann Arbor", "")

	require.NotNil(t, located.VenueCity)
	assert.Equal(t, "Ann Arbor", *located.VenueCity)
	assert.Nil(t, located.VenueState)
	assert.Nil(t, g.VenueCity)
}

func TestSeasonType_Title(t *testing.T) {
	assert.Equal(t, "Regular", Regular.Title())
	assert.Equal(t, "Postseason", Postseason.Title())
	assert.Equal(t, "", SeasonType("").Title())
}
