package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamMatches(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Michigan", "Michigan", true},
		{"michigan", "MICHIGAN", true},
		{"Ohio", "Ohio State", true},
		{"Michigan", "Michigan State", true},
		{"Texas", "Texas A&M", true},
		{"Alabama", "Auburn", false},
		{"", "Auburn", false},
		{"  ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, TeamMatches(tt.a, tt.b))
			assert.Equal(t, TeamMatches(tt.a, tt.b), TeamMatches(tt.b, tt.a), "matching must be symmetric")
		})
	}
}

func TestConferenceMatches(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"SEC", "SEC", true},
		{"sec", "SEC", true},
		{"Big Ten", "big ten", true},
		{"Big", "Big Ten", false},
		{"Big 12", "Big Ten", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, ConferenceMatches(tt.a, tt.b))
		})
	}
}
