package game

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawGame is a game record as returned by the CFBD /games endpoint.
// Only the fields the tracker uses are decoded.
type RawGame struct {
	ID             int        `json:"id"`
	Season         int        `json:"season"`
	Week           int        `json:"week"`
	SeasonType     EnumString `json:"seasonType"`
	StartDate      *string    `json:"startDate"`
	StartTimeTBD   bool       `json:"startTimeTBD"`
	NeutralSite    bool       `json:"neutralSite"`
	ConferenceGame bool       `json:"conferenceGame"`
	VenueID        *int       `json:"venueId"`
	Venue          *string    `json:"venue"`
	HomeTeam       string     `json:"homeTeam"`
	HomeConference *string    `json:"homeConference"`
	HomePoints     *int       `json:"homePoints"`
	AwayTeam       string     `json:"awayTeam"`
	AwayConference *string    `json:"awayConference"`
	AwayPoints     *int       `json:"awayPoints"`
	Notes          *string    `json:"notes"`
}

// UnmarshalJSON implements json.Unmarshaler. A startDate that is not a JSON
// string is kept as its raw text so Normalize can drop it with a warning
// instead of failing the whole response.
func (r *RawGame) UnmarshalJSON(data []byte) error {
	type plain RawGame
	aux := struct {
		*plain
		StartDate json.RawMessage `json:"startDate"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.StartDate = rawDateText(aux.StartDate)
	return nil
}

func rawDateText(data json.RawMessage) *string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if data[0] == '"' && json.Unmarshal(data, &s) == nil {
		return &s
	}
	s = string(data)
	return &s
}

// RawMedia is a broadcast record from the CFBD /games/media endpoint.
type RawMedia struct {
	ID        int     `json:"id"`
	MediaType string  `json:"mediaType"`
	Outlet    *string `json:"outlet"`
}

// RawVenue is a venue record from the CFBD /venues endpoint.
type RawVenue struct {
	ID    int     `json:"id"`
	Name  *string `json:"name"`
	City  *string `json:"city"`
	State *string `json:"state"`
}

// EnumString decodes an enum-like value that upstream may send either as a
// plain string ("regular") or as an object carrying the value
// ({"value": "regular"}). Both forms decode to the plain string.
type EnumString string

// UnmarshalJSON implements json.Unmarshaler.
func (e *EnumString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = EnumString(s)
		return nil
	}

	var obj struct {
		Value *string `json:"value"`
		Name  *string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding enum value %s: %w", data, err)
	}
	switch {
	case obj.Value != nil:
		*e = EnumString(*obj.Value)
	case obj.Name != nil:
		*e = EnumString(*obj.Name)
	default:
		*e = ""
	}
	return nil
}

// Broadcasts maps game IDs to their broadcast outlet. Records without an ID
// or outlet are ignored; when a game has several outlets the last one wins.
func Broadcasts(media []RawMedia) map[int]string {
	out := make(map[int]string, len(media))
	for _, m := range media {
		if m.ID == 0 || m.Outlet == nil || *m.Outlet == "" {
			continue
		}
		out[m.ID] = *m.Outlet
	}
	return out
}
