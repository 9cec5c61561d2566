package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/cfb-tracker/internal/calendar"
	"github.com/pfrederiksen/cfb-tracker/internal/game"
)

func main() {
	kickoff := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	venue, city, state := "Michigan Stadium", "Ann Arbor", "MI"
	bigTen, network := "Big Ten", "FOX"

	g := game.Game{
		ID:             401628374,
		Season:         2025,
		Week:           14,
		SeasonType:     game.Regular,
		StartDate:      &kickoff,
		ConferenceGame: true,
		HomeTeam:       "Michigan",
		HomeConference: &bigTen,
		AwayTeam:       "Ohio State",
		AwayConference: &bigTen,
		Venue:          &venue,
		VenueCity:      &city,
		VenueState:     &state,
		TVNetwork:      &network,
	}

	events := calendar.Synthesize([]game.Game{g}, calendar.DefaultSettings(), time.Now().UTC())
	icsContent := calendar.NewDocument("Sample Football Schedule", events).String()

	filename := "test-cfb-game.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
