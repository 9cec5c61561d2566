package notifier

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/pfrederiksen/cfb-tracker/internal/game"
)

// maxDigestGames caps each digest section.
const maxDigestGames = 15

// Notifier defines the interface for posting schedule change notifications
type Notifier interface {
	// Notify posts a digest of changes for season. An empty diff posts nothing.
	Notify(ctx context.Context, season int, changes *game.DiffResult) error
}

// FormatDigest formats changes as a Telegram HTML message
func FormatDigest(season int, changes *game.DiffResult) string {
	var msg strings.Builder

	total := len(changes.NewGames) + len(changes.Rescheduled) + len(changes.Final)
	msg.WriteString(fmt.Sprintf("🏈 <b>%d College Football Schedule Update</b>\n", season))
	msg.WriteString(fmt.Sprintf("%d change%s since the last sync\n", total, pluralize(total)))

	writeSection(&msg, "🆕 New games", changes.NewGames, false)
	writeSection(&msg, "🕒 Rescheduled", changes.Rescheduled, false)
	writeSection(&msg, "✅ Final", changes.Final, true)

	return msg.String()
}

func writeSection(msg *strings.Builder, title string, games []game.Game, scores bool) {
	if len(games) == 0 {
		return
	}

	msg.WriteString(fmt.Sprintf("\n<b>%s</b> (%d)\n", title, len(games)))
	for i, g := range games {
		if i == maxDigestGames {
			msg.WriteString(fmt.Sprintf("  … and %d more\n", len(games)-maxDigestGames))
			break
		}
		msg.WriteString("  • " + html.EscapeString(g.Matchup()))
		if scores && g.IsCompleted() {
			msg.WriteString(fmt.Sprintf(" %d-%d", *g.AwayPoints, *g.HomePoints))
		} else {
			msg.WriteString(" (" + formatKickoff(g) + ")")
		}
		msg.WriteString("\n")
	}
}

func formatKickoff(g game.Game) string {
	if g.StartDate == nil {
		return "date TBD"
	}
	local := g.StartDate.In(game.DefaultLocation)
	if g.StartTimeTBD {
		return local.Format("Mon Jan 2") + ", time TBD"
	}
	return local.Format("Mon Jan 2 3:04 PM MST")
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
