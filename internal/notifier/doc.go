// Package notifier reports schedule changes found by a sync.
//
// A digest lists new games, rescheduled games and newly final games. The
// Telegram notifier posts it to a chat through the Bot API; the dry-run
// notifier prints it instead.
package notifier
