package notifier

import (
	"context"
	"fmt"
	"io"

	"github.com/pfrederiksen/cfb-tracker/internal/game"
)

// DryRunNotifier prints the digest that would be sent without posting it
type DryRunNotifier struct {
	w io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to w
func NewDryRunNotifier(w io.Writer) *DryRunNotifier {
	return &DryRunNotifier{w: w}
}

// Notify prints the digest
func (n *DryRunNotifier) Notify(ctx context.Context, season int, changes *game.DiffResult) error {
	if changes == nil || changes.IsEmpty() {
		return nil
	}
	digest := FormatDigest(season, changes)
	fmt.Fprintln(n.w, "--- Notification (dry run) ---")
	fmt.Fprintln(n.w, digest)
	fmt.Fprintf(n.w, "(Length: %d characters)\n", len([]rune(digest)))
	return nil
}
