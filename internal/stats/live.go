package stats

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wlactions/internal/model"
)

// StatusLine renders the live counter line. A positive width truncates and
// right-pads the line so it fully overwrites whatever the previous refresh
// left behind.
func StatusLine(snap model.Snapshot, width int) string {
	line := fmt.Sprintf("Keys: %d | Clicks: %d | Scrolls: %d | Touch: %d | Total: %d",
		snap.KeyPresses, snap.ButtonClicks, snap.ScrollSteps, snap.TouchTaps, snap.Total())
	if width > 0 {
		line = runewidth.Truncate(line, width, "…")
		line = runewidth.FillRight(line, width)
	}
	return line
}
