package tui

import "github.com/mattn/go-runewidth"

// truncateEnd shortens s to at most limit terminal cells, appending an
// ellipsis if truncation occurs. Wide runes (CJK, emoji) count as two.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= limit {
		return s
	}
	if limit <= 1 {
		return "…"
	}
	return runewidth.Truncate(s, limit, "…")
}

// truncateMiddle shortens s to at most limit cells by preserving the start
// and end of the string with a single ellipsis in the middle.
// Pane titles keep both the service name and the channel.
func truncateMiddle(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= limit {
		return s
	}
	if limit <= 1 {
		return "…"
	}

	keep := limit - 1
	left := keep / 2
	right := keep - left

	r := []rune(s)
	head := runewidth.Truncate(s, left, "")
	tail := ""
	w := 0
	for i := len(r) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(r[i])
		if w+rw > right {
			break
		}
		w += rw
		tail = string(r[i]) + tail
	}
	return head + "…" + tail
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
