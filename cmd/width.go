package cmd

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// padToWidth fits text into exactly width display columns, padding with
// spaces or truncating with "...". Wide runes (CJK, emoji) count as two
// columns. A width <= 0 leaves text unchanged.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	w := runewidth.StringWidth(text)
	switch {
	case w == width:
		return text
	case w < width:
		return text + strings.Repeat(" ", width-w)
	}

	if width <= runewidth.StringWidth(ellipsis) {
		return runewidth.Truncate(ellipsis, width, "")
	}

	// Truncate may stop short of the limit before a wide rune.
	out := runewidth.Truncate(text, width, ellipsis)
	return out + strings.Repeat(" ", width-runewidth.StringWidth(out))
}

// marqueeText scrolls text that does not fit in width. The visible
// window is derived from now, so successive status bar refreshes show
// the text moving by speed runes per second; text that fits is padded
// instead.
func marqueeText(text string, width, speed int, separator string, now time.Time) string {
	if width <= 0 {
		return text
	}
	if runewidth.StringWidth(text) <= width {
		return padToWidth(text, width)
	}

	loop := []rune(text + separator)
	offset := int((now.Unix() * int64(speed)) % int64(len(loop)))
	if offset < 0 {
		offset += len(loop)
	}

	var b strings.Builder
	used := 0
	for i := 0; used < width && i < len(loop)*2; i++ {
		r := loop[(offset+i)%len(loop)]
		rw := runewidth.RuneWidth(r)
		if used+rw > width {
			break
		}
		b.WriteRune(r)
		used += rw
	}

	return b.String() + strings.Repeat(" ", width-used)
}
