package badge

import "unicode"

// Pixel budgets for the two text lines of the badge.
const (
	TitleMaxWidth  = 220
	ArtistMaxWidth = 185

	// DefaultCharWidth is the estimated width of one glyph in pixels.
	DefaultCharWidth = 7

	ellipsis = "..."
)

// wideRanges covers CJK symbols and punctuation plus the halfwidth and
// fullwidth forms block.
var wideRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3000, Hi: 0x303f, Stride: 1},
		{Lo: 0xff00, Hi: 0xffef, Stride: 1},
	},
}

// CharWidth estimates the per-character width of text. Text containing any
// CJK ideograph or full-width punctuation is estimated at double width.
//
// This is an approximation, not text shaping: every rune of a string is
// assumed to render at the same width.
func CharWidth(text string) int {
	for _, r := range text {
		if unicode.In(r, unicode.Han, wideRanges) {
			return DefaultCharWidth * 2
		}
	}
	return DefaultCharWidth
}

// Truncate shortens text to fit maxWidth pixels using the script-aware
// CharWidth estimate.
func Truncate(text string, maxWidth int) string {
	return TruncateWidth(text, maxWidth, CharWidth(text))
}

// TruncateWidth shortens text to fit maxWidth pixels at charWidth pixels per
// character. Text that fits is returned unchanged; otherwise the result is
// exactly floor(maxWidth/charWidth) characters long, ending in "...".
func TruncateWidth(text string, maxWidth, charWidth int) string {
	if charWidth <= 0 {
		return text
	}

	runes := []rune(text)
	if len(runes)*charWidth <= maxWidth {
		return text
	}

	maxChars := maxWidth / charWidth
	if maxChars < 0 {
		maxChars = 0
	}

	dots := []rune(ellipsis)
	if maxChars <= len(dots) {
		return string(dots[:maxChars])
	}

	return string(runes[:maxChars-len(dots)]) + ellipsis
}
