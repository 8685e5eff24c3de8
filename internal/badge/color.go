package badge

import (
	"regexp"
	"strings"
)

// AutoColor asks for the bar color to be derived from the cover art.
const AutoColor = "auto"

var (
	bareHexColor = regexp.MustCompile(`^(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	hexColor     = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	rgbColor     = regexp.MustCompile(`^rgb\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*\)$`)
	namedColor   = regexp.MustCompile(`^[a-z]+$`)
)

// ParseColor validates a caller-supplied CSS color. It accepts 3 or 6 digit
// hex codes with or without a leading '#', rgb(r,g,b) with up to three digits
// per component, and bare lowercase color keywords. A bare hex code is
// returned with '#' prepended. The second result is false for anything else.
//
// AutoColor ("auto") passes as a keyword here, but the presenter reserves
// it for bar colors and derives the color from the cover art instead.
func ParseColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	if bareHexColor.MatchString(s) {
		s = "#" + s
	}

	switch {
	case hexColor.MatchString(s), rgbColor.MatchString(s), namedColor.MatchString(s):
		return s, true
	default:
		return "", false
	}
}
