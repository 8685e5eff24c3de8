package badge

// BarConfig describes the visualizer bar layout. It is immutable once built;
// use NewBarConfig so ContainerWidth stays consistent with the other fields.
type BarConfig struct {
	NumBars        int
	GapSize        int
	BarWidth       int
	BarLength      int
	ContainerWidth int
}

// DefaultBarConfig is the layout every badge uses unless overridden.
var DefaultBarConfig = NewBarConfig(37, 2, 4, 6)

// NewBarConfig builds a BarConfig and computes its container width:
// numBars*barWidth + (numBars-1)*gapSize.
func NewBarConfig(numBars, gapSize, barWidth, barLength int) BarConfig {
	width := 0
	if numBars > 0 {
		width = numBars*barWidth + (numBars-1)*gapSize
	}
	return BarConfig{
		NumBars:        numBars,
		GapSize:        gapSize,
		BarWidth:       barWidth,
		BarLength:      barLength,
		ContainerWidth: width,
	}
}

// Positions returns the x offset of every bar when playing is true, and an
// empty slice otherwise so the renderer omits the animated bars.
func (c BarConfig) Positions(playing bool) []int {
	if !playing || c.NumBars <= 0 {
		return []int{}
	}

	step := c.BarWidth + c.GapSize
	positions := make([]int, c.NumBars)
	for i := range positions {
		positions[i] = i * step
	}
	return positions
}
