package scene

import "github.com/vovakirdan/tapcolour/internal/core"

// Tile geometry
const (
	tileGap       = 2 // Cells between tiles
	tileMaxHeight = 7
	sideMargin    = 2 // Cells between the border and the tile row
)

// Layout places the scene's elements on a screen of a given size.
type Layout struct {
	Frame   core.Rect   // Whole screen; the background border runs along it
	HUDY    int         // Row for score and timer
	PromptY int         // Row for the colour name
	Timer   core.Rect   // Reaction-window bar
	Tiles   []core.Rect // One rect per tile slot, left to right; nil if they cannot fit
	LabelY  int         // Row for the key hints under the tiles
}

// NewLayout computes the layout for n tiles on a w×h screen.
func NewLayout(w, h, n int) Layout {
	frame := core.NewRect(0, 0, w, h)
	inner := frame.Inset(1)

	l := Layout{
		Frame:   frame,
		HUDY:    inner.Y,
		PromptY: inner.Y + core.Max(2, inner.H/5),
	}
	l.Timer = core.NewRect(inner.X+sideMargin, l.PromptY+2, core.Max(inner.W-2*sideMargin, 0), 1)

	top := l.Timer.Y + 2
	tileH := core.Clamp(inner.Bottom()-top-2, 0, tileMaxHeight)
	if tileH == 0 {
		return l
	}
	row := core.NewRect(inner.X+sideMargin, top, core.Max(inner.W-2*sideMargin, 0), tileH)

	// Narrow terminals squeeze the gaps before giving up.
	for gap := tileGap; gap >= 0 && l.Tiles == nil; gap-- {
		l.Tiles = row.SplitH(n, gap)
	}
	l.LabelY = top + tileH
	return l
}

// SlotAt returns the tile slot containing (x, y), or -1.
func (l Layout) SlotAt(x, y int) int {
	for i, r := range l.Tiles {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}
