package scene

import "github.com/vovakirdan/tapcolour/internal/core"

// driftPeriod is how many ticks the waiting pattern takes to move one cell.
const driftPeriod = 8

// Background is the animated backdrop drawn under the scene.
// It owns a flash that decays over a fixed number of ticks and a tick
// counter for the drifting pattern shown while waiting to start.
type Background struct {
	tick       int
	flashColor core.Color
	flashLeft  int
	flashLen   int
}

// Reset clears the flash and restarts the animation.
func (b *Background) Reset() {
	*b = Background{}
}

// Step advances the animation by one tick.
func (b *Background) Step() {
	b.tick++
	if b.flashLeft > 0 {
		b.flashLeft--
	}
}

// Flash starts a border flash of the given colour lasting ticks ticks.
// A new flash replaces any flash in progress.
func (b *Background) Flash(c core.Color, ticks int) {
	if ticks <= 0 {
		return
	}
	b.flashColor = c
	b.flashLeft = ticks
	b.flashLen = ticks
}

// Intensity returns the strength of the current flash, 0.0 (none) to 1.0.
func (b *Background) Intensity() float64 {
	if b.flashLen == 0 || b.flashLeft <= 0 {
		return 0
	}
	return float64(b.flashLeft) / float64(b.flashLen)
}

// Render draws the border in the given colour, or the flash while one is
// active, and the drifting pattern when drift is set.
func (b *Background) Render(dst *core.Screen, border core.Color, drift bool) {
	frame := core.NewRect(0, 0, dst.Width(), dst.Height())
	if frame.W < 2 || frame.H < 2 {
		return
	}

	if drift {
		b.renderDrift(dst, frame.Inset(1))
	}

	level := b.Intensity()
	if level == 0 {
		dst.DrawBox(frame, border)
		return
	}

	var r rune
	switch {
	case level > 2.0/3.0:
		r = '█'
	case level > 1.0/3.0:
		r = '▓'
	default:
		r = '░'
	}
	dst.DrawHLine(frame.X, frame.Y, frame.W, r, b.flashColor)
	dst.DrawHLine(frame.X, frame.Bottom()-1, frame.W, r, b.flashColor)
	dst.DrawVLine(frame.X, frame.Y, frame.H, r, b.flashColor)
	dst.DrawVLine(frame.Right()-1, frame.Y, frame.H, r, b.flashColor)
}

// renderDrift scatters dots on a diagonal lattice that slides right over time.
func (b *Background) renderDrift(dst *core.Screen, area core.Rect) {
	shift := b.tick / driftPeriod
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			if (x-shift+y*3)%11 == 0 {
				dst.SetColored(x, y, '·', core.ColorGray)
			}
		}
	}
}
