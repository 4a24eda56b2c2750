package gates

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/gate-runner/internal/core"
)

// trailSteps is how many interpolated positions make up the drawn trail.
const trailSteps = 20

// Render rasterizes the court into dst using tf.
func (g *Game) Render(dst *core.Screen, tf core.Transform) {
	if g.engine == nil {
		dst.Clear()
		return
	}
	e := g.engine
	bg := core.LevelBackground(e.LevelIndex())
	dst.SetBackground(bg)
	dst.Clear()

	drawables := e.Drawables()

	// Shadows first so every solid sits on top of all of them.
	for _, d := range drawables {
		shadow, ok := shadowColor(d.Role)
		if !ok {
			continue
		}
		r := tf.BoxToRect(d.Box)
		r.X++
		dst.FillRect(r, core.Cell{Rune: ' ', BG: shadow})
	}

	g.renderTrail(dst, tf, bg)

	for _, d := range drawables {
		if d.Role == RoleTrailSample {
			continue
		}
		dst.FillRect(tf.BoxToRect(d.Box), core.Cell{Rune: ' ', BG: fillColor(d.Role)})
	}

	g.renderHUD(dst)
}

func shadowColor(role Role) (core.Color, bool) {
	switch {
	case role == RoleBlock:
		return core.ColorBlockShadow, true
	case role == RolePaddle, role == RoleBall, role.IsGate():
		return core.ColorShadow, true
	}
	return core.ColorDefault, false
}

func fillColor(role Role) core.Color {
	if role == RoleBlock {
		return core.ColorBlock
	}
	return core.ColorForeground
}

// renderTrail draws the ball's recent path oldest first, fading into the background.
func (g *Game) renderTrail(dst *core.Screen, tf core.Transform, bg core.Color) {
	trail := g.engine.Trail()
	for i := trailSteps - 1; i >= 0; i-- {
		f := float64(i) / float64(trailSteps-1)
		pos, ok := trail.At(f * trail.MaxAge())
		if !ok {
			continue
		}
		x, y := tf.CourtToCell(pos)
		dst.SetCell(int(math.Floor(x)), int(math.Floor(y)), core.Cell{Rune: ' ', BG: TrailColor(f, bg)})
	}
}

// TrailColor returns the trail color at fraction f of its length (0 newest, 1 oldest),
// walking the trail palette and fading toward bg.
func TrailColor(f float64, bg core.Color) core.Color {
	f = core.ClampF(f, 0, 1)
	stops := core.TrailColors
	pos := f * float64(len(stops)-1)
	i := min(int(pos), len(stops)-2)

	c := blend(stops[i], stops[i+1], pos-float64(i))
	return blend(c, bg, 0.6*f)
}

// blend mixes two hex colors in Lab space. Unparsable input falls back to a.
func blend(a, b core.Color, t float64) core.Color {
	ca, err := colorful.Hex(string(a))
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(string(b))
	if err != nil {
		return a
	}
	return core.Color(ca.BlendLab(cb, t).Clamped().Hex())
}

func (g *Game) renderHUD(dst *core.Screen) {
	st := g.State()
	level := st.LevelIndex + 1
	dst.DrawText(1, 0, fmt.Sprintf("SCORE %d  LEVEL %d", st.Score, level), core.ColorForeground)

	switch {
	case st.GameOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score %d  |  Press R to restart", st.Score))
	case st.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(box, core.Cell{Rune: ' ', BG: "#000000"})
	dst.DrawBox(box, core.ColorForeground)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorForeground)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorForeground)
}
