package core

import "math"

// CellAspect is how many times taller a terminal cell is than it is wide.
const CellAspect = 2.0

// Transform maps court coordinates (y up, origin at the court center)
// to terminal cell coordinates (y down, origin at the top-left cell).
type Transform struct {
	Scale   float64 // cells per court unit, horizontally
	OriginX float64 // cell x of the court origin
	OriginY float64 // cell y of the court origin
}

// FitTransform returns the largest transform that shows the area [lo, hi]
// plus pad court units on every side inside a cols×rows screen, centered.
func FitTransform(lo, hi Vec2, cols, rows int, pad float64) Transform {
	w := hi.X - lo.X + 2*pad
	h := hi.Y - lo.Y + 2*pad
	if w <= 0 || h <= 0 || cols <= 0 || rows <= 0 {
		return Transform{Scale: 1}
	}

	scale := math.Min(float64(cols)/w, float64(rows)*CellAspect/h)
	mid := lo.Add(hi).Scale(0.5)
	return Transform{
		Scale:   scale,
		OriginX: float64(cols)/2 - mid.X*scale,
		OriginY: float64(rows)/2 + mid.Y*scale/CellAspect,
	}
}

// CourtToCell converts a court point to fractional cell coordinates.
func (t Transform) CourtToCell(p Vec2) (x, y float64) {
	return t.OriginX + p.X*t.Scale, t.OriginY - p.Y*t.Scale/CellAspect
}

// CellToCourt converts fractional cell coordinates back to the court.
// Pass col+0.5, row+0.5 to get the center of a cell.
func (t Transform) CellToCourt(x, y float64) Vec2 {
	if t.Scale == 0 {
		return Vec2{}
	}
	return V2((x-t.OriginX)/t.Scale, (t.OriginY-y)*CellAspect/t.Scale)
}

// BoxToRect returns the cells whose centers fall inside b.
// Boxes smaller than a cell still cover the cell holding their center.
func (t Transform) BoxToRect(b Box) Rect {
	x0, y0 := t.CourtToCell(V2(b.Center.X-b.Radius.X, b.Center.Y+b.Radius.Y))
	x1, y1 := t.CourtToCell(V2(b.Center.X+b.Radius.X, b.Center.Y-b.Radius.Y))

	left := int(math.Ceil(x0 - 0.5))
	right := int(math.Floor(x1 - 0.5))
	top := int(math.Ceil(y0 - 0.5))
	bottom := int(math.Floor(y1 - 0.5))

	cx, cy := t.CourtToCell(b.Center)
	if right < left {
		left = int(math.Floor(cx))
		right = left
	}
	if bottom < top {
		top = int(math.Floor(cy))
		bottom = top
	}
	return NewRect(left, top, right-left+1, bottom-top+1)
}
