package wm

import "math"

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add and Sub saturate instead of wrapping, so extreme client coordinates
// clamp to the nearest edge.
func (p Point) Add(q Point) Point {
	return Point{X: addSat(p.X, q.X), Y: addSat(p.Y, q.Y)}
}

func (p Point) Sub(q Point) Point {
	return Point{X: subSat(p.X, q.X), Y: subSat(p.Y, q.Y)}
}

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Grow returns the size enlarged by a cursor delta.
func (s Size) Grow(delta Point) Size {
	return Size{Width: addSat(s.Width, delta.X), Height: addSat(s.Height, delta.Y)}
}

// Viewport describes the host surface windows are laid out on. Chrome is the
// height reserved at the bottom for the taskbar and is never covered by a window.
type Viewport struct {
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Chrome int  `json:"chrome"`
	Mobile bool `json:"mobile"`
}

// WorkArea is the region windows may occupy.
func (v Viewport) WorkArea() Size {
	return Size{
		Width:  max(v.Width, 0),
		Height: max(v.Height-v.Chrome, 0),
	}
}

type Limits struct {
	MinWidth         int
	MinHeight        int
	ZFloor           int
	MobileBreakpoint int
}

var DefaultLimits = Limits{
	MinWidth:         200,
	MinHeight:        140,
	ZFloor:           100,
	MobileBreakpoint: 768,
}

// IsMobile reports whether windows opened on v should fill the work area.
func (l Limits) IsMobile(v Viewport) bool {
	return v.Mobile || (l.MobileBreakpoint > 0 && v.Width <= l.MobileBreakpoint)
}

func addSat(a, b int) int {
	c := a + b
	if (c > a) != (b > 0) {
		if b > 0 {
			return math.MaxInt
		}
		return math.MinInt
	}
	return c
}

func subSat(a, b int) int {
	if b == math.MinInt {
		if a >= 0 {
			return math.MaxInt
		}
		return a - b
	}
	return addSat(a, -b)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// clampSize caps s to maxW x maxH and then raises it to the minimums, so the
// minimums win when the available space is too small.
func (l Limits) clampSize(s Size, maxW, maxH int) Size {
	return Size{
		Width:  max(min(s.Width, maxW), l.MinWidth),
		Height: max(min(s.Height, maxH), l.MinHeight),
	}
}

// clampPosition keeps a window of size s fully inside area.
func clampPosition(p Point, s Size, area Size) Point {
	return Point{
		X: clamp(p.X, 0, max(area.Width-s.Width, 0)),
		Y: clamp(p.Y, 0, max(area.Height-s.Height, 0)),
	}
}

// centered places s in the middle of area.
func centered(s Size, area Size) Point {
	return Point{
		X: max((area.Width-s.Width)/2, 0),
		Y: max((area.Height-s.Height)/2, 0),
	}
}

// scattered places s at a pseudo-random offset so successively opened windows
// do not stack perfectly on top of each other.
func scattered(s Size, v Viewport, r float64) Point {
	return Point{
		X: int(r*float64(v.Width-s.Width-100)) + 50,
		Y: int(r*float64(v.Height-s.Height-150)) + 80,
	}
}
