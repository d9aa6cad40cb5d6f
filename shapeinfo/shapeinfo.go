/*
NAME
  shapeinfo.go

DESCRIPTION
  shapeinfo.go implements the shape-info container: a flat list of
  drawable overlay primitives produced by the overlay builder from a
  prediction tree, per §4.10.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package shapeinfo is a plain value container for overlay-drawing
// primitives: rectangles, text, lines, circles and polygons, owned
// together and released together, per §4.10.
package shapeinfo

// Color is an RGB colour in the 0-255 range per channel.
type Color struct {
	R, G, B uint8
}

// Named colours used throughout the overlay builder's per-node policies.
var (
	ColorAqua  = Color{0, 255, 255}
	ColorBlue  = Color{0, 0, 255}
	ColorGreen = Color{0, 255, 0}
	ColorRed   = Color{255, 0, 0}
	ColorBlack = Color{0, 0, 0}
	ColorWhite = Color{255, 255, 255}
)

// Point is a pixel coordinate.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle, optionally filled.
type Rect struct {
	X, Y, Width, Height int
	Color               Color
	Filled              bool
	Thickness           int
}

// Circle is drawn centred on Center.
type Circle struct {
	Center    Point
	Radius    int
	Color     Color
	Thickness int
}

// Line is a single segment between two named anatomical points, used by
// the pose-detection overlay policy.
type Line struct {
	From, To  Point
	Color     Color
	Thickness int
}

// Arrow is a directional line segment from From to To, per §3's six-list
// shape-info data model. No current overlay policy emits one.
type Arrow struct {
	From, To  Point
	Color     Color
	Thickness int
}

// Polygon is a closed sequence of vertices.
type Polygon struct {
	Points []Point
	Color  Color
}

// Text is a label drawn at Origin. BottomLeftOrigin follows the
// draw-above-bbox convention described in §4.9.
type Text struct {
	Origin           Point
	Label            string
	Color            Color
	BackgroundColor  Color
	HasBackground    bool
	BottomLeftOrigin bool
}

// ShapeInfo collects every drawable primitive produced for one frame's
// overlay: rect, text, line, arrow, circle and polygon, per §3/§4.10.
type ShapeInfo struct {
	Rects    []Rect
	Texts    []Text
	Lines    []Line
	Arrows   []Arrow
	Circles  []Circle
	Polygons []Polygon
}

// AddRect appends r to s.
func (s *ShapeInfo) AddRect(r Rect) { s.Rects = append(s.Rects, r) }

// AddText appends t to s.
func (s *ShapeInfo) AddText(t Text) { s.Texts = append(s.Texts, t) }

// AddLine appends l to s.
func (s *ShapeInfo) AddLine(l Line) { s.Lines = append(s.Lines, l) }

// AddArrow appends a to s.
func (s *ShapeInfo) AddArrow(a Arrow) { s.Arrows = append(s.Arrows, a) }

// AddCircle appends c to s.
func (s *ShapeInfo) AddCircle(c Circle) { s.Circles = append(s.Circles, c) }

// AddPolygon appends p to s.
func (s *ShapeInfo) AddPolygon(p Polygon) { s.Polygons = append(s.Polygons, p) }

// DeepCopy duplicates s and every element of its lists, per §4.10.
func (s *ShapeInfo) DeepCopy() *ShapeInfo {
	if s == nil {
		return nil
	}
	cp := &ShapeInfo{
		Rects:   append([]Rect(nil), s.Rects...),
		Texts:   append([]Text(nil), s.Texts...),
		Lines:   append([]Line(nil), s.Lines...),
		Arrows:  append([]Arrow(nil), s.Arrows...),
		Circles: append([]Circle(nil), s.Circles...),
	}
	for _, p := range s.Polygons {
		cp.Polygons = append(cp.Polygons, Polygon{Points: append([]Point(nil), p.Points...), Color: p.Color})
	}
	return cp
}

// Release clears s's lists. With Go's GC this only needs to drop
// references so the backing arrays can be collected; it exists to mirror
// the explicit free() the spec names for this type.
func (s *ShapeInfo) Release() {
	if s == nil {
		return
	}
	s.Rects = nil
	s.Texts = nil
	s.Lines = nil
	s.Arrows = nil
	s.Circles = nil
	s.Polygons = nil
}
