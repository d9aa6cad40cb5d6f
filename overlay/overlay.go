/*
NAME
  overlay.go

DESCRIPTION
  overlay.go implements the metadata-to-overlay converter: it walks a
  prediction tree and produces a flat list of drawable shapes, applying
  per-model-class drawing policies, class filtering and label
  composition, per §4.9.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package overlay implements the metadata-to-overlay converter described in
// §4.9: it walks a prediction tree rooted at a node and produces a flat
// shapeinfo.ShapeInfo of rectangles, text, lines, circles and polygons
// ready for a caller's drawing layer.
package overlay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ausocean/vvascore/logging"
	"github.com/ausocean/vvascore/predict"
	"github.com/ausocean/vvascore/shapeinfo"
)

// Model classes recognised by the per-node drawing policy, per §4.9.
const (
	ModelPoseDetect   = "POSEDETECT"
	ModelFaceLandmark = "FACELANDMARK"
	ModelRoadLine     = "ROADLINE"
	ModelUltraFast    = "ULTRAFAST"
	ModelBCC          = "BCC"
)

// AllowedClass is one entry of Config.AllowedClasses: a class this
// converter draws, along with its colour and masking behaviour.
type AllowedClass struct {
	Name   string
	Color  shapeinfo.Color
	DoMask bool
}

// Config configures a Converter, mirroring the meta-convert config of §3.
type Config struct {
	FontType      int
	FontSize      float64
	LineThickness int
	Radius        int

	// Level is the classification display level: classifications are
	// labelled only when a node's tree level equals this (0 means any).
	Level int
	// MaskLevel forces a filled rectangle at this tree level (0 disables).
	MaskLevel int

	YOffset       int
	DrawAboveBBox bool

	// AllowedLabels selects which fields compose a classification's label
	// string, in order: any of "class", "tracker-id", "probability".
	AllowedLabels []string
	// AllowedClasses restricts which classifications are drawn; empty
	// means all classifications are considered.
	AllowedClasses []AllowedClass
}

// Converter walks prediction trees into shape lists according to its Config.
type Converter struct {
	cfg Config
	log *logging.Logger
}

// Create returns a new Converter, per §6's meta-convert surface.
func Create(cfg Config, level logging.Level) *Converter {
	logging.Default().SetLevel(level)
	return &Converter{cfg: cfg, log: logging.Default()}
}

// Destroy releases c. Shape-info returned by PrepareOverlay is owned by the
// caller and is not affected.
func Destroy(c *Converter) {}

// PrepareOverlay walks the tree rooted at root and returns the shapes it
// produces, per §4.9. A nil root yields an empty, non-nil ShapeInfo.
func (c *Converter) PrepareOverlay(root *predict.Prediction) *shapeinfo.ShapeInfo {
	si := &shapeinfo.ShapeInfo{}
	if root == nil {
		return si
	}
	c.walk(si, root, 1)
	return si
}

// walk visits node at tree level (root is level 1) and recurses into its
// children per §4.9's recursion rule.
func (c *Converter) walk(si *shapeinfo.ShapeInfo, node *predict.Prediction, level int) {
	if node == nil || !node.Enabled {
		return
	}

	depth := level
	switch node.ModelClass {
	case ModelPoseDetect:
		c.drawPose(si, node, depth)
	case ModelFaceLandmark:
		c.drawFaceLandmark(si, node)
	case ModelRoadLine:
		c.drawRoadLine(si, node)
	case ModelUltraFast:
		c.drawUltraFast(si, node)
	case ModelBCC:
		c.drawCrowdCount(si, node)
	default:
		c.drawRect(si, node, level, depth)
	}

	c.drawLabel(si, node, level)

	for _, child := range node.Children {
		if !c.shouldRecurse(child) {
			continue
		}
		c.walk(si, child, level+1)
	}
}

// shouldRecurse reports whether child should be visited, per §4.9's
// recursion rule: a positive-extent bbox, or one of the model classes that
// always draw regardless of bbox.
func (c *Converter) shouldRecurse(child *predict.Prediction) bool {
	if !child.Enabled {
		return false
	}
	if child.BBox.Width > 0 && child.BBox.Height > 0 {
		return true
	}
	switch child.ModelClass {
	case ModelFaceLandmark, ModelRoadLine, ModelPoseDetect, ModelBCC, ModelUltraFast:
		return true
	default:
		return false
	}
}

// depthColor returns the colour conventionally associated with a tree
// depth: 1=blue, 2=green, 3=red, else aqua, per §4.9.
func depthColor(depth int) shapeinfo.Color {
	switch depth {
	case 1:
		return shapeinfo.ColorBlue
	case 2:
		return shapeinfo.ColorGreen
	case 3:
		return shapeinfo.ColorRed
	default:
		return shapeinfo.ColorAqua
	}
}

// lineTypeColor maps a ROADLINE/ULTRAFAST feature's line type to a colour.
func lineTypeColor(lt predict.LineType) shapeinfo.Color {
	switch lt {
	case predict.LineWhiteDotted:
		return shapeinfo.ColorBlue
	case predict.LineWhiteSolid:
		return shapeinfo.ColorGreen
	case predict.LineYellow:
		return shapeinfo.ColorRed
	default: // LineBackground.
		return shapeinfo.ColorAqua
	}
}

// poseJoints names the 14-point anatomical skeleton's segments as index
// pairs into Prediction.Pose14pt.
var poseJoints = [][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 7},
	{7, 8}, {8, 9}, {9, 10}, {10, 11}, {11, 12}, {12, 13}, {0, 13},
}

func (c *Converter) drawPose(si *shapeinfo.ShapeInfo, node *predict.Prediction, depth int) {
	col := depthColor(depth)
	for _, p := range node.Pose14pt {
		si.AddCircle(shapeinfo.Circle{
			Center:    shapeinfo.Point{X: p.X, Y: p.Y},
			Radius:    c.cfg.Radius,
			Color:     col,
			Thickness: c.cfg.LineThickness,
		})
	}
	for _, joint := range poseJoints {
		a, b := joint[0], joint[1]
		if a >= len(node.Pose14pt) || b >= len(node.Pose14pt) {
			continue
		}
		si.AddLine(shapeinfo.Line{
			From:      shapeinfo.Point{X: node.Pose14pt[a].X, Y: node.Pose14pt[a].Y},
			To:        shapeinfo.Point{X: node.Pose14pt[b].X, Y: node.Pose14pt[b].Y},
			Color:     col,
			Thickness: c.cfg.LineThickness,
		})
	}
}

func (c *Converter) drawFaceLandmark(si *shapeinfo.ShapeInfo, node *predict.Prediction) {
	for i := 0; i < 5 && i < len(node.Pose14pt); i++ {
		p := node.Pose14pt[i]
		si.AddCircle(shapeinfo.Circle{
			Center:    shapeinfo.Point{X: p.X, Y: p.Y},
			Radius:    c.cfg.Radius,
			Color:     shapeinfo.ColorGreen,
			Thickness: c.cfg.LineThickness,
		})
	}
}

func (c *Converter) drawRoadLine(si *shapeinfo.ShapeInfo, node *predict.Prediction) {
	if len(node.LinePoints) == 0 {
		return
	}
	poly := shapeinfo.Polygon{Color: lineTypeColor(node.LineType)}
	for _, p := range node.LinePoints {
		poly.Points = append(poly.Points, shapeinfo.Point{X: p.X, Y: p.Y})
	}
	si.AddPolygon(poly)
}

func (c *Converter) drawUltraFast(si *shapeinfo.ShapeInfo, node *predict.Prediction) {
	col := lineTypeColor(node.LineType)
	for _, p := range node.LinePoints {
		if p.X < 0 {
			continue
		}
		si.AddCircle(shapeinfo.Circle{
			Center:    shapeinfo.Point{X: p.X, Y: p.Y},
			Radius:    c.cfg.Radius,
			Color:     col,
			Thickness: c.cfg.LineThickness,
		})
	}
}

func (c *Converter) drawCrowdCount(si *shapeinfo.ShapeInfo, node *predict.Prediction) {
	si.AddText(shapeinfo.Text{
		Origin:          shapeinfo.Point{X: node.BBox.X, Y: c.cfg.YOffset},
		Label:           fmt.Sprintf("Crowd = %d", node.Count),
		Color:           shapeinfo.ColorBlack,
		BackgroundColor: shapeinfo.Color{R: 255, G: 255, B: 0},
		HasBackground:   true,
	})
}

// drawRect implements the "other model classes" rectangle policy, per §4.9.
func (c *Converter) drawRect(si *shapeinfo.ShapeInfo, node *predict.Prediction, level, depth int) {
	if node.BBox.Width <= 0 || node.BBox.Height <= 0 {
		return
	}
	if level == 1 {
		return // Root is never boxed.
	}
	if c.cfg.Level != 0 && level-1 != c.cfg.Level {
		return
	}

	col := depthColor(depth)
	masked := c.cfg.MaskLevel != 0 && c.cfg.MaskLevel == level
	if ac, ok := c.matchAllowedClass(node); ok {
		col = ac.Color
		masked = masked || ac.DoMask
	}
	filled := masked
	if masked {
		col = shapeinfo.ColorBlack
	}

	si.AddRect(shapeinfo.Rect{
		X: node.BBox.X, Y: node.BBox.Y,
		Width: node.BBox.Width, Height: node.BBox.Height,
		Color: col, Filled: filled, Thickness: c.cfg.LineThickness,
	})
}

// matchAllowedClass returns the AllowedClasses entry matching one of
// node's classifications, if any.
func (c *Converter) matchAllowedClass(node *predict.Prediction) (AllowedClass, bool) {
	for _, cl := range node.Classifications {
		for _, ac := range c.cfg.AllowedClasses {
			if ac.Name == cl.ClassLabel {
				return ac, true
			}
		}
	}
	return AllowedClass{}, false
}

// classAllowed reports whether cl should be considered, per §4.9's class
// filtering rule: an empty AllowedClasses list allows everything.
func (c *Converter) classAllowed(cl *predict.Classification) bool {
	if len(c.cfg.AllowedClasses) == 0 {
		return true
	}
	for _, ac := range c.cfg.AllowedClasses {
		if ac.Name == cl.ClassLabel {
			return true
		}
	}
	return false
}

// drawLabel composes and appends a classification label text overlay for
// node, per §4.9's label-composition rule.
func (c *Converter) drawLabel(si *shapeinfo.ShapeInfo, node *predict.Prediction, level int) {
	if c.cfg.Level != 0 && level != c.cfg.Level {
		return
	}
	var classLabels []string
	for _, cl := range node.Classifications {
		if !c.classAllowed(cl) {
			continue
		}
		if s := c.composeLabel(node, cl); s != "" {
			classLabels = append(classLabels, s)
		}
	}
	if len(classLabels) == 0 {
		return
	}
	label := strings.Join(classLabels, ", ")

	y := node.BBox.Y + c.cfg.YOffset
	bottomLeft := c.cfg.DrawAboveBBox
	if y == 0 {
		bottomLeft = false
	}
	si.AddText(shapeinfo.Text{
		Origin:           shapeinfo.Point{X: node.BBox.X, Y: y},
		Label:            label,
		Color:            shapeinfo.ColorWhite,
		BottomLeftOrigin: bottomLeft,
	})
}

// composeLabel builds one classification's label string from the
// configured allowed-label fields, per §4.9.
func (c *Converter) composeLabel(node *predict.Prediction, cl *predict.Classification) string {
	var parts []string
	for _, field := range c.cfg.AllowedLabels {
		switch field {
		case "class":
			if s := firstToken(cl.ClassLabel); s != "" {
				parts = append(parts, s)
			}
		case "tracker-id":
			if node.Parent != nil && node.Parent.ObjTrackLabel != "" {
				parts = append(parts, "tid - "+node.Parent.ObjTrackLabel)
			}
		case "probability":
			parts = append(parts, strconv.FormatFloat(cl.ClassProb, 'f', 2, 64))
		}
	}
	return strings.Join(parts, " : ")
}

// firstToken returns s up to its first comma, per §4.9's class-label rule.
func firstToken(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[:i]
	}
	return s
}
