package overlay

import (
	"testing"

	"github.com/ausocean/vvascore/logging"
	"github.com/ausocean/vvascore/predict"
	"github.com/ausocean/vvascore/shapeinfo"
)

func newTestConverter(cfg Config) *Converter {
	return Create(cfg, logging.Warning)
}

func TestDisabledNodeContributesNothing(t *testing.T) {
	root := predict.New()
	root.Enabled = false
	root.BBox = predict.BoundingBox{X: 1, Y: 1, Width: 10, Height: 10}

	c := newTestConverter(Config{})
	si := c.PrepareOverlay(root)
	if len(si.Rects) != 0 || len(si.Texts) != 0 {
		t.Fatalf("disabled root produced shapes: %+v", si)
	}
}

func TestRectSkipsRootAndZeroExtent(t *testing.T) {
	root := predict.New()
	root.BBox = predict.BoundingBox{X: 0, Y: 0, Width: 100, Height: 100}
	zeroChild := predict.New()
	zeroChild.BBox = predict.BoundingBox{X: 5, Y: 5, Width: 0, Height: 0}
	predict.Append(root, zeroChild)
	realChild := predict.New()
	realChild.BBox = predict.BoundingBox{X: 5, Y: 5, Width: 20, Height: 20}
	predict.Append(root, realChild)

	c := newTestConverter(Config{})
	si := c.PrepareOverlay(root)
	if len(si.Rects) != 1 {
		t.Fatalf("len(Rects) = %d, want 1 (root and zero-extent child skipped)", len(si.Rects))
	}
	if si.Rects[0].Width != 20 {
		t.Errorf("Rects[0] = %+v, want the real child's box", si.Rects[0])
	}
}

func TestRectFilledAtMaskLevel(t *testing.T) {
	root := predict.New()
	child := predict.New()
	child.BBox = predict.BoundingBox{X: 1, Y: 1, Width: 10, Height: 10}
	predict.Append(root, child)

	c := newTestConverter(Config{MaskLevel: 2})
	si := c.PrepareOverlay(root)
	if len(si.Rects) != 1 || !si.Rects[0].Filled {
		t.Fatalf("expected one filled rect at the configured mask level, got %+v", si.Rects)
	}
	if si.Rects[0].Color != shapeinfo.ColorBlack {
		t.Errorf("Color = %+v, want black for a masked rectangle", si.Rects[0].Color)
	}
}

func TestAllowedClassSuppliesColorAndMask(t *testing.T) {
	root := predict.New()
	child := predict.New()
	child.BBox = predict.BoundingBox{X: 1, Y: 1, Width: 10, Height: 10}
	child.Classifications = []*predict.Classification{{ClassLabel: "face", ClassProb: 0.5}}
	predict.Append(root, child)

	c := newTestConverter(Config{AllowedClasses: []AllowedClass{{Name: "face", Color: shapeinfo.ColorRed, DoMask: true}}})
	si := c.PrepareOverlay(root)
	if len(si.Rects) != 1 || !si.Rects[0].Filled {
		t.Fatalf("allow-listed class with do_mask should fill the rectangle, got %+v", si.Rects)
	}
	if si.Rects[0].Color != shapeinfo.ColorBlack {
		t.Errorf("Color = %+v, want black for a masked rectangle even though the class specifies red", si.Rects[0].Color)
	}
}

func TestLabelComposesClassAndProbability(t *testing.T) {
	root := predict.New()
	child := predict.New()
	child.BBox = predict.BoundingBox{X: 1, Y: 1, Width: 10, Height: 10}
	child.Classifications = []*predict.Classification{{ClassLabel: "car,sedan", ClassProb: 0.87}}
	predict.Append(root, child)

	c := newTestConverter(Config{AllowedLabels: []string{"class", "probability"}})
	si := c.PrepareOverlay(root)
	if len(si.Texts) != 1 {
		t.Fatalf("len(Texts) = %d, want 1", len(si.Texts))
	}
	if got, want := si.Texts[0].Label, "car : 0.87"; got != want {
		t.Errorf("Label = %q, want %q", got, want)
	}
}

func TestTrackerIDUsesParentLabel(t *testing.T) {
	root := predict.New()
	root.ObjTrackLabel = "track-3"
	child := predict.New()
	child.BBox = predict.BoundingBox{X: 1, Y: 1, Width: 10, Height: 10}
	child.Classifications = []*predict.Classification{{ClassLabel: "car", ClassProb: 0.5}}
	predict.Append(root, child)

	c := newTestConverter(Config{AllowedLabels: []string{"tracker-id"}})
	si := c.PrepareOverlay(root)
	if len(si.Texts) != 1 || si.Texts[0].Label != "tid - track-3" {
		t.Fatalf("Texts = %+v, want one label using the parent's track label", si.Texts)
	}
}

func TestUltraFastFiltersNegativeX(t *testing.T) {
	root := predict.New()
	root.ModelClass = ModelUltraFast
	root.LinePoints = []predict.Point{{X: -1, Y: 0}, {X: 5, Y: 5}}

	c := newTestConverter(Config{Radius: 2})
	si := c.PrepareOverlay(root)
	if len(si.Circles) != 1 || si.Circles[0].Center.X != 5 {
		t.Fatalf("Circles = %+v, want only the non-negative-x point", si.Circles)
	}
}

func TestRoadLineEmitsPolygon(t *testing.T) {
	root := predict.New()
	root.ModelClass = ModelRoadLine
	root.LineType = predict.LineYellow
	root.LinePoints = []predict.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}

	c := newTestConverter(Config{})
	si := c.PrepareOverlay(root)
	if len(si.Polygons) != 1 || len(si.Polygons[0].Points) != 3 {
		t.Fatalf("Polygons = %+v, want one 3-vertex polygon", si.Polygons)
	}
}

func TestCrowdCountEmitsText(t *testing.T) {
	root := predict.New()
	root.ModelClass = ModelBCC
	root.Count = 42

	c := newTestConverter(Config{YOffset: 10})
	si := c.PrepareOverlay(root)
	if len(si.Texts) != 1 || si.Texts[0].Label != "Crowd = 42" {
		t.Fatalf("Texts = %+v, want a single Crowd = 42 label", si.Texts)
	}
}

func TestRecursionSkipsZeroExtentNonSpecialChild(t *testing.T) {
	root := predict.New()
	skipped := predict.New() // Zero-extent bbox, ordinary model class: should not recurse into it.
	skippedGrandchild := predict.New()
	skippedGrandchild.BBox = predict.BoundingBox{X: 1, Y: 1, Width: 10, Height: 10}
	predict.Append(skipped, skippedGrandchild)
	predict.Append(root, skipped)

	c := newTestConverter(Config{})
	si := c.PrepareOverlay(root)
	if len(si.Rects) != 0 {
		t.Fatalf("grandchild under a zero-extent, non-special child should not have been visited: %+v", si.Rects)
	}
}

func TestPoseDetectEmitsCirclesAndLines(t *testing.T) {
	root := predict.New()
	root.ModelClass = ModelPoseDetect
	for i := 0; i < 14; i++ {
		root.Pose14pt = append(root.Pose14pt, predict.Point{X: i, Y: i})
	}

	c := newTestConverter(Config{Radius: 3})
	si := c.PrepareOverlay(root)
	if len(si.Circles) != 14 {
		t.Fatalf("len(Circles) = %d, want 14", len(si.Circles))
	}
	if len(si.Lines) != 14 {
		t.Fatalf("len(Lines) = %d, want 14", len(si.Lines))
	}
}
