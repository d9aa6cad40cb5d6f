package affix

import (
	"testing"

	"github.com/ausocean/vvascore/logging"
	"github.com/ausocean/vvascore/predict"
	"github.com/ausocean/vvascore/vvaserr"
)

func newTestAffixer(maxEntries int) *Affixer {
	return Create(Config{InferenceFrameDuration: 100, MaxEntries: maxEntries, LogLevel: logging.Warning})
}

func treeWithBBox(x, y, w, h int) *predict.Prediction {
	p := predict.New()
	p.BBox = predict.BoundingBox{X: x, Y: y, Width: w, Height: h}
	return p
}

func TestSubmitAndGetFrameMetaExactOverlap(t *testing.T) {
	a := newTestAffixer(4)
	a.Submit(VideoInfo{Width: 100, Height: 100}, Metadata{PTS: 0, Duration: 100}, treeWithBBox(10, 10, 20, 20))

	code, pred := a.GetFrameMeta(VideoInfo{Width: 100, Height: 100}, Metadata{PTS: 0, Duration: 100}, false)
	if code != vvaserr.Success {
		t.Fatalf("code = %v, want Success", code)
	}
	if pred == nil {
		t.Fatal("expected a prediction")
	}
	if pred.BBoxScaled.X != 10 || pred.BBoxScaled.Width != 20 {
		t.Errorf("BBoxScaled = %+v, want unscaled box at same dims", pred.BBoxScaled)
	}
}

func TestGetFrameMetaRescales(t *testing.T) {
	a := newTestAffixer(4)
	a.Submit(VideoInfo{Width: 100, Height: 50}, Metadata{PTS: 0, Duration: 100}, treeWithBBox(10, 10, 20, 10))

	_, pred := a.GetFrameMeta(VideoInfo{Width: 200, Height: 100}, Metadata{PTS: 0, Duration: 100}, false)
	if pred.BBoxScaled.X != 20 || pred.BBoxScaled.Width != 40 {
		t.Errorf("horizontal rescale wrong: %+v", pred.BBoxScaled)
	}
	if pred.BBoxScaled.Y != 20 || pred.BBoxScaled.Height != 20 {
		t.Errorf("vertical rescale wrong: %+v", pred.BBoxScaled)
	}
}

func TestGetFrameMetaNoOverlap(t *testing.T) {
	a := newTestAffixer(4)
	a.Submit(VideoInfo{Width: 100, Height: 100}, Metadata{PTS: 0, Duration: 100}, treeWithBBox(0, 0, 1, 1))

	code, pred := a.GetFrameMeta(VideoInfo{Width: 100, Height: 100}, Metadata{PTS: 1000, Duration: 100}, false)
	if code != vvaserr.NoFrameOverlap || pred != nil {
		t.Fatalf("code = %v, pred = %v, want NoFrameOverlap/nil", code, pred)
	}
}

func TestGetFrameMetaPicksHighestOverlap(t *testing.T) {
	a := newTestAffixer(4)
	a.Submit(VideoInfo{Width: 100, Height: 100}, Metadata{PTS: 0, Duration: 100}, treeWithBBox(1, 1, 1, 1))
	a.Submit(VideoInfo{Width: 100, Height: 100}, Metadata{PTS: 80, Duration: 100}, treeWithBBox(2, 2, 2, 2))

	// Query window overlaps entry 2 (pts 80) far more than entry 1 (pts 0).
	code, pred := a.GetFrameMeta(VideoInfo{Width: 100, Height: 100}, Metadata{PTS: 90, Duration: 100}, false)
	if code != vvaserr.Success {
		t.Fatalf("code = %v, want Success", code)
	}
	if pred.BBox.Width != 2 {
		t.Errorf("selected entry BBox.Width = %d, want 2 (the pts=80 entry)", pred.BBox.Width)
	}
}

func TestSubmitEvictsOldestWhenFull(t *testing.T) {
	a := newTestAffixer(2)
	a.Submit(VideoInfo{Width: 10, Height: 10}, Metadata{PTS: 0, Duration: 100}, treeWithBBox(0, 0, 1, 1))
	a.Submit(VideoInfo{Width: 10, Height: 10}, Metadata{PTS: 100, Duration: 100}, treeWithBBox(0, 0, 2, 2))
	a.Submit(VideoInfo{Width: 10, Height: 10}, Metadata{PTS: 200, Duration: 100}, treeWithBBox(0, 0, 3, 3))

	if len(a.entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(a.entries))
	}
	for _, e := range a.entries {
		if e.pts == 0 {
			t.Fatal("oldest entry (pts=0) should have been evicted")
		}
	}
}

func TestGetFrameMetaSyncLastPTS(t *testing.T) {
	a := newTestAffixer(4)
	a.Submit(VideoInfo{Width: 10, Height: 10}, Metadata{PTS: 0, Duration: 100}, treeWithBBox(0, 0, 1, 1))
	a.Submit(VideoInfo{Width: 10, Height: 10}, Metadata{PTS: 500, Duration: 100}, treeWithBBox(0, 0, 9, 9))

	code, pred := a.GetFrameMeta(VideoInfo{Width: 10, Height: 10}, Metadata{}, true)
	if code != vvaserr.Success {
		t.Fatalf("code = %v, want Success", code)
	}
	if pred.BBox.Width != 9 {
		t.Errorf("sync-last-pts should select the most recently submitted entry, got width %d", pred.BBox.Width)
	}
}

func TestSubmitRejectsInvalidArgs(t *testing.T) {
	a := newTestAffixer(4)
	if code := a.Submit(VideoInfo{Width: 10, Height: 10}, Metadata{}, nil); code != vvaserr.InvalidArgs {
		t.Fatalf("code = %v, want InvalidArgs for nil tree", code)
	}
}
