/*
NAME
  predict.go

DESCRIPTION
  predict.go implements the inference prediction tree: a bounding box plus
  classification results for one detected object, with zero or more child
  predictions nested beneath it, per §4.7.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package predict implements the inference prediction tree shared by the
// metadata affixer and the overlay builder: a pointer tree of detected
// objects, each carrying a bounding box, optional classifications, and
// model-specific payloads.
package predict

import "sync/atomic"

// ClonerFreer is implemented by model-specific payloads (re-identification
// embeddings, segmentation masks, raw tensor buffers) carried opaquely on a
// Prediction node. Clone must return an independent deep copy; releasing
// the original is left to the garbage collector, per §9 Design Note 4.
type ClonerFreer interface {
	Clone() ClonerFreer
}

// BoundingBox is an axis-aligned box in pixel coordinates, either in the
// frame the prediction was computed against (BBox) or rescaled to a
// query frame's dimensions (BBoxScaled), per §4.8.
type BoundingBox struct {
	X, Y          int
	Width, Height int
}

// Point is a pixel coordinate, used for pose keypoints and line/lane
// feature points.
type Point struct {
	X, Y int
}

// LineType classifies a ROADLINE or ULTRAFAST feature's line points,
// driving the overlay builder's colour choice per §4.9.
type LineType int

const (
	LineBackground LineType = iota
	LineWhiteDotted
	LineWhiteSolid
	LineYellow
)

// Classification is one labelled hypothesis attached to a Prediction node.
type Classification struct {
	ModelClass string
	ClassLabel string
	ClassProb  float64
}

func (c *Classification) deepCopy() *Classification {
	cp := *c
	return &cp
}

// Prediction is one node of the inference result tree, per §4.7.
type Prediction struct {
	PredictionID uint64
	Enabled      bool

	BBox       BoundingBox
	BBoxScaled BoundingBox

	ObjTrackLabel string
	ModelClass    string
	ModelName     string
	Count         int

	Pose14pt []Point // 14 anatomical keypoints, when ModelClass == POSEDETECT.

	LinePoints []Point  // feature points, when ModelClass == ROADLINE or ULTRAFAST.
	LineType   LineType // colour classification of LinePoints.

	Classifications []*Classification

	Reid         ClonerFreer
	Segmentation ClonerFreer
	TensorBuf    ClonerFreer

	Parent   *Prediction
	Children []*Prediction
}

var predictionIDCounter uint64

// NextPredictionID returns a strictly monotonically increasing id, safe
// for concurrent callers, per §4.7.
func NextPredictionID() uint64 {
	return atomic.AddUint64(&predictionIDCounter, 1)
}

// New returns an empty, enabled Prediction node with a freshly allocated id.
func New() *Prediction {
	return &Prediction{PredictionID: NextPredictionID(), Enabled: true}
}

// Append adds child beneath parent, setting child's Parent link.
func Append(parent, child *Prediction) {
	child.Parent = parent
	parent.Children = append(parent.Children, child)
}

// Free detaches node's subtree so it can be garbage collected. It walks
// children first, then clears node's own slices and parent link; with Go's
// GC this is only needed to break any lingering cross-references before
// node itself goes out of scope.
func Free(node *Prediction) {
	if node == nil {
		return
	}
	for _, c := range node.Children {
		Free(c)
	}
	node.Children = nil
	node.Classifications = nil
	node.Pose14pt = nil
	node.LinePoints = nil
	node.Reid = nil
	node.Segmentation = nil
	node.TensorBuf = nil
	node.Parent = nil
}

// DeepCopy duplicates node and its entire subtree, preserving
// PredictionID and rebuilding parent/child links so the copy is an
// independent tree, per §4.7.
func DeepCopy(node *Prediction) *Prediction {
	if node == nil {
		return nil
	}
	cp := &Prediction{
		PredictionID:  node.PredictionID,
		Enabled:       node.Enabled,
		BBox:          node.BBox,
		BBoxScaled:    node.BBoxScaled,
		ObjTrackLabel: node.ObjTrackLabel,
		ModelClass:    node.ModelClass,
		ModelName:     node.ModelName,
		Count:         node.Count,
		LineType:      node.LineType,
	}
	if node.Pose14pt != nil {
		cp.Pose14pt = append([]Point(nil), node.Pose14pt...)
	}
	if node.LinePoints != nil {
		cp.LinePoints = append([]Point(nil), node.LinePoints...)
	}
	for _, c := range node.Classifications {
		cp.Classifications = append(cp.Classifications, c.deepCopy())
	}
	if node.Reid != nil {
		cp.Reid = node.Reid.Clone()
	}
	if node.Segmentation != nil {
		cp.Segmentation = node.Segmentation.Clone()
	}
	if node.TensorBuf != nil {
		cp.TensorBuf = node.TensorBuf.Clone()
	}
	for _, child := range node.Children {
		childCopy := DeepCopy(child)
		childCopy.Parent = cp
		cp.Children = append(cp.Children, childCopy)
	}
	return cp
}
