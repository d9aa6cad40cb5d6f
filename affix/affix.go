/*
NAME
  affix.go

DESCRIPTION
  affix.go implements the metadata affixer: a bounded, PTS-keyed store of
  recent inference results that lets a video-frame consumer look up the
  prediction tree most relevant to the frame it's about to display, per
  §4.8.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package affix implements the metadata affixer described in §4.8: it
// queues inference results keyed by presentation timestamp and, given a
// video frame's own timestamp, returns the prediction tree with the
// greatest temporal overlap, rescaled to that frame's dimensions.
package affix

import (
	"github.com/ausocean/vvascore/logging"
	"github.com/ausocean/vvascore/predict"
	"github.com/ausocean/vvascore/vvaserr"
)

// Config configures an Affixer, per §4.8.
type Config struct {
	// InferenceFrameDuration is the duration, in the same units as
	// Metadata.PTS, that one inference result is considered to cover.
	InferenceFrameDuration int64
	MaxEntries             int
	LogLevel               logging.Level
}

// VideoInfo describes the frame dimensions a Prediction tree or a query
// was computed against, per §4.8's horizontal/vertical rescale.
type VideoInfo struct {
	Width, Height int
}

// Metadata carries a frame's presentation timestamp and duration, in
// caller-defined units (typically media time base ticks).
type Metadata struct {
	PTS      int64
	Duration int64
}

// entry is one queued inference result, per §4.8.
type entry struct {
	seqID    uint64
	pts      int64
	duration int64
	width    int
	height   int
	tree     *predict.Prediction
}

// Affixer is a bounded PTS-keyed queue of inference results. An Affixer
// is mutated from a single submitter and a single consumer; concurrent
// access needs an external mutex, per §5.
type Affixer struct {
	cfg     Config
	log     *logging.Logger
	entries []*entry
	nextSeq uint64
	lastPTS int64
	hasLast bool
}

// Create returns a new Affixer per §6's affixer surface.
func Create(cfg Config) *Affixer {
	logging.Default().SetLevel(cfg.LogLevel)
	return &Affixer{cfg: cfg, log: logging.Default()}
}

// Destroy releases a's queued entries.
func Destroy(a *Affixer) {
	a.entries = nil
}

// Submit inserts a deep copy of tree keyed by md's timestamp, evicting the
// oldest entry first if a is already at MaxEntries, per §4.8.
func (a *Affixer) Submit(vinfo VideoInfo, md Metadata, tree *predict.Prediction) vvaserr.Code {
	if tree == nil || a.cfg.MaxEntries <= 0 {
		return vvaserr.InvalidArgs
	}
	if len(a.entries) >= a.cfg.MaxEntries {
		a.evictOldest()
	}
	a.nextSeq++
	a.entries = append(a.entries, &entry{
		seqID:    a.nextSeq,
		pts:      md.PTS,
		duration: md.Duration,
		width:    vinfo.Width,
		height:   vinfo.Height,
		tree:     predict.DeepCopy(tree),
	})
	a.lastPTS = md.PTS
	a.hasLast = true
	return vvaserr.Success
}

// evictOldest removes the entry with the smallest pts, ties broken by the
// smallest seqID, per §4.8.
func (a *Affixer) evictOldest() {
	if len(a.entries) == 0 {
		return
	}
	oldest := 0
	for i, e := range a.entries {
		o := a.entries[oldest]
		if e.pts < o.pts || (e.pts == o.pts && e.seqID < o.seqID) {
			oldest = i
		}
	}
	a.log.Info("affix: evicting entry seq=%d pts=%d", a.entries[oldest].seqID, a.entries[oldest].pts)
	a.entries = append(a.entries[:oldest], a.entries[oldest+1:]...)
}

// GetFrameMeta returns the prediction tree best matching the query frame
// described by vinfo/md, rescaled to vinfo's dimensions, per §4.8.
// syncInferLastPTS selects a's most recently submitted entry outright
// instead of computing overlap.
func (a *Affixer) GetFrameMeta(vinfo VideoInfo, md Metadata, syncInferLastPTS bool) (vvaserr.Code, *predict.Prediction) {
	if vinfo.Width <= 0 || vinfo.Height <= 0 {
		return vvaserr.InvalidArgs, nil
	}

	if syncInferLastPTS {
		if !a.hasLast {
			return vvaserr.NoFrameOverlap, nil
		}
		sel := a.findByPTS(a.lastPTS)
		if sel == nil {
			return vvaserr.NoFrameOverlap, nil
		}
		return vvaserr.Success, a.rescale(sel, vinfo)
	}

	sel := a.selectByOverlap(md)
	if sel == nil {
		return vvaserr.NoFrameOverlap, nil
	}
	return vvaserr.Success, a.rescale(sel, vinfo)
}

func (a *Affixer) findByPTS(pts int64) *entry {
	var best *entry
	for _, e := range a.entries {
		if e.pts != pts {
			continue
		}
		if best == nil || e.seqID < best.seqID {
			best = e
		}
	}
	return best
}

// selectByOverlap picks the entry whose [pts, pts+InferenceFrameDuration)
// window has the greatest percentage overlap with the query's
// [md.PTS, md.PTS+md.Duration), ties broken by smallest seqID, per §4.8.
func (a *Affixer) selectByOverlap(md Metadata) *entry {
	qStart, qEnd := md.PTS, md.PTS+md.Duration
	var best *entry
	bestPct := -1
	for _, e := range a.entries {
		eEnd := e.pts + a.cfg.InferenceFrameDuration
		start := max64(qStart, e.pts)
		end := min64(qEnd, eEnd)
		overlap := end - start
		if overlap <= 0 {
			continue
		}
		pct := int((100*overlap + a.cfg.InferenceFrameDuration/2) / a.cfg.InferenceFrameDuration) // rounded.
		if pct > bestPct || (pct == bestPct && e.seqID < best.seqID) {
			bestPct = pct
			best = e
		}
	}
	return best
}

// rescale deep-copies sel's tree and scales every node's bbox from sel's
// recorded video dimensions to vinfo's, per §4.8.
func (a *Affixer) rescale(sel *entry, vinfo VideoInfo) *predict.Prediction {
	cp := predict.DeepCopy(sel.tree)
	if sel.width <= 0 || sel.height <= 0 {
		return cp
	}
	h := float64(vinfo.Width) / float64(sel.width)
	v := float64(vinfo.Height) / float64(sel.height)
	scaleTree(cp, h, v)
	return cp
}

func scaleTree(node *predict.Prediction, h, v float64) {
	if node == nil {
		return
	}
	node.BBoxScaled = scaleBox(node.BBox, h, v)
	for _, c := range node.Children {
		scaleTree(c, h, v)
	}
}

func scaleBox(b predict.BoundingBox, h, v float64) predict.BoundingBox {
	return predict.BoundingBox{
		X:      int(float64(b.X) * h),
		Y:      int(float64(b.Y) * v),
		Width:  roundInt(float64(b.Width) * h),
		Height: roundInt(float64(b.Height) * v),
	}
}

func roundInt(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
