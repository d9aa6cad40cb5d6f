/*
NAME
  string.go

DESCRIPTION
  string.go produces a deterministic, indented text serialisation of a
  prediction tree, used for debugging output and test oracles, per §4.7.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package predict

import (
	"fmt"
	"strings"
)

// String produces a deterministic, indented serialisation of node and its
// subtree: id, enabled flag, bbox, track label, classes, and nested
// predictions, per §4.7.
func String(node *Prediction) string {
	var b strings.Builder
	writeNode(&b, node, 0)
	return b.String()
}

func writeNode(b *strings.Builder, node *Prediction, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%sid=%d enabled=%v class=%s track=%q bbox=(%d,%d,%d,%d)\n",
		indent, node.PredictionID, node.Enabled, node.ModelClass, node.ObjTrackLabel,
		node.BBox.X, node.BBox.Y, node.BBox.Width, node.BBox.Height)
	for _, c := range node.Classifications {
		fmt.Fprintf(b, "%s  class=%s label=%s prob=%.2f\n", indent, c.ModelClass, c.ClassLabel, c.ClassProb)
	}
	for _, child := range node.Children {
		writeNode(b, child, depth+1)
	}
}
