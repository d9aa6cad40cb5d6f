/*
NAME
  fieldreader.go

DESCRIPTION
  fieldreader.go provides a sticky-error wrapper around bitio.Cursor for
  reading SPS/PPS/slice-header syntax elements, mirroring the teacher's
  h264dec fieldReader pattern.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package h264

import "github.com/ausocean/vvascore/bitio"

// fieldReader reads bool/int syntax elements from a bitio.Cursor. Because
// bitio.Cursor never errors (it zero-extends past EOF per §4.1), fieldReader
// instead tracks whether the cursor ran past the end of the buffer while it
// was reading, so a parser can detect a truncated NAL after the fact.
type fieldReader struct {
	c *bitio.Cursor
}

func newFieldReader(c *bitio.Cursor) fieldReader {
	return fieldReader{c: c}
}

func (r fieldReader) u(n int) uint32  { return r.c.ReadU(n) }
func (r fieldReader) flag() bool      { return r.c.ReadFlag() }
func (r fieldReader) ue() uint64      { return r.c.ReadUE() }
func (r fieldReader) se() int64       { return r.c.ReadSE() }
func (r fieldReader) truncated() bool { return r.c.Overrun() }
