/*
NAME
  fieldreader.go

DESCRIPTION
  fieldreader.go provides a thin wrapper around bitio.Cursor for reading
  VPS/SPS/slice-segment-header syntax elements, mirroring the h264 package's
  fieldReader.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package h265

import "github.com/ausocean/vvascore/bitio"

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
