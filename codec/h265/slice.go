/*
NAME
  slice.go

DESCRIPTION
  slice.go parses the leading fields of an H.265 slice segment header
  needed to determine whether a VCL NAL begins a new access unit, per §4.5.

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

// SliceSegmentHeader carries the leading fields of slice_segment_header()
// significant to access-unit boundary detection, per §4.5.
type SliceSegmentHeader struct {
	NALUnitType int

	FirstSliceSegmentInPicFlag bool
	NoOutputOfPriorPicsFlag    bool // only present for IRAP pictures.
	PPSID                      uint32
}

// ParseSliceSegmentHeader parses the leading fields of
// slice_segment_header(), per §7.3.6.1.
func ParseSliceSegmentHeader(rbsp []byte, nalUnitType int) (*SliceSegmentHeader, error) {
	c := bitio.NewCursor(rbsp)
	r := newFieldReader(c)

	h := &SliceSegmentHeader{NALUnitType: nalUnitType}
	h.FirstSliceSegmentInPicFlag = r.flag()
	if IsIRAP(nalUnitType) {
		h.NoOutputOfPriorPicsFlag = r.flag()
	}
	h.PPSID = uint32(r.ue())

	if r.truncated() {
		return nil, errTruncatedSlice
	}
	return h, nil
}

// StartsNewAU reports whether the slice segment starts a new picture, per
// §4.5: first_slice_segment_in_pic_flag == 1 always marks a new picture,
// regardless of what preceded it.
func StartsNewAU(h *SliceSegmentHeader) bool {
	return h.FirstSliceSegmentInPicFlag
}
