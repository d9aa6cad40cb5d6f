/*
NAME
  slice.go

DESCRIPTION
  slice.go parses the leading fields of an H.264 slice header needed to
  determine whether a VCL NAL begins a new access unit, per §4.4.

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

// SliceHeader carries the subset of slice_header() fields listed in §4.4 as
// significant to access-unit boundary detection, plus the nal_ref_idc and
// nal_unit_type values of the NAL that carried it (those aren't part of the
// RBSP itself, but the boundary rule needs them).
type SliceHeader struct {
	NALRefIDC   int
	NALUnitType int

	FirstMBInSlice uint32
	SliceType      uint32
	PPSID          uint32

	FrameNum        uint32
	FieldPicFlag    bool
	BottomFieldFlag bool

	IDRPicID uint32 // only meaningful when NALUnitType == NALTypeIDR.

	PicOrderCntLSB         uint32
	DeltaPicOrderCntBottom int64
	DeltaPicOrderCnt0      int64
	DeltaPicOrderCnt1      int64
}

// ParseSliceHeader parses the leading fields of slice_header() per
// §7.3.3, given the SPS/PPS the slice's pic_parameter_set_id resolves to.
// nalRefIDC and nalUnitType come from the NAL header byte, not the RBSP.
func ParseSliceHeader(rbsp []byte, nalRefIDC, nalUnitType int, findPPS func(id uint32) (*PPS, bool), findSPS func(id uint32) (*SPS, bool)) (*SliceHeader, error) {
	c := bitio.NewCursor(rbsp)
	r := newFieldReader(c)

	h := &SliceHeader{NALRefIDC: nalRefIDC, NALUnitType: nalUnitType}
	h.FirstMBInSlice = uint32(r.ue())
	h.SliceType = uint32(r.ue())
	h.PPSID = uint32(r.ue())

	pps, ok := findPPS(h.PPSID)
	if !ok || !pps.Valid {
		return nil, errUnknownPPSID
	}
	sps, ok := findSPS(pps.SPSID)
	if !ok || !sps.Valid {
		return nil, errUnknownSPSID
	}

	if sps.SeparateColorPlaneFlag {
		r.u(2) // colour_plane_id.
	}
	h.FrameNum = uint32(r.u(int(sps.Log2MaxFrameNumMinus4) + 4))

	if !sps.FrameMBSOnlyFlag {
		h.FieldPicFlag = r.flag()
		if h.FieldPicFlag {
			h.BottomFieldFlag = r.flag()
		}
	}

	if nalUnitType == NALTypeIDR {
		h.IDRPicID = uint32(r.ue())
	}

	if sps.PicOrderCntType == 0 {
		h.PicOrderCntLSB = uint32(r.u(int(sps.Log2MaxPicOrderCntLSB) + 4))
		if pps.BottomFieldPicOrderInFramePresent && !h.FieldPicFlag {
			h.DeltaPicOrderCntBottom = r.se()
		}
	} else if sps.PicOrderCntType == 1 && !sps.DeltaPicOrderAlwaysZeroFlag {
		h.DeltaPicOrderCnt0 = r.se()
		if pps.BottomFieldPicOrderInFramePresent && !h.FieldPicFlag {
			h.DeltaPicOrderCnt1 = r.se()
		}
	}

	if r.truncated() {
		return nil, errTruncatedSlice
	}
	return h, nil
}

// StartsNewAU reports whether cur begins a new access unit relative to
// prev, per the signal list of §4.4. prev is nil for the first slice seen
// in a stream, which always starts a new AU.
func StartsNewAU(prev, cur *SliceHeader) bool {
	if prev == nil {
		return true
	}
	switch {
	case cur.FrameNum != prev.FrameNum:
		return true
	case cur.PPSID != prev.PPSID:
		return true
	case cur.FieldPicFlag != prev.FieldPicFlag:
		return true
	case cur.BottomFieldFlag != prev.BottomFieldFlag:
		return true
	case (cur.NALRefIDC == 0) != (prev.NALRefIDC == 0):
		return true
	case (cur.NALUnitType == NALTypeIDR) != (prev.NALUnitType == NALTypeIDR):
		return true
	case cur.NALUnitType == NALTypeIDR && prev.NALUnitType == NALTypeIDR && cur.IDRPicID != prev.IDRPicID:
		return true
	case cur.PicOrderCntLSB != prev.PicOrderCntLSB:
		return true
	case cur.DeltaPicOrderCntBottom != prev.DeltaPicOrderCntBottom:
		return true
	case cur.DeltaPicOrderCnt0 != prev.DeltaPicOrderCnt0:
		return true
	case cur.DeltaPicOrderCnt1 != prev.DeltaPicOrderCnt1:
		return true
	}
	return false
}
