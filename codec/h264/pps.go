/*
NAME
  pps.go

DESCRIPTION
  pps.go parses an H.264 picture parameter set RBSP, capturing the fields
  needed for slice-header parsing, per §3 and §4.4.

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

// PPS is a picture parameter set, indexed by PPSID (0..255) in the parser's
// stream info table.
type PPS struct {
	Valid bool

	PPSID uint32
	SPSID uint32

	EntropyCodingModeFlag             bool
	BottomFieldPicOrderInFramePresent bool
	NumSliceGroupsMinus1              uint32
	RedundantPicCntPresentFlag        bool
}

// ParsePPS parses a picture_parameter_set_rbsp() structure per §7.3.2.2,
// reading only as far as the fields a slice header needs to interpret its
// own syntax elements (redundant_pic_cnt_present_flag and the fields that
// precede it); the remainder of the PPS concerns quantisation and is not
// needed for boundary detection.
func ParsePPS(rbsp []byte) (*PPS, error) {
	c := bitio.NewCursor(rbsp)
	r := newFieldReader(c)

	p := &PPS{}
	p.PPSID = uint32(r.ue())
	p.SPSID = uint32(r.ue())
	p.EntropyCodingModeFlag = r.flag()
	p.BottomFieldPicOrderInFramePresent = r.flag()
	p.NumSliceGroupsMinus1 = uint32(r.ue())
	if p.NumSliceGroupsMinus1 > 0 {
		skipSliceGroupMapping(&r, p.NumSliceGroupsMinus1)
	}
	r.ue() // num_ref_idx_l0_default_active_minus1.
	r.ue() // num_ref_idx_l1_default_active_minus1.
	r.flag() // weighted_pred_flag.
	r.u(2)   // weighted_bipred_idc.
	r.se()   // pic_init_qp_minus26.
	r.se()   // pic_init_qs_minus26.
	r.se()   // chroma_qp_index_offset.
	r.flag() // deblocking_filter_control_present_flag.
	r.flag() // constrained_intra_pred_flag.
	p.RedundantPicCntPresentFlag = r.flag()

	if r.truncated() {
		return nil, errTruncatedPPS
	}
	p.Valid = true
	return p, nil
}

// skipSliceGroupMapping reads past slice_group_map_type and its associated
// fields, per §7.3.2.2; slice group mapping affects macroblock-to-slice
// assignment, not boundary detection.
func skipSliceGroupMapping(r *fieldReader, numSliceGroupsMinus1 uint32) {
	mapType := r.ue()
	switch mapType {
	case 0:
		for i := uint64(0); i <= uint64(numSliceGroupsMinus1); i++ {
			r.ue() // run_length_minus1[i].
		}
	case 2:
		for i := uint64(0); i < uint64(numSliceGroupsMinus1); i++ {
			r.ue() // top_left[i].
			r.ue() // bottom_right[i].
		}
	case 3, 4, 5:
		r.flag() // slice_group_change_direction_flag.
		r.ue()   // slice_group_change_rate_minus1.
	case 6:
		picSizeInMapUnitsMinus1 := r.ue()
		bits := bitsFor(numSliceGroupsMinus1 + 1)
		for i := uint64(0); i <= picSizeInMapUnitsMinus1; i++ {
			r.u(bits) // slice_group_id[i].
		}
	}
}

// bitsFor returns Ceil(Log2(n)), the fixed field width used by
// slice_group_id per §7.4.2.2.
func bitsFor(n uint32) int {
	bits := 0
	for v := n - 1; v > 0; v >>= 1 {
		bits++
	}
	return bits
}
