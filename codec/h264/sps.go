/*
NAME
  sps.go

DESCRIPTION
  sps.go parses an H.264 sequence parameter set RBSP, capturing the fields
  needed for access-unit boundary detection and decoder-configuration
  extraction, per §3 and §4.4.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
  mrmod <mcmoranbjr@gmail.com>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package h264

import "github.com/ausocean/vvascore/bitio"

// profileHasChromaInfo lists profile_idc values for which SPS carries
// chroma-format/bit-depth/scaling-matrix fields (Annex A).
var profileHasChromaInfo = map[uint32]bool{
	100: true, 110: true, 122: true, 244: true, 44: true,
	83: true, 86: true, 118: true, 128: true, 138: true,
	139: true, 134: true, 135: true,
}

// SPS is a sequence parameter set, indexed by SPSID (0..31) in the parser's
// stream info table. Valid distinguishes an initialised slot, per §3.
type SPS struct {
	Valid bool

	Profile  uint8
	LevelIDC uint8
	SPSID    uint32

	ChromaFormatIDC        uint32
	SeparateColorPlaneFlag bool
	BitDepthLumaMinus8     uint32
	BitDepthChromaMinus8   uint32

	Log2MaxFrameNumMinus4 uint32
	PicOrderCntType       uint32
	Log2MaxPicOrderCntLSB uint32

	DeltaPicOrderAlwaysZeroFlag bool
	OffsetForNonRefPic          int64
	OffsetForTopToBottomField   int64
	OffsetForRefFrame           []int64

	PicWidthInMBSMinus1       uint32
	PicHeightInMapUnitsMinus1 uint32
	FrameMBSOnlyFlag          bool
	MBAdaptiveFrameFieldFlag  bool

	FrameCroppingFlag     bool
	FrameCropLeftOffset   uint32
	FrameCropRightOffset  uint32
	FrameCropTopOffset    uint32
	FrameCropBottomOffset uint32

	// VUI timing, 0 when absent, per §3's decoder configuration.
	TimingInfoPresent bool
	NumUnitsInTick    uint32
	TimeScale         uint32
}

// Width returns the coded picture width in pixels, with crop applied.
func (s *SPS) Width() int {
	w := (int(s.PicWidthInMBSMinus1) + 1) * 16
	if s.FrameCroppingFlag {
		cropX := cropUnitX(s.ChromaFormatIDC, s.SeparateColorPlaneFlag)
		w -= int(s.FrameCropLeftOffset+s.FrameCropRightOffset) * cropX
	}
	return w
}

// Height returns the coded picture height in pixels, with crop applied.
func (s *SPS) Height() int {
	frameMBHeight := 16
	if !s.FrameMBSOnlyFlag {
		frameMBHeight = 32
	}
	h := (int(s.PicHeightInMapUnitsMinus1) + 1) * frameMBHeight
	if s.FrameCroppingFlag {
		cropY := cropUnitY(s.ChromaFormatIDC, s.SeparateColorPlaneFlag, s.FrameMBSOnlyFlag)
		h -= int(s.FrameCropTopOffset+s.FrameCropBottomOffset) * cropY
	}
	return h
}

// subWidthC and subHeightC tabulate Table 6-1 of ITU-T H.264 for
// chroma_format_idc values 1..3 (4:2:0, 4:2:2, 4:4:4).
var subWidthC = [4]int{0, 2, 2, 1}
var subHeightC = [4]int{0, 2, 1, 1}

func cropUnitX(chromaFormatIDC uint32, separateColourPlane bool) int {
	if chromaFormatIDC == 0 || separateColourPlane {
		return 1
	}
	return subWidthC[chromaFormatIDC]
}

func cropUnitY(chromaFormatIDC uint32, separateColourPlane, frameMBSOnly bool) int {
	frameAndFieldFactor := 2
	if frameMBSOnly {
		frameAndFieldFactor = 1
	}
	if chromaFormatIDC == 0 || separateColourPlane {
		return frameAndFieldFactor
	}
	return subHeightC[chromaFormatIDC] * frameAndFieldFactor
}

// ParseSPS parses a sequence_parameter_set_rbsp() structure per §7.3.2.1.1,
// capturing the fields enumerated in §3/§4.4. Scaling-list and other
// decode-only fields are skipped over (read and discarded) since only
// boundary detection and decoder-configuration fields are needed here.
func ParseSPS(rbsp []byte) (*SPS, error) {
	c := bitio.NewCursor(rbsp)
	r := newFieldReader(c)

	s := &SPS{}
	s.Profile = uint8(r.u(8))
	r.u(8) // constraint flags + reserved bits.
	s.LevelIDC = uint8(r.u(8))
	s.SPSID = uint32(r.ue())

	s.ChromaFormatIDC = 1 // inferred default when not present.
	if profileHasChromaInfo[uint32(s.Profile)] {
		s.ChromaFormatIDC = uint32(r.ue())
		if s.ChromaFormatIDC == 3 {
			s.SeparateColorPlaneFlag = r.flag()
		}
		s.BitDepthLumaMinus8 = uint32(r.ue())
		s.BitDepthChromaMinus8 = uint32(r.ue())
		r.flag() // qpprime_y_zero_transform_bypass_flag.
		if r.flag() {
			skipSeqScalingMatrix(&r, s.ChromaFormatIDC)
		}
	}

	s.Log2MaxFrameNumMinus4 = uint32(r.ue())
	s.PicOrderCntType = uint32(r.ue())
	switch s.PicOrderCntType {
	case 0:
		s.Log2MaxPicOrderCntLSB = uint32(r.ue())
	case 1:
		s.DeltaPicOrderAlwaysZeroFlag = r.flag()
		s.OffsetForNonRefPic = r.se()
		s.OffsetForTopToBottomField = r.se()
		n := r.ue()
		s.OffsetForRefFrame = make([]int64, n)
		for i := range s.OffsetForRefFrame {
			s.OffsetForRefFrame[i] = r.se()
		}
	}

	r.ue()     // max_num_ref_frames.
	r.flag()   // gaps_in_frame_num_value_allowed_flag.
	s.PicWidthInMBSMinus1 = uint32(r.ue())
	s.PicHeightInMapUnitsMinus1 = uint32(r.ue())
	s.FrameMBSOnlyFlag = r.flag()
	if !s.FrameMBSOnlyFlag {
		s.MBAdaptiveFrameFieldFlag = r.flag()
	}
	r.flag() // direct_8x8_inference_flag.

	s.FrameCroppingFlag = r.flag()
	if s.FrameCroppingFlag {
		s.FrameCropLeftOffset = uint32(r.ue())
		s.FrameCropRightOffset = uint32(r.ue())
		s.FrameCropTopOffset = uint32(r.ue())
		s.FrameCropBottomOffset = uint32(r.ue())
	}

	if r.flag() { // vui_parameters_present_flag.
		parseVUITiming(&r, s)
	}

	if r.truncated() {
		return nil, errTruncatedSPS
	}
	s.Valid = true
	return s, nil
}

// skipSeqScalingMatrix reads past seq_scaling_list_present_flag[i] and any
// scaling_list() syntax structures without retaining the values; scaling
// lists affect dequantisation, not AU boundaries or decoder configuration.
func skipSeqScalingMatrix(r *fieldReader, chromaFormatIDC uint32) {
	n := 8
	if chromaFormatIDC == 3 {
		n = 12
	}
	for i := 0; i < n; i++ {
		if r.flag() {
			size := 16
			if i >= 6 {
				size = 64
			}
			skipScalingList(r, size)
		}
	}
}

// skipScalingList reads past a scaling_list() structure of the given size,
// per §7.3.2.1.1.1.
func skipScalingList(r *fieldReader, size int) {
	lastScale, nextScale := 8, 8
	for j := 0; j < size; j++ {
		if nextScale != 0 {
			delta := r.se()
			nextScale = (lastScale + int(delta) + 256) % 256
		}
		if nextScale != 0 {
			lastScale = nextScale
		}
	}
}

// parseVUITiming reads only the timing_info fields of vui_parameters(),
// since that's all §4.4's decoder configuration needs; remaining VUI fields
// (aspect ratio, overscan, colour description, bitstream restriction, ...)
// are not parsed because this NAL may not contain them and they don't
// affect AU boundaries.
func parseVUITiming(r *fieldReader, s *SPS) {
	if r.flag() { // aspect_ratio_info_present_flag.
		idc := r.u(8)
		if idc == 255 {
			r.u(16) // sar_width.
			r.u(16) // sar_height.
		}
	}
	if r.flag() { // overscan_info_present_flag.
		r.flag()
	}
	if r.flag() { // video_signal_type_present_flag.
		r.u(3) // video_format.
		r.flag()
		if r.flag() { // colour_description_present_flag.
			r.u(8)
			r.u(8)
			r.u(8)
		}
	}
	if r.flag() { // chroma_loc_info_present_flag.
		r.ue()
		r.ue()
	}
	if r.flag() { // timing_info_present_flag.
		s.TimingInfoPresent = true
		s.NumUnitsInTick = r.u(32)
		s.TimeScale = r.u(32)
		r.flag() // fixed_frame_rate_flag.
	}
}
