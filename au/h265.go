/*
NAME
  h265.go

DESCRIPTION
  h265.go implements the H.265-specific half of the access-unit
  assembler's per-NAL dispatch: SPS capture, decoder-configuration
  derivation, and the boundary-type rules of §4.5/§4.6.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package au

import "github.com/ausocean/vvascore/codec/h265"

// processH265NAL implements §4.6 steps 1-5 for an H.265 elementary stream.
// H.265 slice-segment headers carry their own PPS id but need no SPS/PPS
// lookup to decide boundaries, unlike H.264, so no PPS table is kept here.
func (s *State) processH265NAL(raw []byte, hdrOff int) (flushed bool, err error) {
	nalUnitType := h265.Type(raw[hdrOff])

	switch {
	case nalUnitType == h265.NALTypeSPS:
		sps, perr := h265.ParseSPS(rbspOf(raw, hdrOff+2))
		if perr != nil {
			return false, perr
		}
		s.h265SPS[sps.SPSID] = sps
		s.haveSPS = true
		cfg := deriveH265Config(sps)
		if !cfg.Equal(s.lastEmittedConfig) {
			s.pendingConfig = cfg
		}
		return s.appendOrFlush(raw, s.hasSlice && isH265Boundary(nalUnitType)), nil

	case h265.IsVCL(nalUnitType):
		if !s.haveSPS {
			s.pendingOutput = nil
			s.hasSlice = false
			s.log.Warning("au: discarding H.265 VCL NAL received before any valid SPS")
			return false, nil
		}
		hdr, perr := h265.ParseSliceSegmentHeader(rbspOf(raw, hdrOff+2), nalUnitType)
		if perr != nil {
			return false, perr
		}
		startsNew := h265.StartsNewAU(hdr)
		flushed := s.appendOrFlush(raw, s.hasSlice && startsNew)
		s.hasSlice = true
		s.lastH265Slice = hdr
		return flushed, nil

	default:
		return s.appendOrFlush(raw, s.hasSlice && isH265Boundary(nalUnitType)), nil
	}
}

// isH265Boundary reports whether typ is one of the non-VCL NAL types that,
// per §4.6 step 4, flushes the in-progress AU for an H.265 stream: VPS or
// a prefix SEI. SPS, PPS and suffix SEI never force a boundary for HEVC
// per §4.6, unlike H.264's broader boundary set.
func isH265Boundary(typ int) bool {
	switch typ {
	case h265.NALTypeVPS, h265.NALTypeSEIPrefix:
		return true
	default:
		return false
	}
}

// deriveH265Config builds the decoder configuration carried by sps, per
// §3/§4.5: time_scale is the numerator, num_units_in_tick the denominator,
// GCD-reduced.
func deriveH265Config(sps *h265.SPS) *DecoderConfig {
	cfg := &DecoderConfig{
		Codec:      H265,
		Profile:    int(sps.GeneralProfileIdc),
		Level:      int(sps.LevelTimes10()),
		BitDepth:   int(sps.BitDepthLumaMinus8) + 8,
		Width:      sps.Width(),
		Height:     sps.Height(),
		ChromaMode: int(sps.ChromaFormatIDC),
		ScanType:   "progressive",
	}
	if sps.TimingInfoPresent && sps.NumUnitsInTick > 0 {
		g := gcd(sps.TimeScale, sps.NumUnitsInTick)
		cfg.FrameRateNum = sps.TimeScale / g
		cfg.FrameRateDen = sps.NumUnitsInTick / g
	}
	return cfg
}
