/*
NAME
  h264.go

DESCRIPTION
  h264.go implements the H.264-specific half of the access-unit assembler's
  per-NAL dispatch: SPS/PPS capture, decoder-configuration derivation, and
  the boundary-type rules of §4.4/§4.6.

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

import "github.com/ausocean/vvascore/codec/h264"

// processH264NAL implements §4.6 steps 1-5 for an H.264 elementary stream.
func (s *State) processH264NAL(raw []byte, hdrOff int) (flushed bool, err error) {
	nalRefIDC := int((raw[hdrOff] >> 5) & 0x3)
	nalUnitType := h264.Type(raw[hdrOff])

	switch {
	case nalUnitType == h264.NALTypeSPS:
		sps, perr := h264.ParseSPS(rbspOf(raw, hdrOff+1))
		if perr != nil {
			return false, perr
		}
		s.h264SPS[sps.SPSID] = sps
		s.haveSPS = true
		cfg := deriveH264Config(sps)
		if !cfg.Equal(s.lastEmittedConfig) {
			s.pendingConfig = cfg
		}
		return s.appendOrFlush(raw, s.hasSlice && isH264Boundary(nalUnitType)), nil

	case nalUnitType == h264.NALTypePPS:
		pps, perr := h264.ParsePPS(rbspOf(raw, hdrOff+1))
		if perr != nil {
			return false, perr
		}
		s.h264PPS[pps.PPSID] = pps
		return s.appendOrFlush(raw, s.hasSlice && isH264Boundary(nalUnitType)), nil

	case h264.IsVCL(nalUnitType):
		if !s.haveSPS {
			s.pendingOutput = nil
			s.hasSlice = false
			s.log.Warning("au: discarding H.264 VCL NAL received before any valid SPS")
			return false, nil
		}
		hdr, perr := h264.ParseSliceHeader(rbspOf(raw, hdrOff+1), nalRefIDC, nalUnitType, s.findH264PPS, s.findH264SPS)
		if perr != nil {
			return false, perr
		}
		startsNew := h264.StartsNewAU(s.lastH264Slice, hdr)
		flushed := s.appendOrFlush(raw, s.hasSlice && startsNew)
		s.hasSlice = true
		s.lastH264Slice = hdr
		return flushed, nil

	default:
		return s.appendOrFlush(raw, s.hasSlice && isH264Boundary(nalUnitType)), nil
	}
}

func (s *State) findH264PPS(id uint32) (*h264.PPS, bool) {
	if id >= uint32(len(s.h264PPS)) || s.h264PPS[id] == nil {
		return nil, false
	}
	return s.h264PPS[id], true
}

func (s *State) findH264SPS(id uint32) (*h264.SPS, bool) {
	if id >= uint32(len(s.h264SPS)) || s.h264SPS[id] == nil {
		return nil, false
	}
	return s.h264SPS[id], true
}

// isH264Boundary reports whether typ is one of the non-VCL NAL types that,
// per §4.6 step 4, flushes the in-progress AU: access unit delimiter, SPS,
// PPS, SEI, or prefix NAL unit.
func isH264Boundary(typ int) bool {
	switch typ {
	case h264.NALTypeAccessUnitDelimiter, h264.NALTypeSPS, h264.NALTypePPS,
		h264.NALTypeSEI, h264.NALTypePrefixNALU:
		return true
	default:
		return false
	}
}

// deriveH264Config builds the decoder configuration carried by sps, per
// §3/§4.4. Frame rate follows the usual VUI convention of time_scale
// counting field instants, so the frame rate's denominator doubles
// num_units_in_tick; both are reduced by their GCD.
func deriveH264Config(sps *h264.SPS) *DecoderConfig {
	cfg := &DecoderConfig{
		Codec:      H264,
		Profile:    int(sps.Profile),
		Level:      int(sps.LevelIDC),
		BitDepth:   int(sps.BitDepthLumaMinus8) + 8,
		Width:      sps.Width(),
		Height:     sps.Height(),
		ChromaMode: int(sps.ChromaFormatIDC),
		ScanType:   "progressive",
	}
	if !sps.FrameMBSOnlyFlag {
		cfg.ScanType = "interlaced"
	}
	if sps.TimingInfoPresent && sps.NumUnitsInTick > 0 {
		num := sps.TimeScale
		den := sps.NumUnitsInTick * 2
		g := gcd(num, den)
		cfg.FrameRateNum = num / g
		cfg.FrameRateDen = den / g
	}
	return cfg
}
