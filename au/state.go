/*
NAME
  state.go

DESCRIPTION
  state.go implements the access-unit assembler's state machine: locating
  NAL unit boundaries in a raw byte feed, buffering partial input/output
  across calls, and deciding when a complete access unit is ready, per §4.6.

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

import (
	"github.com/ausocean/vvascore/codec/h264"
	"github.com/ausocean/vvascore/codec/h265"
	"github.com/ausocean/vvascore/logging"
	"github.com/ausocean/vvascore/nalutil"
	"github.com/ausocean/vvascore/vvaserr"
)

// State is one stream's assembler state. A State is not safe for
// concurrent use; each stream owns its own instance, per §5.
type State struct {
	codec Codec
	log   *logging.Logger

	carry    []byte
	started  bool
	nalStart int // index into carry of the NAL currently being delimited, or -1.

	pendingOutput []byte // bytes of the AU currently being assembled.
	completedAU   []byte // set by processNAL when a flush occurs.
	haveSPS       bool
	hasSlice      bool

	lastEmittedConfig *DecoderConfig
	pendingConfig     *DecoderConfig // queued for the next flushed AU.

	h264SPS       [32]*h264.SPS
	h264PPS       [256]*h264.PPS
	lastH264Slice *h264.SliceHeader

	h265SPS       [16]*h265.SPS
	lastH265Slice *h265.SliceSegmentHeader
}

// Open creates a new assembler state for the given codec, logging at
// level (the process-wide default logger's verbosity is raised/lowered to
// match, since logging has no per-state destination, per §5).
func Open(codec Codec, level logging.Level) *State {
	logging.Default().SetLevel(level)
	return &State{
		codec:    codec,
		log:      logging.Default(),
		nalStart: -1,
	}
}

// Close releases s. Ownership of any previously returned AU bytes is
// unaffected; s itself must not be used again.
func Close(s *State) {
	s.carry = nil
	s.pendingOutput = nil
	s.completedAU = nil
}

// GetAU advances the assembler with up to validLen bytes of new input,
// returning at most one completed access unit, per §4.6. isEOS signals
// that no further input will be supplied after this call.
func (s *State) GetAU(input []byte, validLen int, isEOS bool) (Outcome, error) {
	if validLen > 0 {
		s.carry = append(s.carry, input[:validLen]...)
	}

	for {
		if s.nalStart < 0 {
			pos, found := nalutil.FindStartCode(s.carry, 0)
			if !found {
				if isEOS {
					return s.finalizeEOS(), nil
				}
				return Outcome{Code: vvaserr.NeedMoreData}, nil
			}
			if !s.started && pos != 0 {
				s.started = true
				return Outcome{Code: vvaserr.ParseError}, vvaserr.New(vvaserr.ParseError, "elementary stream does not begin with a start code")
			}
			s.started = true
			s.nalStart = pos
		}

		pos2, found2 := nalutil.FindStartCode(s.carry, s.nalStart+3)
		if !found2 {
			if isEOS {
				return s.finalizeEOS(), nil
			}
			s.carry = append([]byte(nil), s.carry[s.nalStart:]...)
			s.nalStart = 0
			return Outcome{Code: vvaserr.NeedMoreData}, nil
		}

		raw := append([]byte(nil), s.carry[s.nalStart:pos2]...)
		flushed, perr := s.processNAL(raw)
		s.carry = s.carry[pos2:]
		s.nalStart = 0

		if perr != nil {
			s.log.Warning("au: dropping malformed NAL: %v", perr)
		}
		if flushed {
			out := Outcome{Code: vvaserr.Success, AU: s.completedAU}
			s.completedAU = nil
			s.attachPendingConfig(&out)
			return out, nil
		}
	}
}

// finalizeEOS emits whatever has been assembled, plus any dangling tail
// that never reached a following start code, as the final AU.
func (s *State) finalizeEOS() Outcome {
	au := s.pendingOutput
	if s.nalStart >= 0 && s.nalStart < len(s.carry) {
		au = append(au, s.carry[s.nalStart:]...)
	}
	s.pendingOutput = nil
	s.completedAU = nil
	s.carry = nil
	s.nalStart = -1

	out := Outcome{Code: vvaserr.Eos}
	if len(au) > 0 {
		out.AU = au
	}
	s.attachPendingConfig(&out)
	return out
}

// attachPendingConfig moves any queued config onto out, marking the
// outcome CapsChanged when it would otherwise have been a plain Success,
// per §6/§7. A pending config riding alongside Eos keeps the Eos code;
// callers distinguish the two by checking Config != nil.
func (s *State) attachPendingConfig(out *Outcome) {
	if s.pendingConfig == nil {
		return
	}
	out.Config = s.pendingConfig
	s.lastEmittedConfig = s.pendingConfig
	s.pendingConfig = nil
	if out.Code == vvaserr.Success {
		out.Code = vvaserr.CapsChanged
	}
}

// appendOrFlush implements the shared "append to the in-progress AU, or
// flush it and start a new one with raw" decision of §4.6 steps 4-5. A
// freshly started AU contains no slice yet, so a flush clears hasSlice;
// the VCL caller re-sets it to true immediately afterward.
func (s *State) appendOrFlush(raw []byte, startsNew bool) (flushed bool) {
	if s.hasSlice && startsNew {
		s.completedAU = s.pendingOutput
		s.pendingOutput = append([]byte(nil), raw...)
		s.hasSlice = false
		return true
	}
	s.pendingOutput = append(s.pendingOutput, raw...)
	return false
}

// nalPayloadOffset returns the index within raw at which the NAL header
// byte begins, accounting for a 3- or 4-byte start code.
func nalPayloadOffset(raw []byte) int {
	if len(raw) >= 3 && raw[0] == 0 && raw[1] == 0 && raw[2] == 1 {
		return 3
	}
	return 4
}
