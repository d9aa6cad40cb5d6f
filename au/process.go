/*
NAME
  process.go

DESCRIPTION
  process.go dispatches a single delimited NAL unit to the relevant codec's
  parser, updating the assembler's SPS/PPS tables and deciding whether the
  NAL starts a new access unit, per §4.6 steps 1-5.

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

import "github.com/ausocean/vvascore/nalutil"

// processNAL classifies raw (one complete NAL unit, including its start
// code) and folds it into the in-progress AU, returning whether doing so
// flushed a completed AU. A non-nil error means the NAL was malformed and
// was dropped without being appended, per §7.
func (s *State) processNAL(raw []byte) (flushed bool, err error) {
	hdrOff := nalPayloadOffset(raw)
	if hdrOff >= len(raw) {
		return false, errEmptyNAL
	}
	switch s.codec {
	case H264:
		return s.processH264NAL(raw, hdrOff)
	case H265:
		return s.processH265NAL(raw, hdrOff)
	default:
		return false, errUnknownCodec
	}
}

// rbspOf strips emulation-prevention bytes from raw's payload, starting
// after the NAL header bytes (1 for H.264, 2 for H.265).
func rbspOf(raw []byte, headerBytes int) []byte {
	return nalutil.ToRBSP(raw, headerBytes, len(raw))
}

// gcd returns the greatest common divisor of a and b, used to reduce a
// VUI timing fraction to lowest terms. gcd(0, b) is b, so a zero timescale
// never causes a divide-by-zero in the caller.
func gcd(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
