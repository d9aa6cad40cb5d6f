/*
NAME
  types.go

DESCRIPTION
  types.go defines the public data types of the access-unit assembler:
  codec selection, the decoder-configuration record, and the outcome of a
  GetAU call.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package au assembles a raw H.264/H.265 elementary-stream byte feed into
// discrete access units, emitting a decoder configuration whenever the
// stream's parameters change, per §4.6.
package au

import "github.com/ausocean/vvascore/vvaserr"

// Codec selects which bitstream grammar a State interprets.
type Codec int

const (
	H264 Codec = iota
	H265
)

func (c Codec) String() string {
	switch c {
	case H264:
		return "H264"
	case H265:
		return "H265"
	default:
		return "unknown"
	}
}

// DecoderConfig is derived from the most recently parsed SPS, per §3/§6.
// FrameRateNum/FrameRateDen are 0 when the stream's SPS carries no timing
// information.
type DecoderConfig struct {
	Codec      Codec
	Profile    int
	Level      int
	BitDepth   int
	Width      int
	Height     int
	ChromaMode int
	ScanType   string

	FrameRateNum uint32
	FrameRateDen uint32
}

// Equal reports whether two configs describe the same stream parameters;
// a nil receiver or argument is only equal to another nil.
func (c *DecoderConfig) Equal(o *DecoderConfig) bool {
	if c == nil || o == nil {
		return c == o
	}
	return *c == *o
}

// Outcome is the result of a single GetAU call, per §6.
type Outcome struct {
	Code   vvaserr.Code
	AU     []byte
	Config *DecoderConfig
}
