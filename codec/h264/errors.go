/*
NAME
  errors.go

DESCRIPTION
  errors.go defines sentinel errors returned by the h264 package's parsers.

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

import "github.com/pkg/errors"

var (
	errTruncatedSPS   = errors.New("h264: sps truncated before all required fields were read")
	errTruncatedPPS   = errors.New("h264: pps truncated before all required fields were read")
	errTruncatedSlice = errors.New("h264: slice header truncated before all required fields were read")
	errUnknownSPSID   = errors.New("h264: slice references an unknown sps id")
	errUnknownPPSID   = errors.New("h264: slice references an unknown pps id")
)
