/*
NAME
  errors.go

DESCRIPTION
  errors.go defines sentinel errors returned by the h265 package's parsers.

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

import "github.com/pkg/errors"

var (
	errTruncatedSPS   = errors.New("h265: sps truncated before all required fields were read")
	errTruncatedSlice = errors.New("h265: slice segment header truncated before all required fields were read")
	errUnsupportedRPS = errors.New("h265: short-term rps references an out-of-range prediction source")
)
