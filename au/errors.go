/*
NAME
  errors.go

DESCRIPTION
  errors.go defines sentinel errors for malformed-input conditions detected
  by the access-unit assembler itself, as distinct from the codec parsers'
  own errors.

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

import "github.com/pkg/errors"

var (
	errEmptyNAL     = errors.New("au: delimited NAL unit carries no payload past its header")
	errUnknownCodec = errors.New("au: state was opened with an unrecognised codec")
)
