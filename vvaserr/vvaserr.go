/*
NAME
  vvaserr.go

DESCRIPTION
  vvaserr.go defines the closed set of result codes returned across the
  parser, affixer and overlay builder surfaces, collapsing the "function
  result plus out-parameter" pattern used by the prior implementation into a
  single sum type, per the Design Note in §9 of the specification.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package vvaserr defines the shared result-code vocabulary used across
// vvascore's public surfaces.
package vvaserr

import "fmt"

// Code is a result code returned from a public vvascore operation. Negative
// codes are errors; non-negative codes are normal outcomes, per §7.
type Code int

// Result codes, per §7. Non-negative values are normal outcomes; negative
// values are errors.
const (
	Success        Code = 0  // Operation completed normally.
	Eos            Code = 1  // End of stream reached; any pending AU was flushed.
	SendAgain      Code = 2  // Caller should call again without new input.
	NeedMoreData   Code = 3  // Insufficient input to make progress; supply more.
	CapsChanged    Code = 4  // A decoder configuration change was emitted alongside the result.
	NoFrameOverlap Code = 5  // Domain-specific "no match" outcome; not an error.
	AllocError     Code = -1 // Allocation failed along the emission path.
	InvalidArgs    Code = -2 // Caller-supplied arguments were invalid (e.g. nil pointers).
	ParseError     Code = -3 // A NAL unit or syntax element was malformed.
	Generic        Code = -4 // An otherwise unclassified error occurred.
)

// IsError reports whether c represents a failure outcome.
func (c Code) IsError() bool {
	return c < Success
}

func (c Code) String() string {
	switch c {
	case Success:
		return "Success"
	case Eos:
		return "Eos"
	case SendAgain:
		return "SendAgain"
	case NeedMoreData:
		return "NeedMoreData"
	case CapsChanged:
		return "CapsChanged"
	case NoFrameOverlap:
		return "NoFrameOverlap"
	case AllocError:
		return "AllocError"
	case InvalidArgs:
		return "InvalidArgs"
	case ParseError:
		return "ParseError"
	case Generic:
		return "Generic"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Error adapts a Code to the error interface so it can be returned or
// wrapped alongside context with github.com/pkg/errors where a caller needs
// a genuine error value rather than a bare code.
type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// New returns an *Error with the given code and message.
func New(c Code, msg string) *Error {
	return &Error{Code: c, Msg: msg}
}
