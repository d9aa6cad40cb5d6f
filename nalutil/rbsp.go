/*
NAME
  rbsp.go

DESCRIPTION
  rbsp.go strips emulation-prevention bytes from a NAL unit's escaped
  payload (EBSP) to produce the raw byte sequence payload (RBSP).

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package nalutil provides codec-agnostic helpers shared by the H.264 and
// H.265 parsers: emulation-prevention-byte removal and start-code scanning.
package nalutil

// states for the emulation-prevention state machine.
const (
	stateZero0 = iota // no pending zero bytes.
	stateZero1        // one pending zero byte seen.
	stateZero2        // two pending zero bytes seen.
)

// ToRBSP strips 0x03 emulation-prevention bytes from buf[start:end],
// collapsing any "00 00 03" sequence to "00 00", and returns a freshly
// allocated slice holding the result. Per §4.2, this is implemented as a
// small state machine over {0,1,2} counting consecutive zero bytes; when
// two zero bytes are immediately followed by 0x03, the 0x03 is dropped
// rather than copied.
func ToRBSP(buf []byte, start, end int) []byte {
	out := make([]byte, 0, end-start)
	state := stateZero0
	for i := start; i < end; i++ {
		b := buf[i]
		switch {
		case state == stateZero2 && b == 0x03:
			// Drop the emulation-prevention byte and resynchronise.
			state = stateZero0
			continue
		case b == 0x00:
			if state < stateZero2 {
				state++
			}
		default:
			state = stateZero0
		}
		out = append(out, b)
	}
	return out
}
