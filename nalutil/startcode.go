/*
NAME
  startcode.go

DESCRIPTION
  startcode.go locates NAL unit start codes ("00 00 01" or "00 00 00 01")
  within a byte stream buffer.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package nalutil

// FindStartCode scans buf starting at offset for the next "00 00 01"
// sequence. If found is true, pos is the offset of the first byte of the
// start code: the leading zero of a 4-byte "00 00 00 01" start code when
// the byte preceding the 3-byte code is also zero, or the first zero of a
// 3-byte "00 00 01" code otherwise, per §4.3.
//
// If no start code is found before the end of buf, found is false and pos
// is set to len(buf), the end of the scan (NeedMore in the caller's terms).
// The last bytes of buf may hold the start of a code that completes only in
// data that arrives later.
func FindStartCode(buf []byte, offset int) (pos int, found bool) {
	i := offset
	for i+2 < len(buf) {
		if buf[i] == 0x00 && buf[i+1] == 0x00 && buf[i+2] == 0x01 {
			if i > offset && buf[i-1] == 0x00 {
				return i - 1, true
			}
			return i, true
		}
		// Skip ahead: if buf[i+2] isn't 0 or 1 we can jump past it, otherwise
		// advance by one to re-examine overlapping runs of zeros.
		if buf[i+2] > 0x01 {
			i += 3
		} else {
			i++
		}
	}
	return len(buf), false
}
