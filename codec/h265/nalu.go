/*
NAME
  nalu.go

DESCRIPTION
  nalu.go provides H.265/HEVC NAL unit type constants and VCL/non-VCL
  classification, per Table 7-1 of ITU-T H.265.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package h265 provides an H.265/HEVC VPS/SPS/slice-segment-header parser
// sufficient for access-unit boundary detection and decoder-configuration
// extraction.
package h265

// NAL unit types, per Table 7-1 of ITU-T H.265 (02/2018).
const (
	NALTypeTrailN     = 0
	NALTypeTrailR     = 1
	NALTypeTSAN       = 2
	NALTypeTSAR       = 3
	NALTypeSTSAN      = 4
	NALTypeSTSAR      = 5
	NALTypeRADLN      = 6
	NALTypeRADLR      = 7
	NALTypeRASLN      = 8
	NALTypeRASLR      = 9
	NALTypeBLAWLP     = 16
	NALTypeBLAWRADL   = 17
	NALTypeBLANLP     = 18
	NALTypeIDRWRADL   = 19
	NALTypeIDRNLP     = 20
	NALTypeCRANUT     = 21
	NALTypeVPS        = 32
	NALTypeSPS        = 33
	NALTypePPS        = 34
	NALTypeAUD        = 35
	NALTypeEOS        = 36
	NALTypeEOB        = 37
	NALTypeFillerData = 38
	NALTypeSEIPrefix  = 39
	NALTypeSEISuffix  = 40
)

// Type returns the NAL unit type from the first two header bytes: bits 1-6
// of the first byte (the header's forbidden_zero_bit occupies bit 0), per §3.
func Type(firstByte byte) int {
	return int((firstByte >> 1) & 0x3f)
}

// IsVCL reports whether typ is a VCL (slice-carrying) NAL unit type:
// types 0 through 31, per Table 7-1.
func IsVCL(typ int) bool {
	return typ >= NALTypeTrailN && typ <= 31
}

// IsIRAP reports whether typ is an intra random access point picture
// (BLA/IDR/CRA), types 16 through 23.
func IsIRAP(typ int) bool {
	return typ >= NALTypeBLAWLP && typ <= 23
}
