/*
NAME
  nalu.go

DESCRIPTION
  nalu.go provides H.264 NAL unit type constants and VCL/non-VCL
  classification, per Table 7-1 of ITU-T H.264.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package h264 provides an H.264/AVC SPS/PPS/slice-header parser sufficient
// for access-unit boundary detection and decoder-configuration extraction.
package h264

// NAL unit types, per Table 7-1 of ITU-T H.264 (04/2017).
const (
	NALTypeUnspecified          = 0
	NALTypeNonIDR               = 1
	NALTypeDataPartitionA       = 2
	NALTypeDataPartitionB       = 3
	NALTypeDataPartitionC       = 4
	NALTypeIDR                  = 5
	NALTypeSEI                  = 6
	NALTypeSPS                  = 7
	NALTypePPS                  = 8
	NALTypeAccessUnitDelimiter  = 9
	NALTypeEndOfSequence        = 10
	NALTypeEndOfStream          = 11
	NALTypeFillerData           = 12
	NALTypeSPSExtension         = 13
	NALTypePrefixNALU           = 14
	NALTypeSubsetSPS            = 15
	NALTypeSliceLayerExtNoPart  = 19
	NALTypeSliceLayerExtWithDep = 20
)

// Type returns the NAL unit type from the first byte of a NAL unit (the
// byte immediately following the start code): the low 5 bits, per §3.
func Type(firstByte byte) int {
	return int(firstByte & 0x1f)
}

// RefIDC returns nal_ref_idc from the first byte of a NAL unit.
func RefIDC(firstByte byte) int {
	return int((firstByte >> 5) & 0x3)
}

// IsVCL reports whether typ is a VCL (slice-carrying) NAL unit type.
func IsVCL(typ int) bool {
	return typ == NALTypeNonIDR || typ == NALTypeDataPartitionA ||
		typ == NALTypeDataPartitionB || typ == NALTypeDataPartitionC ||
		typ == NALTypeIDR || typ == NALTypeSliceLayerExtNoPart ||
		typ == NALTypeSliceLayerExtWithDep
}
