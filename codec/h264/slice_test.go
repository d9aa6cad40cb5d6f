package h264

import "testing"

func testSPSPPS() (*SPS, *PPS) {
	sps := &SPS{
		Valid:                 true,
		SPSID:                 0,
		ChromaFormatIDC:       1,
		Log2MaxFrameNumMinus4: 0, // 4-bit frame_num.
		PicOrderCntType:       0,
		Log2MaxPicOrderCntLSB: 0, // 4-bit pic_order_cnt_lsb.
		FrameMBSOnlyFlag:      true,
	}
	pps := &PPS{
		Valid: true,
		PPSID: 0,
		SPSID: 0,
		BottomFieldPicOrderInFramePresent: false,
	}
	return sps, pps
}

func sliceHeaderBytes(frameNum, pocLSB uint32, idrPicID uint32, isIDR bool) []byte {
	b := &bitBuilder{}
	b.ue(0) // first_mb_in_slice.
	b.ue(7) // slice_type: I.
	b.ue(0) // pic_parameter_set_id.
	b.u(4, frameNum)
	if isIDR {
		b.ue(idrPicID)
	}
	b.u(4, pocLSB)
	return b.bytes()
}

func TestParseSliceHeader(t *testing.T) {
	sps, pps := testSPSPPS()
	findSPS := func(id uint32) (*SPS, bool) { return sps, id == sps.SPSID }
	findPPS := func(id uint32) (*PPS, bool) { return pps, id == pps.PPSID }

	raw := sliceHeaderBytes(3, 6, 0, true)
	h, err := ParseSliceHeader(raw, 2, NALTypeIDR, findPPS, findSPS)
	if err != nil {
		t.Fatalf("ParseSliceHeader: %v", err)
	}
	if h.FrameNum != 3 {
		t.Errorf("FrameNum = %d, want 3", h.FrameNum)
	}
	if h.PicOrderCntLSB != 6 {
		t.Errorf("PicOrderCntLSB = %d, want 6", h.PicOrderCntLSB)
	}
	if h.PPSID != 0 {
		t.Errorf("PPSID = %d, want 0", h.PPSID)
	}
}

func TestParseSliceHeaderUnknownPPS(t *testing.T) {
	sps, _ := testSPSPPS()
	findSPS := func(id uint32) (*SPS, bool) { return sps, true }
	findPPS := func(id uint32) (*PPS, bool) { return nil, false }

	_, err := ParseSliceHeader(sliceHeaderBytes(0, 0, 0, false), 1, NALTypeNonIDR, findPPS, findSPS)
	if err != errUnknownPPSID {
		t.Fatalf("err = %v, want errUnknownPPSID", err)
	}
}

func TestStartsNewAU(t *testing.T) {
	first := &SliceHeader{NALRefIDC: 2, NALUnitType: NALTypeIDR, FrameNum: 0, PicOrderCntLSB: 0}
	if !StartsNewAU(nil, first) {
		t.Error("first slice in stream must start a new AU")
	}

	sameFrame := &SliceHeader{NALRefIDC: 2, NALUnitType: NALTypeIDR, FrameNum: 0, PicOrderCntLSB: 2}
	if !StartsNewAU(first, sameFrame) {
		t.Error("differing pic_order_cnt_lsb must start a new AU")
	}

	nextFrame := &SliceHeader{NALRefIDC: 2, NALUnitType: NALTypeNonIDR, FrameNum: 1, PicOrderCntLSB: 0}
	if !StartsNewAU(first, nextFrame) {
		t.Error("differing frame_num and IDR transition must start a new AU")
	}

	secondSliceSamePic := &SliceHeader{NALRefIDC: 2, NALUnitType: NALTypeNonIDR, FrameNum: 1, PicOrderCntLSB: 0}
	if StartsNewAU(nextFrame, secondSliceSamePic) {
		t.Error("identical signals must not start a new AU")
	}
}
