package h264

import "testing"

func baselineSPSBytes() []byte {
	b := &bitBuilder{}
	b.u(8, 66)  // profile_idc: Baseline, no chroma-info fields.
	b.u(8, 0)   // constraint flags + reserved.
	b.u(8, 30)  // level_idc.
	b.ue(0)     // seq_parameter_set_id.
	b.ue(0)     // log2_max_frame_num_minus4.
	b.ue(0)     // pic_order_cnt_type.
	b.ue(0)     // log2_max_pic_order_cnt_lsb_minus4.
	b.ue(1)     // max_num_ref_frames.
	b.flag(false) // gaps_in_frame_num_value_allowed_flag.
	b.ue(79)    // pic_width_in_mbs_minus1 -> (79+1)*16 = 1280.
	b.ue(44)    // pic_height_in_map_units_minus1 -> (44+1)*16 = 720.
	b.flag(true)  // frame_mbs_only_flag.
	b.flag(true)  // direct_8x8_inference_flag.
	b.flag(false) // frame_cropping_flag.
	b.flag(false) // vui_parameters_present_flag.
	return b.bytes()
}

func TestParseSPSBaseline(t *testing.T) {
	sps, err := ParseSPS(baselineSPSBytes())
	if err != nil {
		t.Fatalf("ParseSPS: %v", err)
	}
	if !sps.Valid {
		t.Fatal("expected Valid")
	}
	if sps.Profile != 66 {
		t.Errorf("Profile = %d, want 66", sps.Profile)
	}
	if sps.LevelIDC != 30 {
		t.Errorf("LevelIDC = %d, want 30", sps.LevelIDC)
	}
	if sps.ChromaFormatIDC != 1 {
		t.Errorf("ChromaFormatIDC = %d, want inferred 1", sps.ChromaFormatIDC)
	}
	if got := sps.Width(); got != 1280 {
		t.Errorf("Width() = %d, want 1280", got)
	}
	if got := sps.Height(); got != 720 {
		t.Errorf("Height() = %d, want 720", got)
	}
}

func TestParseSPSWithChromaInfo(t *testing.T) {
	b := &bitBuilder{}
	b.u(8, 100) // profile_idc: High, carries chroma-info fields.
	b.u(8, 0)
	b.u(8, 40)
	b.ue(0)       // seq_parameter_set_id.
	b.ue(1)       // chroma_format_idc: 4:2:0.
	b.ue(0)       // bit_depth_luma_minus8.
	b.ue(0)       // bit_depth_chroma_minus8.
	b.flag(false) // qpprime_y_zero_transform_bypass_flag.
	b.flag(false) // seq_scaling_matrix_present_flag.
	b.ue(0)       // log2_max_frame_num_minus4.
	b.ue(0)       // pic_order_cnt_type.
	b.ue(0)       // log2_max_pic_order_cnt_lsb_minus4.
	b.ue(1)       // max_num_ref_frames.
	b.flag(false)
	b.ue(119) // pic_width_in_mbs_minus1 -> 1920.
	b.ue(67)  // pic_height_in_map_units_minus1 -> 1088.
	b.flag(true)
	b.flag(true)
	b.flag(false)
	b.flag(false)

	sps, err := ParseSPS(b.bytes())
	if err != nil {
		t.Fatalf("ParseSPS: %v", err)
	}
	if sps.ChromaFormatIDC != 1 {
		t.Errorf("ChromaFormatIDC = %d, want 1", sps.ChromaFormatIDC)
	}
	if got := sps.Width(); got != 1920 {
		t.Errorf("Width() = %d, want 1920", got)
	}
}

func TestParseSPSWithVUITiming(t *testing.T) {
	b := &bitBuilder{}
	b.u(8, 66)
	b.u(8, 0)
	b.u(8, 30)
	b.ue(0)
	b.ue(0)
	b.ue(0)
	b.ue(0)
	b.ue(1)
	b.flag(false)
	b.ue(79)
	b.ue(44)
	b.flag(true)
	b.flag(true)
	b.flag(false)   // frame_cropping_flag.
	b.flag(true)    // vui_parameters_present_flag.
	b.flag(false)   // aspect_ratio_info_present_flag.
	b.flag(false)   // overscan_info_present_flag.
	b.flag(false)   // video_signal_type_present_flag.
	b.flag(false)   // chroma_loc_info_present_flag.
	b.flag(true)    // timing_info_present_flag.
	b.u(32, 1)      // num_units_in_tick.
	b.u(32, 50)     // time_scale.
	b.flag(true)    // fixed_frame_rate_flag.

	sps, err := ParseSPS(b.bytes())
	if err != nil {
		t.Fatalf("ParseSPS: %v", err)
	}
	if !sps.TimingInfoPresent {
		t.Fatal("expected TimingInfoPresent")
	}
	if sps.NumUnitsInTick != 1 || sps.TimeScale != 50 {
		t.Errorf("got NumUnitsInTick=%d TimeScale=%d, want 1/50", sps.NumUnitsInTick, sps.TimeScale)
	}
}

func TestParseSPSTruncated(t *testing.T) {
	full := baselineSPSBytes()
	_, err := ParseSPS(full[:1])
	if err != errTruncatedSPS {
		t.Fatalf("err = %v, want errTruncatedSPS", err)
	}
}
