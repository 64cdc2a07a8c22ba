package helpers

import "testing"

func TestFormatTraffic(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{-5, "0 B"},
		{500, "500 B"},
		{1023, "1023 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{1073741824, "1 GB"},
		{1610612736, "1.5 GB"},
		{1099511627776, "1 TB"},
		// Above TB the unit saturates
		{1125899906842624, "1024 TB"},
	}

	for _, tc := range cases {
		if got := FormatTraffic(tc.bytes); got != tc.want {
			t.Errorf("FormatTraffic(%d) = %q, want %q", tc.bytes, got, tc.want)
		}
	}
}
