package validation

import "testing"

func TestValidateDuration(t *testing.T) {
	cases := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"5", 5, false},
		{"1", 1, false},
		{"3650", 3650, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"3651", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"1.5", 0, true},
	}

	for _, tc := range cases {
		got, err := ValidateDuration(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ValidateDuration(%q) = %d, want error", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ValidateDuration(%q) returned error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ValidateDuration(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}
