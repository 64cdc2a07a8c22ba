package helpers

import (
	"testing"

	"xui-sub-bot/internal/constants"
)

func TestIsExpired(t *testing.T) {
	const now = int64(1_700_000_000_000)

	cases := []struct {
		name   string
		expiry int64
		want   bool
	}{
		{"just passed", now - 1, true},
		{"exactly now", now, false},
		{"in the future", now + 1, false},
		{"zero means unlimited", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsExpired(tc.expiry, now); got != tc.want {
				t.Errorf("IsExpired(%d, %d) = %v, want %v", tc.expiry, now, got, tc.want)
			}
		})
	}
}

func TestNextExpiry(t *testing.T) {
	const now = int64(1_700_000_000_000)
	const day = int64(constants.MillisecondsInDay)

	t.Run("active subscription extends from its own expiry", func(t *testing.T) {
		current := now + 5*day
		if got, want := NextExpiry(now, current, 10), current+10*day; got != want {
			t.Errorf("NextExpiry = %d, want %d", got, want)
		}
	})

	t.Run("expired subscription extends from now", func(t *testing.T) {
		current := now - 3*day
		if got, want := NextExpiry(now, current, 10), now+10*day; got != want {
			t.Errorf("NextExpiry = %d, want %d", got, want)
		}
	})

	t.Run("unlimited record extends from now", func(t *testing.T) {
		if got, want := NextExpiry(now, 0, 7), now+7*day; got != want {
			t.Errorf("NextExpiry = %d, want %d", got, want)
		}
	})

	t.Run("extension never shortens", func(t *testing.T) {
		for _, current := range []int64{0, now - day, now, now + day, now + 100*day} {
			got := NextExpiry(now, current, 1)
			if got < current {
				t.Errorf("NextExpiry(%d, %d, 1) = %d shortened the subscription", now, current, got)
			}
			if got < now+day {
				t.Errorf("NextExpiry(%d, %d, 1) = %d is below now+1d", now, current, got)
			}
		}
	})
}

func TestExpiryFromNow(t *testing.T) {
	const now = int64(1_700_000_000_000)
	if got, want := ExpiryFromNow(now, 30), now+30*int64(constants.MillisecondsInDay); got != want {
		t.Errorf("ExpiryFromNow = %d, want %d", got, want)
	}
}
