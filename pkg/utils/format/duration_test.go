package format

import "testing"

func TestDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{-5, "0:00"},
		{9.7, "0:09"},
		{65, "1:05"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{7325, "2:02:05"},
	}
	for _, tc := range cases {
		if got := Duration(tc.seconds); got != tc.want {
			t.Errorf("Duration(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
