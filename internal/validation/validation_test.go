package validation

import "testing"

func TestValidIntID(t *testing.T) {
	cases := []struct {
		name string
		id   int64
		want bool
	}{
		{"zero", 0, true},
		{"typical", 1024, true},
		{"max signed int", 1<<31 - 1, true},
		{"negative", -1, false},
		{"overflow", 1 << 31, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidIntID(tc.id); got != tc.want {
				t.Errorf("ValidIntID(%d) = %v, want %v", tc.id, got, tc.want)
			}
		})
	}
}

func TestValidYear(t *testing.T) {
	cases := []struct {
		year int
		want bool
	}{
		{1998, true},
		{1000, true},
		{9999, true},
		{999, false},
		{10000, false},
		{-2020, false},
	}
	for _, tc := range cases {
		if got := ValidYear(tc.year); got != tc.want {
			t.Errorf("ValidYear(%d) = %v, want %v", tc.year, got, tc.want)
		}
	}
}

func TestValidMonth(t *testing.T) {
	cases := []struct {
		month int
		want bool
	}{
		{1, true},
		{12, true},
		{0, false},
		{13, false},
	}
	for _, tc := range cases {
		if got := ValidMonth(tc.month); got != tc.want {
			t.Errorf("ValidMonth(%d) = %v, want %v", tc.month, got, tc.want)
		}
	}
}
