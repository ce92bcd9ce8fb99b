package booking

import "testing"

func TestStatusDisplayName(t *testing.T) {
	cases := []struct {
		status Status
		want   string
	}{
		{StatusPending, "pending"},
		{StatusConfirmed, "confirmed"},
		{StatusCanceled, "canceled"},
		{Status(7), "unknown"},
		{Status(-1), "unknown"},
	}

	for _, tc := range cases {
		if got := tc.status.DisplayName(); got != tc.want {
			t.Fatalf("DisplayName(%d) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
		ok   bool
	}{
		{"pending", StatusPending, true},
		{"0", StatusPending, true},
		{"confirmed", StatusConfirmed, true},
		{"1", StatusConfirmed, true},
		{"canceled", StatusCanceled, true},
		{"2", StatusCanceled, true},
		{"approved", 0, false},
		{"", 0, false},
		{"3", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseStatus(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseStatus(%q) = (%d, %v), want (%d, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusPending.Valid() || !StatusConfirmed.Valid() || !StatusCanceled.Valid() {
		t.Fatalf("known statuses must be valid")
	}
	if Status(3).Valid() {
		t.Fatalf("unknown status must be invalid")
	}
}
