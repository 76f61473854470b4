package billing

import "testing"

func TestIsEntitlingStatus(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "active", want: true},
		{in: "trialing", want: true},
		{in: "past_due", want: true},
		{in: "Active", want: true},
		{in: " active ", want: true},
		{in: "canceled", want: false},
		{in: "incomplete", want: false},
		{in: "incomplete_expired", want: false},
		{in: "unpaid", want: false},
		{in: "paused", want: false},
		{in: "", want: false},
	}

	for _, tt := range tests {
		if got := IsEntitlingStatus(tt.in); got != tt.want {
			t.Fatalf("IsEntitlingStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
