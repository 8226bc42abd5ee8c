package autoclicker

import (
	"testing"
	"time"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		raw      string
		expected time.Duration
	}{
		{raw: "250", expected: 250 * time.Millisecond},
		{raw: " 1500 ", expected: 1500 * time.Millisecond},
		{raw: "50", expected: MinInterval},
		{raw: "0", expected: MinInterval},
		{raw: "-20", expected: MinInterval},
		{raw: "1.5s", expected: 1500 * time.Millisecond},
		{raw: "10ms", expected: MinInterval},
		{raw: "", expected: DefaultInterval},
		{raw: "fast", expected: DefaultInterval},
	}

	for _, tc := range tests {
		if got := ParseInterval(tc.raw); got != tc.expected {
			t.Fatalf("ParseInterval(%q)=%v, want %v", tc.raw, got, tc.expected)
		}
	}
}

func TestParseRepeat(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{raw: "5", expected: 5},
		{raw: " 12 ", expected: 12},
		{raw: "0", expected: 1},
		{raw: "-3", expected: 1},
		{raw: "-1", expected: RepeatUnlimited},
		{raw: "", expected: RepeatUnlimited},
		{raw: "INF", expected: RepeatUnlimited},
		{raw: "forever", expected: RepeatUnlimited},
		{raw: "lots", expected: RepeatUnlimited},
	}

	for _, tc := range tests {
		if got := ParseRepeat(tc.raw); got != tc.expected {
			t.Fatalf("ParseRepeat(%q)=%d, want %d", tc.raw, got, tc.expected)
		}
	}
}

func TestNormalizeRepeat(t *testing.T) {
	if got := NormalizeRepeat(3); got != 3 {
		t.Fatalf("NormalizeRepeat(3)=%d, want 3", got)
	}
	for _, raw := range []int{0, -1, -9} {
		if got := NormalizeRepeat(raw); got != RepeatUnlimited {
			t.Fatalf("NormalizeRepeat(%d)=%d, want %d", raw, got, RepeatUnlimited)
		}
	}
}

func TestTapOutcomeString(t *testing.T) {
	if TapCompleted.String() != "completed" || TapCancelled.String() != "cancelled" {
		t.Fatalf("unexpected outcome names: %s, %s", TapCompleted, TapCancelled)
	}
	if TapOutcome(0).String() != "unknown" {
		t.Fatalf("zero outcome should be unknown")
	}
}
