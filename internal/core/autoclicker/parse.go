package autoclicker

import (
	"strconv"
	"strings"
	"time"
)

// ClampInterval raises anything below MinInterval to MinInterval.
func ClampInterval(interval time.Duration) time.Duration {
	if interval < MinInterval {
		return MinInterval
	}
	return interval
}

// NormalizeRepeat maps 0 and values below -1 to RepeatUnlimited.
func NormalizeRepeat(repeat int) int {
	if repeat > 0 {
		return repeat
	}
	return RepeatUnlimited
}

// ParseInterval reads user input as whole milliseconds ("250") or a Go
// duration ("1.5s"). Unparseable input yields DefaultInterval; the result is
// always clamped.
func ParseInterval(raw string) time.Duration {
	value := strings.TrimSpace(raw)
	if value == "" {
		return DefaultInterval
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return ClampInterval(time.Duration(ms) * time.Millisecond)
	}
	if d, err := time.ParseDuration(value); err == nil {
		return ClampInterval(d)
	}
	return DefaultInterval
}

// ParseRepeat reads a repeat count. Empty, "-1", "inf" and garbage mean
// unlimited; explicit counts below 1 become 1.
func ParseRepeat(raw string) int {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "-1", "inf", "infinite", "unlimited", "forever":
		return RepeatUnlimited
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return RepeatUnlimited
	}
	if n < 1 {
		return 1
	}
	return n
}
