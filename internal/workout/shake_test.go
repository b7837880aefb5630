// ABOUTME: Tests for the shake debounce rule.
package workout

import (
	"testing"
	"time"
)

func TestShakeAllowed(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		last    time.Time
		now     time.Time
		allowed bool
	}{
		{"first shake", time.Time{}, base, true},
		{"inside cooldown", base, base.Add(time.Second), false},
		{"exactly at cooldown", base, base.Add(DefaultShakeCooldown), true},
		{"just under cooldown", base, base.Add(DefaultShakeCooldown - time.Millisecond), false},
		{"well past cooldown", base, base.Add(time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShakeAllowed(tt.last, tt.now, DefaultShakeCooldown); got != tt.allowed {
				t.Errorf("ShakeAllowed = %v, want %v", got, tt.allowed)
			}
		})
	}
}
