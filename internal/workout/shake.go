// ABOUTME: Pure debounce rule for the shake-to-reset gesture.
package workout

import "time"

// DefaultShakeCooldown is the minimum gap between handled shakes.
const DefaultShakeCooldown = 2500 * time.Millisecond

// ShakeAllowed reports whether a shake at now should be handled, given the
// time the last shake was handled. A zero lastHandledAt means no shake has
// been handled yet, which always allows the first one.
func ShakeAllowed(lastHandledAt, now time.Time, cooldown time.Duration) bool {
	if lastHandledAt.IsZero() {
		return true
	}
	return now.Sub(lastHandledAt) >= cooldown
}
