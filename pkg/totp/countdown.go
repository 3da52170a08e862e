package totp

import (
	"fmt"
	"time"
)

// Period is the TOTP time step in seconds.
const Period = 30

// Counter returns the time-step index floor(unix(t) / Period).
func Counter(t time.Time) (uint64, error) {
	u := t.Unix()
	if u < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTimestamp, u)
	}
	return uint64(u) / Period, nil
}

// RemainingSecondsAt returns the seconds left in the window containing t, in [1, Period].
// The code rotates when the value would drop below 1.
func RemainingSecondsAt(t time.Time) int {
	mod := t.Unix() % Period
	if mod < 0 {
		mod += Period
	}
	return Period - int(mod)
}

// RemainingSeconds returns the seconds left in the current window.
func RemainingSeconds() int {
	return RemainingSecondsAt(time.Now())
}
