package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock returns local wall-clock time. Session dates must land on the
// day the device's clock sits on, not on UTC's day, so there is no conversion
// here.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
