package domain

import "fmt"

// ElapsedTime counts whole seconds since a stopwatch was activated.
type ElapsedTime int64

// String renders t as HH:MM:SS. Hours are not wrapped.
func (t ElapsedTime) String() string {
	if t < 0 {
		t = 0
	}

	seconds := int64(t) % 60
	minutes := (int64(t) / 60) % 60
	hours := int64(t) / 3600

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
