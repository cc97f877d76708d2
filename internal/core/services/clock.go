package services

import "time"

// SystemClock est l'horloge réelle. Les tests injectent la leur.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
