package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time.Now so period math and guards are testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Module provides the system clock.
var Module = fx.Provide(func() Clock {
	return SystemClock{}
})
