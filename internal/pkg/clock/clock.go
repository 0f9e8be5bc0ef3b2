package clock

import "time"

// Clock abstracts time so expiry checks can be driven from tests.
type Clock interface {
	Now() time.Time
}

type system struct{}

// New returns the wall clock, in UTC.
func New() Clock { return system{} }

func (system) Now() time.Time { return time.Now().UTC() }
