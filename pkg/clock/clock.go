package clock

import "time"

// Clock abstracts wall-clock time so cutoff and expiry logic can be tested
// against an arbitrary "now".
type Clock interface {
	Now() time.Time
}

type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fixed always reports the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
