package parser

import "time"

type wallClock struct{}

// Timestamp return current UTC timestamp.
func (c wallClock) Timestamp() int64 {
	return time.Now().UTC().UnixMilli()
}

// Now return current time.
func (c wallClock) Now() *time.Time {
	t := time.Now().UTC()
	return &t
}
