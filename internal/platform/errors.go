package platform

import "errors"

// ErrAlreadyRunning is returned when a parse run can't be started for a feed
// because an earlier run for the same shop hasn't finished yet.
var ErrAlreadyRunning = errors.New("feed parsing is already running")
