package health

import "errors"

// ErrCheckTimeout marks a check that failed because the probe deadline passed.
var ErrCheckTimeout = errors.New("health: check timeout")
