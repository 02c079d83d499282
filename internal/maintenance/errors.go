package maintenance

import "errors"

var (
	ErrAlreadyRunning = errors.New("maintenance: a maintenance cycle is already running")
)
