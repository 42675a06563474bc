package model

import "errors"

var (
	// ErrUnknownAction is returned for action names the dispatcher does not know.
	ErrUnknownAction = errors.New("unknown action")
)
