package domain

import (
	"errors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageSuccessPing          = "pong, its works"

	ErrInvalidPantry = errors.New("invalid pantry list")
)
