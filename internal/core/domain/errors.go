package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoSession       = errors.New("no session bound to request")
	ErrContactInvalid  = errors.New("contact message is incomplete")
)
