package service

import "errors"

// Service error taxonomy. Handlers translate these to HTTP statuses with
// errors.Is; anything else is treated as an internal fault.
var (
	ErrBookNotFound = errors.New("book not found")
	ErrInvalidOrder = errors.New("order parameter can be only 'author' or 'title'")
	ErrInvalidScore = errors.New("score can be from 1 to 5")
	ErrInvalidCover = errors.New("invalid image (base64)")
)
