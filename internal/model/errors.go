package model

import "errors"

var (
	ErrInvalidVariant  = errors.New("invalid variant")
	ErrInvalidField    = errors.New("invalid field")
	ErrInvalidState    = errors.New("invalid state")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrValidation      = errors.New("validation error")
	ErrParse           = errors.New("parse error")
)
