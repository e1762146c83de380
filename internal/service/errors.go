package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyStatus        = errors.New("status must not be empty")
)
