package repository

import "errors"

var (
	ErrNotFound        = errors.New("entity not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrDuplicatePhone  = errors.New("phone number already exists")
	ErrDuplicateFarmer = errors.New("user is already a farmer")
	ErrDuplicateCart   = errors.New("cart already exists for user")
)
