package domain

import "errors"

var (
	ErrClubNotFound = errors.New("club not found")
	ErrUserNotFound = errors.New("user not found")
	ErrKeyNotFound  = errors.New("key not found")
	ErrEmptyKey     = errors.New("empty key")
)
