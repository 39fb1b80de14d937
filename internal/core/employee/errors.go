package employee

import "errors"

var (
	ErrInvalidEmployeeCode  = errors.New("employee: invalid employee code")
	ErrInvalidChannelUserID = errors.New("employee: invalid channel user id")
	ErrEmployeeNotFound     = errors.New("employee: not found")
	ErrCodeAlreadyExists    = errors.New("employee: employee code already exists")
)
