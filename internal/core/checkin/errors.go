package checkin

import "errors"

var (
	ErrInvalidEmployeeID = errors.New("checkin: invalid employee id")
	ErrInvalidMood       = errors.New("checkin: invalid mood")
	ErrInvalidScore      = errors.New("checkin: shift score must be between 1 and 10")
	ErrInvalidDifficulty = errors.New("checkin: invalid difficulty")
	ErrEmptyGratitude    = errors.New("checkin: gratitude text is empty")
	ErrEmployeeNotFound  = errors.New("checkin: employee not found")
)
