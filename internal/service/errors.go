package service

import "errors"

// Ошибки бизнес-правил, не относящиеся к слою хранения.
var (
	ErrUnauthorized   = errors.New("user is not allowed to perform this action")
	ErrOnLeave        = errors.New("approved leave covers this day")
	ErrReasonTooShort = errors.New("reason is too short")
)
