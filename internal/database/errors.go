package database

import "errors"

// Бизнес-ошибки слоя хранения. Бот переводит их в сообщения пользователю,
// сервисы различают через errors.Is.
var (
	ErrNotFound        = errors.New("record not found")
	ErrCheckInExists   = errors.New("check-in already recorded for this day")
	ErrCheckOutExists  = errors.New("check-out already recorded for this day")
	ErrCheckInRequired = errors.New("check-in required before this operation")
	ErrAlreadyDecided  = errors.New("request already decided")
)
