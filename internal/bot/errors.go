package bot

import (
	"errors"

	"davomat/internal/database"
	"davomat/internal/i18n"
	"davomat/internal/service"
)

// Ошибки разбора пользовательского ввода.
var (
	errBadDate       = errors.New("bad date")
	errDateInPast    = errors.New("date in the past")
	errBadTime       = errors.New("bad time")
	errTimeNotFuture = errors.New("time not in the future")
)

// errorMessage переводит ошибку уровня хранилища или сервиса в текст
// для пользователя на его языке.
func errorMessage(lang string, err error) string {
	switch {
	case errors.Is(err, database.ErrCheckInExists):
		return i18n.T(lang, "checkin_already")
	case errors.Is(err, database.ErrCheckOutExists):
		return i18n.T(lang, "checkout_already")
	case errors.Is(err, database.ErrCheckInRequired):
		return i18n.T(lang, "checkin_required")
	case errors.Is(err, database.ErrAlreadyDecided):
		return i18n.T(lang, "already_decided")
	case errors.Is(err, database.ErrNotFound):
		return i18n.T(lang, "not_found")
	case errors.Is(err, service.ErrOnLeave):
		return i18n.T(lang, "on_leave_active")
	case errors.Is(err, service.ErrUnauthorized):
		return i18n.T(lang, "unauthorized")
	case errors.Is(err, service.ErrReasonTooShort):
		return i18n.T(lang, "reason_too_short")
	case errors.Is(err, errBadDate):
		return i18n.T(lang, "bad_date")
	case errors.Is(err, errDateInPast):
		return i18n.T(lang, "date_in_past")
	case errors.Is(err, errBadTime):
		return i18n.T(lang, "bad_time")
	case errors.Is(err, errTimeNotFuture):
		return i18n.T(lang, "time_not_future")
	default:
		return i18n.T(lang, "internal_error")
	}
}
