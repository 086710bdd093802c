package models

import "time"

// Роли пользователей
const (
	RoleWorker         = "worker"
	RoleProjectManager = "project_manager"
	RoleAdmin          = "admin"
	RoleSuperAdmin     = "super_admin"
)

// Языки интерфейса
const (
	LangUz = "uz"
	LangRu = "ru"
)

// Типы заявок
const (
	RequestTypeDaily  = "daily"
	RequestTypeHourly = "hourly"
)

// Подтипы почасовых заявок
const (
	HourlyComingLate   = "coming_late"
	HourlyLeavingEarly = "leaving_early"
)

// Статусы заявок
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Вердикты менеджера
const (
	VerdictApprove = "approve"
	VerdictReject  = "reject"
)

// Шаги диалога
const (
	StepChooseLanguage = "choose_language"
	StepChooseRole     = "choose_role"
	StepAwaitFullName  = "await_full_name"

	StepDailyDate   = "daily_date"
	StepDailyReturn = "daily_return"
	StepDailyReason = "daily_reason"

	StepHourlyKind   = "hourly_kind"
	StepHourlyTime   = "hourly_time"
	StepHourlyReason = "hourly_reason"

	StepLateComment     = "late_comment"
	StepDecisionComment = "decision_comment"
)

// Значения по умолчанию
const (
	DefaultPaginationSize     = 5
	DefaultStateTTL           = 24 * time.Hour
	DefaultTimezone           = "Asia/Tashkent"
	DefaultWorkDayStartHour   = 9
	DefaultWorkDayEndHour     = 19
	DefaultMorningReminder    = "09:00"
	DefaultEveningReminder    = "18:00"
	DefaultDigestHour         = 10
	DefaultStaleThresholdDays = 3
	DefaultRateLimitPerMinute = 20

	// Telegram обрезает сообщения длиннее 4096 символов,
	// оставляем запас под разметку.
	MaxMessageLength = 4000

	MinNameLength   = 3
	MinReasonLength = 3
)

// ManagerRoles — роли, получающие служебные уведомления.
var ManagerRoles = []string{RoleProjectManager, RoleAdmin, RoleSuperAdmin}

// IsManagerRole сообщает, относится ли роль к управляющим.
func IsManagerRole(role string) bool {
	switch role {
	case RoleProjectManager, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// DeciderRole возвращает роль, уполномоченную решать заявки данного типа.
func DeciderRole(requestType string) string {
	if requestType == RequestTypeDaily {
		return RoleSuperAdmin
	}
	return RoleAdmin
}
