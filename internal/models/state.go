package models

import "time"

// OnboardingDraft — данные первичной регистрации.
type OnboardingDraft struct {
	Language string `json:"language,omitempty"`
	Role     string `json:"role,omitempty"`
}

// DailyDraft — черновик заявки на отгул.
type DailyDraft struct {
	LeaveDate  string `json:"leave_date,omitempty"`
	ReturnDate string `json:"return_date,omitempty"`
}

// HourlyDraft — черновик почасовой заявки.
type HourlyDraft struct {
	Kind       string     `json:"kind,omitempty"`
	TargetTime *time.Time `json:"target_time,omitempty"`
}

// DecisionDraft — менеджер выбрал «с комментарием» и должен прислать текст.
type DecisionDraft struct {
	RequestID int64  `json:"request_id"`
	Verdict   string `json:"verdict"`
}

// UserState — состояние диалога пользователя. Step определяет, какой из
// черновиков заполнен; остальные указатели равны nil. Отсутствие записи
// в хранилище означает, что пользователь вне диалога.
type UserState struct {
	UserID    int64     `json:"user_id"`
	Step      string    `json:"step"`
	UpdatedAt time.Time `json:"updated_at"`

	Onboarding *OnboardingDraft `json:"onboarding,omitempty"`
	Daily      *DailyDraft      `json:"daily,omitempty"`
	Hourly     *HourlyDraft     `json:"hourly,omitempty"`
	Decision   *DecisionDraft   `json:"decision,omitempty"`
}
