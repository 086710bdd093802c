package models

import "time"

// Request — заявка на отгул (daily) или отлучку в течение дня (hourly).
type Request struct {
	ID         int64  `json:"id"`
	WorkerID   int64  `json:"worker_id"`
	Type       string `json:"type"`
	HourlyKind string `json:"hourly_kind,omitempty"`
	Status     string `json:"status"`
	Reason     string `json:"reason"`

	// Для daily: диапазон дат включительно, в формате YYYY-MM-DD.
	LeaveDate  string `json:"leave_date,omitempty"`
	ReturnDate string `json:"return_date,omitempty"`

	// Для hourly: точное время отлучки.
	TargetTime *time.Time `json:"target_time,omitempty"`

	DeciderID       int64      `json:"decider_id,omitempty"`
	DecisionComment string     `json:"decision_comment,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`

	// Заполняется join-ом для отображения, в БД не хранится.
	WorkerName string `json:"worker_name,omitempty"`
}

// CoversDay проверяет, попадает ли день day (YYYY-MM-DD) в одобренный отгул.
// Диапазон [LeaveDate, ReturnDate] включительный; пустой ReturnDate
// означает однодневный отгул.
func (r *Request) CoversDay(day string) bool {
	if r.Type != RequestTypeDaily || r.LeaveDate == "" {
		return false
	}
	end := r.ReturnDate
	if end == "" {
		end = r.LeaveDate
	}
	return day >= r.LeaveDate && day <= end
}
