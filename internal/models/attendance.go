package models

import "time"

// AttendanceRecord — явка сотрудника за один день. На пару (worker, day)
// существует не больше одной записи.
type AttendanceRecord struct {
	ID          int64      `json:"id"`
	WorkerID    int64      `json:"worker_id"`
	Day         string     `json:"day"` // YYYY-MM-DD в часовом поясе бота
	CheckIn       *time.Time `json:"check_in,omitempty"`
	CheckOut      *time.Time `json:"check_out,omitempty"`
	LateComment   string     `json:"late_comment,omitempty"`
	LateCommentAt *time.Time `json:"late_comment_at,omitempty"`

	WorkerName string `json:"worker_name,omitempty"`
}
