package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the bot update pipeline.
type Metrics struct {
	UpdatesProcessed     *prometheus.CounterVec
	UpdateProcessingTime prometheus.Histogram
	ErrorsTotal          prometheus.Counter
	RequestsCreated      *prometheus.CounterVec
	RequestsDecided      *prometheus.CounterVec
	AttendanceMarks      *prometheus.CounterVec
	RemindersSent        *prometheus.CounterVec
	NotificationFailures prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		UpdatesProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "davomat_bot_updates_total",
			Help: "Total number of Telegram updates processed",
		}, []string{"kind"}),
		UpdateProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "davomat_bot_update_duration_seconds",
			Help:    "Time spent processing a single update",
			Buckets: prometheus.DefBuckets,
		}),
		ErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "davomat_bot_errors_total",
			Help: "Total number of processing errors and panics",
		}),
		RequestsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "davomat_requests_created_total",
			Help: "Leave requests created, by type",
		}, []string{"type"}),
		RequestsDecided: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "davomat_requests_decided_total",
			Help: "Leave requests decided, by final status",
		}, []string{"status"}),
		AttendanceMarks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "davomat_attendance_marks_total",
			Help: "Attendance check-in and check-out marks",
		}, []string{"kind"}),
		RemindersSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "davomat_reminders_sent_total",
			Help: "Reminder messages sent, by kind",
		}, []string{"kind"}),
		NotificationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "davomat_notification_failures_total",
			Help: "Notification deliveries that failed",
		}),
	}
}
