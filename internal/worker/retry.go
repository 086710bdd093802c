package worker

import (
	"math"
	"math/rand"
	"time"
)

// RetryPolicy задает экспоненциальную выдержку между повторами
// синхронизации с Sheets.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	Jitter        float64 // доля случайного разброса: 0.25 означает ±25%
}

// withDefaults заполняет нулевые поля значениями, подобранными под
// квоты Sheets API.
func (r RetryPolicy) withDefaults() RetryPolicy {
	if r.MaxRetries == 0 {
		r.MaxRetries = 5
	}
	if r.InitialDelay <= 0 {
		r.InitialDelay = 2 * time.Second
	}
	if r.MaxDelay <= 0 {
		r.MaxDelay = time.Minute
	}
	if r.BackoffFactor <= 0 {
		r.BackoffFactor = 2
	}
	return r
}

// NextDelay возвращает паузу перед попыткой attempt (нумерация с единицы).
func (r RetryPolicy) NextDelay(attempt int) time.Duration {
	r = r.withDefaults()
	if attempt < 1 {
		attempt = 1
	}

	delay := float64(r.InitialDelay) * math.Pow(r.BackoffFactor, float64(attempt-1))
	if r.Jitter > 0 {
		// Разброс растаскивает повторы, накопившиеся за время сбоя
		delay += delay * r.Jitter * (2*rand.Float64() - 1)
	}
	d := time.Duration(delay)
	if d > r.MaxDelay {
		d = r.MaxDelay
	}
	if d <= 0 {
		d = time.Second
	}
	return d
}
