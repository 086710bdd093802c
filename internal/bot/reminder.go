package bot

import (
	"context"
	"time"

	"davomat/internal/i18n"
	"davomat/internal/models"
)

// reminderTracker не даёт отправить одно напоминание дважды за день.
// Не потокобезопасен, использовать из одной горутины.
type reminderTracker struct {
	day     string
	morning map[int64]bool
	evening map[int64]bool
}

func newReminderTracker() *reminderTracker {
	return &reminderTracker{
		morning: make(map[int64]bool),
		evening: make(map[int64]bool),
	}
}

// roll сбрасывает отметки при смене дня.
func (t *reminderTracker) roll(day string) {
	if t.day == day {
		return
	}
	t.day = day
	t.morning = make(map[int64]bool)
	t.evening = make(map[int64]bool)
}

// markMorning возвращает true только при первом вызове за день.
func (t *reminderTracker) markMorning(userID int64) bool {
	if t.morning[userID] {
		return false
	}
	t.morning[userID] = true
	return true
}

func (t *reminderTracker) markEvening(userID int64) bool {
	if t.evening[userID] {
		return false
	}
	t.evening[userID] = true
	return true
}

// StartReminders крутит цикл напоминаний об отметках явки.
// Блокируется до отмены контекста.
func (b *Bot) StartReminders(ctx context.Context) {
	morningHour, morningMinute, err := parseTimeOfDay(b.config.Bot.MorningReminderTime)
	if err != nil {
		morningHour, morningMinute, _ = parseTimeOfDay(models.DefaultMorningReminder)
	}
	eveningHour, eveningMinute, err := parseTimeOfDay(b.config.Bot.EveningReminderTime)
	if err != nil {
		eveningHour, eveningMinute, _ = parseTimeOfDay(models.DefaultEveningReminder)
	}

	tracker := newReminderTracker()
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	b.logger.Info().
		Str("morning", b.config.Bot.MorningReminderTime).
		Str("evening", b.config.Bot.EveningReminderTime).
		Msg("Reminder loop started")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Reminder loop stopped")
			return
		case <-ticker.C:
			now := b.clock.Now()
			day := b.clock.DayOf(now)
			tracker.roll(day)

			if afterTimeOfDay(now, morningHour, morningMinute) {
				b.remindMorning(ctx, tracker)
			}
			if afterTimeOfDay(now, eveningHour, eveningMinute) {
				b.remindEvening(ctx, tracker)
			}
		}
	}
}

func afterTimeOfDay(now time.Time, hour, minute int) bool {
	return now.Hour() > hour || (now.Hour() == hour && now.Minute() >= minute)
}

// remindMorning пингует тех, кто ещё не отметил приход и не в отгуле.
func (b *Bot) remindMorning(ctx context.Context, tracker *reminderTracker) {
	workers, err := b.userService.Workers(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to load workers for morning reminder")
		return
	}

	for i := range workers {
		w := &workers[i]
		if !w.IsActive || tracker.morning[w.ID] {
			continue
		}

		rec, err := b.attendanceService.Today(ctx, w.ID)
		if err != nil {
			b.logger.Error().Err(err).Int64("worker_id", w.ID).Msg("Failed to load attendance for reminder")
			continue
		}
		if rec != nil && rec.CheckIn != nil {
			tracker.markMorning(w.ID)
			continue
		}

		onLeave, err := b.attendanceService.OnLeave(ctx, w.ID, b.clock.Today())
		if err != nil {
			b.logger.Error().Err(err).Int64("worker_id", w.ID).Msg("Failed to check leave for reminder")
			continue
		}
		if onLeave {
			tracker.markMorning(w.ID)
			continue
		}

		if tracker.markMorning(w.ID) {
			if err := b.tgService.SendMessage(w.ChatID, i18n.T(w.Language, "reminder_checkin")); err != nil {
				b.noteDeliveryFailure(ctx, w.ID, err)
				continue
			}
			if b.metrics != nil {
				b.metrics.RemindersSent.WithLabelValues("morning").Inc()
			}
		}
	}
}

// remindEvening пингует тех, кто пришёл, но не отметил уход.
func (b *Bot) remindEvening(ctx context.Context, tracker *reminderTracker) {
	workers, err := b.userService.Workers(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to load workers for evening reminder")
		return
	}

	for i := range workers {
		w := &workers[i]
		if !w.IsActive || tracker.evening[w.ID] {
			continue
		}

		rec, err := b.attendanceService.Today(ctx, w.ID)
		if err != nil {
			b.logger.Error().Err(err).Int64("worker_id", w.ID).Msg("Failed to load attendance for reminder")
			continue
		}
		// Без отметки прихода не закрываем день: сотрудник может ещё
		// прийти, и тогда вечернее напоминание ему понадобится.
		if rec == nil || rec.CheckIn == nil {
			continue
		}
		if rec.CheckOut != nil {
			tracker.markEvening(w.ID)
			continue
		}

		if tracker.markEvening(w.ID) {
			if err := b.tgService.SendMessage(w.ChatID, i18n.T(w.Language, "reminder_checkout")); err != nil {
				b.noteDeliveryFailure(ctx, w.ID, err)
				continue
			}
			if b.metrics != nil {
				b.metrics.RemindersSent.WithLabelValues("evening").Inc()
			}
		}
	}
}

// StartDigest раз в сутки, в настроенный час, шлёт сводку старых заявок.
// Блокируется до отмены контекста.
func (b *Bot) StartDigest(ctx context.Context) {
	for {
		next, err := b.nextDigestAt()
		if err != nil {
			b.logger.Error().Err(err).Msg("Failed to compute digest schedule")
			return
		}
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			b.sendDigest(ctx, b.config.Bot.StaleThresholdDays)
		}
	}
}

func (b *Bot) nextDigestAt() (time.Time, error) {
	now := b.clock.Now()
	at, err := b.clock.At(b.clock.Today(), b.config.Bot.DigestHour, 0)
	if err != nil {
		return time.Time{}, err
	}
	if !at.After(now) {
		at = at.Add(24 * time.Hour)
	}
	return at, nil
}
