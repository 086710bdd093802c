package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"davomat/internal/clock"
	"davomat/internal/i18n"
	"davomat/internal/models"
)

// parseDate разбирает дату вида ДД.ММ или ДД.ММ.ГГГГ в ключ дня.
// Без года берётся текущий год. Прошедшие дни не принимаются.
func parseDate(clk *clock.Clock, input string) (string, error) {
	parts := strings.Split(strings.TrimSpace(input), ".")
	if len(parts) != 2 && len(parts) != 3 {
		return "", errBadDate
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", errBadDate
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", errBadDate
	}

	year := clk.Now().Year()
	if len(parts) == 3 {
		year, err = strconv.Atoi(parts[2])
		if err != nil || year < 0 {
			return "", errBadDate
		}
		// Двузначный год считаем годом текущего века
		if year < 100 {
			year += 2000
		}
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, clk.Location())
	// time.Date нормализует 32.01 в 01.02, ловим это сравнением
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return "", errBadDate
	}

	key := t.Format(clock.DayLayout)
	if key < clk.Today() {
		return "", errDateInPast
	}
	return key, nil
}

// parseTimeOfDay разбирает время вида ЧЧ:ММ.
func parseTimeOfDay(input string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(input), ":")
	if len(parts) != 2 {
		return 0, 0, errBadTime
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, errBadTime
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, errBadTime
	}
	return hour, minute, nil
}

// formatDay переводит ключ дня в читаемый вид ДД.ММ.ГГГГ.
func formatDay(day string) string {
	t, err := time.Parse(clock.DayLayout, day)
	if err != nil {
		return day
	}
	return t.Format("02.01.2006")
}

func formatRequestLine(lang string, req *models.Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d ", req.ID)
	switch req.Type {
	case models.RequestTypeDaily:
		fmt.Fprintf(&b, "%s", formatDay(req.LeaveDate))
		if req.ReturnDate != "" && req.ReturnDate != req.LeaveDate {
			fmt.Fprintf(&b, " - %s", formatDay(req.ReturnDate))
		}
	case models.RequestTypeHourly:
		kindKey := "kind_coming_late"
		if req.HourlyKind == models.HourlyLeavingEarly {
			kindKey = "kind_leaving_early"
		}
		b.WriteString(i18n.T(lang, kindKey))
		if req.TargetTime != nil {
			fmt.Fprintf(&b, " %s", req.TargetTime.Format("15:04"))
		}
	}
	fmt.Fprintf(&b, "\n%s", req.Reason)
	return b.String()
}

func statusText(lang, status string) string {
	switch status {
	case models.StatusApproved:
		return i18n.T(lang, "status_approved")
	case models.StatusRejected:
		return i18n.T(lang, "status_rejected")
	default:
		return i18n.T(lang, "status_pending")
	}
}

// userLang возвращает язык пользователя, uz по умолчанию.
func (b *Bot) userLang(ctx context.Context, userID int64) string {
	user, err := b.userService.Get(ctx, userID)
	if err != nil || user == nil {
		return models.LangUz
	}
	return user.Language
}

func (b *Bot) sendText(userID, chatID int64, key string, args ...interface{}) {
	lang := b.userLang(context.Background(), userID)
	b.send(chatID, i18n.Tf(lang, key, args...))
}

func (b *Bot) send(chatID int64, text string) {
	if err := b.tgService.SendMessage(chatID, text); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}
