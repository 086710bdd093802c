package bot

import (
	"context"
	"fmt"
	"strings"

	"davomat/internal/i18n"
	"davomat/internal/models"

	"github.com/rs/zerolog"
)

// notifyNewRequest рассылает новую заявку менеджерам, уполномоченным
// её решать. Ошибка доставки одному адресату не останавливает рассылку.
func (b *Bot) notifyNewRequest(ctx context.Context, req *models.Request) {
	deciders, err := b.userService.Managers(ctx, true, models.DeciderRole(req.Type))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to load deciders for notification")
		return
	}

	for i := range deciders {
		m := &deciders[i]
		text := newRequestText(m.Language, req)
		if err := b.tgService.SendWithInlineKeyboard(m.ChatID, text, decisionKeyboard(m.Language, req.ID)); err != nil {
			b.noteDeliveryFailure(ctx, m.ID, err)
		}
	}
}

func newRequestText(lang string, req *models.Request) string {
	if req.Type == models.RequestTypeDaily {
		returnDay := req.ReturnDate
		if returnDay == "" {
			returnDay = req.LeaveDate
		}
		return i18n.Tf(lang, "notify_new_daily",
			req.ID, req.WorkerName, formatDay(req.LeaveDate), formatDay(returnDay), req.Reason)
	}

	kindKey := "kind_coming_late"
	if req.HourlyKind == models.HourlyLeavingEarly {
		kindKey = "kind_leaving_early"
	}
	target := ""
	if req.TargetTime != nil {
		target = req.TargetTime.Format("15:04")
	}
	return i18n.Tf(lang, "notify_new_hourly",
		req.ID, i18n.T(lang, kindKey), req.WorkerName, target, req.Reason)
}

// notifyDecision сообщает решение сотруднику и остальным менеджерам.
func (b *Bot) notifyDecision(ctx context.Context, req *models.Request, decider *models.User) {
	l := zerolog.Ctx(ctx)

	worker, err := b.userService.Get(ctx, req.WorkerID)
	if err != nil {
		l.Error().Err(err).Int64("worker_id", req.WorkerID).Msg("Failed to load worker for notification")
	} else {
		text := i18n.Tf(worker.Language, "notify_decision_worker", req.ID, statusText(worker.Language, req.Status))
		if req.DecisionComment != "" {
			text += "\n" + i18n.Tf(worker.Language, "notify_decision_comment", req.DecisionComment)
		}
		if err := b.tgService.SendMessage(worker.ChatID, text); err != nil {
			b.noteDeliveryFailure(ctx, worker.ID, err)
		}
	}

	managers, err := b.userService.Managers(ctx, true)
	if err != nil {
		l.Error().Err(err).Msg("Failed to load managers for broadcast")
		return
	}
	for i := range managers {
		m := &managers[i]
		if m.ID == decider.ID || m.ID == req.WorkerID {
			continue
		}
		text := i18n.Tf(m.Language, "notify_decision_broadcast",
			req.ID, req.WorkerName, statusText(m.Language, req.Status))
		if err := b.tgService.SendMessage(m.ChatID, text); err != nil {
			b.noteDeliveryFailure(ctx, m.ID, err)
		}
	}
}

// notifyNewUser отправляет карточку нового пользователя тем, кто может
// его подтвердить: сотрудников — админам, менеджеров — супер-админам.
func (b *Bot) notifyNewUser(ctx context.Context, user *models.User) {
	var (
		recipients []models.User
		err        error
	)
	if models.IsManagerRole(user.Role) {
		recipients, err = b.userService.Managers(ctx, true, models.RoleSuperAdmin)
	} else {
		recipients, err = b.userService.Managers(ctx, true, models.RoleAdmin, models.RoleSuperAdmin)
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to load recipients for new user notification")
		return
	}

	for i := range recipients {
		m := &recipients[i]
		if models.IsManagerRole(user.Role) {
			text := i18n.Tf(m.Language, "notify_new_manager", user.FullName)
			if err := b.tgService.SendWithInlineKeyboard(m.ChatID, text, assignRoleKeyboard(m.Language, user.ID)); err != nil {
				b.noteDeliveryFailure(ctx, m.ID, err)
			}
			continue
		}
		text := i18n.Tf(m.Language, "notify_new_worker", user.FullName)
		if err := b.tgService.SendWithInlineKeyboard(m.ChatID, text, verifyWorkerKeyboard(m.Language, user.ID)); err != nil {
			b.noteDeliveryFailure(ctx, m.ID, err)
		}
	}
}

// digestText собирает сводку заявок, ждущих решения дольше days дней.
// Длинная сводка сворачивается в короткий итог с первыми фамилиями.
func (b *Bot) digestText(ctx context.Context, lang string, days int) string {
	stale, err := b.requestService.StalePending(ctx, days)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to load stale requests")
		return i18n.T(lang, "internal_error")
	}
	if len(stale) == 0 {
		return i18n.T(lang, "digest_empty")
	}

	var sb strings.Builder
	sb.WriteString(i18n.Tf(lang, "digest_title", days))
	for i := range stale {
		req := &stale[i]
		fmt.Fprintf(&sb, "\n\n%s\n%s", req.WorkerName, formatRequestLine(lang, req))
	}

	if len([]rune(sb.String())) <= models.MaxMessageLength {
		return sb.String()
	}

	names := make([]string, 0, 5)
	for i := range stale {
		if len(names) == 5 {
			break
		}
		names = append(names, stale[i].WorkerName)
	}
	return i18n.Tf(lang, "digest_summary", len(stale), strings.Join(names, ", "))
}

// sendDigest рассылает плановую сводку супер-админам, каждому на его языке.
// Админы при необходимости запрашивают её командой /digest.
func (b *Bot) sendDigest(ctx context.Context, days int) {
	recipients, err := b.userService.Managers(ctx, true, models.RoleSuperAdmin)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to load digest recipients")
		return
	}

	for i := range recipients {
		m := &recipients[i]
		if err := b.tgService.SendMessage(m.ChatID, b.digestText(ctx, m.Language, days)); err != nil {
			b.noteDeliveryFailure(ctx, m.ID, err)
		}
	}
}

func (b *Bot) noteDeliveryFailure(ctx context.Context, userID int64, err error) {
	if b.metrics != nil {
		b.metrics.NotificationFailures.Inc()
	}
	zerolog.Ctx(ctx).Warn().Err(err).Int64("user_id", userID).Msg("Notification delivery failed, skipping recipient")
}
