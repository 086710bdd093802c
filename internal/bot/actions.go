package bot

import (
	"context"
	"fmt"
	"strings"

	"davomat/internal/i18n"
	"davomat/internal/models"
)

func (b *Bot) doCheckIn(ctx context.Context, chatID int64, user *models.User) {
	lang := user.Language

	rec, err := b.attendanceService.CheckIn(ctx, user.ID)
	if err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	if b.metrics != nil {
		b.metrics.AttendanceMarks.WithLabelValues("check_in").Inc()
	}
	b.send(chatID, i18n.Tf(lang, "checkin_ok", rec.CheckIn.Format("15:04")))
}

func (b *Bot) doCheckOut(ctx context.Context, chatID int64, user *models.User) {
	lang := user.Language

	rec, err := b.attendanceService.CheckOut(ctx, user.ID)
	if err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	if b.metrics != nil {
		b.metrics.AttendanceMarks.WithLabelValues("check_out").Inc()
	}
	b.send(chatID, i18n.Tf(lang, "checkout_ok", rec.CheckOut.Format("15:04")))
}

func (b *Bot) startLateComment(ctx context.Context, chatID int64, user *models.User) {
	state := &models.UserState{UserID: user.ID, Step: models.StepLateComment}
	if err := b.stateService.Set(ctx, state); err != nil {
		b.send(chatID, errorMessage(user.Language, err))
		return
	}
	b.sendInline(chatID, i18n.T(user.Language, "late_prompt"), cancelKeyboard(user.Language))
}

func (b *Bot) showMyRequests(ctx context.Context, chatID int64, user *models.User) {
	lang := user.Language

	requests, err := b.requestService.WorkerHistory(ctx, user.ID, 10)
	if err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	if len(requests) == 0 {
		b.send(chatID, i18n.T(lang, "my_requests_empty"))
		return
	}

	var sb strings.Builder
	sb.WriteString(i18n.T(lang, "my_requests_title"))
	for i := range requests {
		req := &requests[i]
		fmt.Fprintf(&sb, "\n\n%s\n%s", formatRequestLine(lang, req), statusText(lang, req.Status))
		if req.DecisionComment != "" {
			fmt.Fprintf(&sb, "\n%s", i18n.Tf(lang, "notify_decision_comment", req.DecisionComment))
		}
	}
	b.send(chatID, sb.String())
}

func (b *Bot) showPendingWorkers(ctx context.Context, chatID int64, user *models.User) {
	lang := user.Language

	if user.Role != models.RoleAdmin && user.Role != models.RoleSuperAdmin {
		b.send(chatID, i18n.T(lang, "unauthorized"))
		return
	}

	pending, err := b.userService.Unverified(ctx)
	if err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	if len(pending) == 0 {
		b.send(chatID, i18n.T(lang, "no_pending_workers"))
		return
	}

	for i := range pending {
		candidate := &pending[i]
		if models.IsManagerRole(candidate.Role) {
			// Назначение роли менеджера — только супер-админами
			if user.Role != models.RoleSuperAdmin {
				continue
			}
			b.sendInline(chatID, i18n.Tf(lang, "notify_new_manager", candidate.FullName),
				assignRoleKeyboard(lang, candidate.ID))
			continue
		}
		b.sendInline(chatID, i18n.Tf(lang, "notify_new_worker", candidate.FullName),
			verifyWorkerKeyboard(lang, candidate.ID))
	}
}
