package bot

import (
	"context"
	"strings"

	"davomat/internal/i18n"
	"davomat/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// handleDialogStep ведёт пользователя по шагам активного диалога.
func (b *Bot) handleDialogStep(ctx context.Context, msg *tgbotapi.Message, user *models.User, state *models.UserState) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	lang := models.LangUz
	if user != nil {
		lang = user.Language
	} else if state.Onboarding != nil && state.Onboarding.Language != "" {
		lang = state.Onboarding.Language
	}

	switch state.Step {
	case models.StepChooseLanguage, models.StepChooseRole:
		// Эти шаги проходят через inline-кнопки, текст игнорируем
		b.send(chatID, i18n.T(lang, "choose_language"))

	case models.StepAwaitFullName:
		b.handleFullName(ctx, msg, state, lang, text)

	case models.StepDailyDate:
		b.handleDailyDate(ctx, chatID, state, lang, text)

	case models.StepDailyReturn:
		b.handleDailyReturn(ctx, chatID, state, lang, text)

	case models.StepDailyReason:
		b.handleDailyReason(ctx, chatID, user, state, lang, text)

	case models.StepHourlyKind:
		b.sendInline(chatID, i18n.T(lang, "choose_hourly_kind"), hourlyKindKeyboard(lang))

	case models.StepHourlyTime:
		b.handleHourlyTime(ctx, chatID, state, lang, text)

	case models.StepHourlyReason:
		b.handleHourlyReason(ctx, chatID, user, state, lang, text)

	case models.StepLateComment:
		b.handleLateComment(ctx, chatID, user, lang, text)

	case models.StepDecisionComment:
		b.handleDecisionComment(ctx, chatID, user, state, lang, text)

	default:
		b.clearState(ctx, state.UserID)
		b.send(chatID, i18n.T(lang, "unknown_command"))
	}
}

func (b *Bot) handleFullName(ctx context.Context, msg *tgbotapi.Message, state *models.UserState, lang, text string) {
	chatID := msg.Chat.ID

	if len([]rune(text)) < models.MinNameLength {
		b.send(chatID, i18n.T(lang, "name_too_short"))
		return
	}
	if state.Onboarding == nil {
		b.clearState(ctx, state.UserID)
		b.send(chatID, i18n.T(lang, "unknown_command"))
		return
	}

	role := models.RoleWorker
	if state.Onboarding.Role == cbRoleManager {
		// До назначения конкретной роли супер-админом кандидат
		// числится проект-менеджером без верификации.
		role = models.RoleProjectManager
	}

	user := &models.User{
		ID:       state.UserID,
		ChatID:   chatID,
		FullName: text,
		Username: msg.From.UserName,
		Role:     role,
		Language: lang,
	}
	if err := b.userService.Register(ctx, user); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.clearState(ctx, state.UserID)

	if user.IsVerified {
		// Супер-админ из конфигурации попадает сразу в меню
		b.sendMenu(chatID, user)
		return
	}

	b.send(chatID, i18n.Tf(lang, "registered_pending", user.FullName))
	b.notifyNewUser(ctx, user)
}

func (b *Bot) handleDailyDate(ctx context.Context, chatID int64, state *models.UserState, lang, text string) {
	day, err := parseDate(b.clock, text)
	if err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	if state.Daily == nil {
		state.Daily = &models.DailyDraft{}
	}
	state.Daily.LeaveDate = day
	state.Step = models.StepDailyReturn
	if err := b.stateService.Set(ctx, state); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.sendInline(chatID, i18n.T(lang, "ask_return_date"), sameDayKeyboard(lang))
}

func (b *Bot) handleDailyReturn(ctx context.Context, chatID int64, state *models.UserState, lang, text string) {
	day, err := parseDate(b.clock, text)
	if err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	if state.Daily == nil {
		b.clearState(ctx, state.UserID)
		b.send(chatID, i18n.T(lang, "unknown_command"))
		return
	}
	if day < state.Daily.LeaveDate {
		b.send(chatID, i18n.T(lang, "return_before_leave"))
		return
	}
	state.Daily.ReturnDate = day
	state.Step = models.StepDailyReason
	if err := b.stateService.Set(ctx, state); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.sendInline(chatID, i18n.T(lang, "ask_reason"), cancelKeyboard(lang))
}

func (b *Bot) handleDailyReason(ctx context.Context, chatID int64, user *models.User, state *models.UserState, lang, text string) {
	if user == nil || state.Daily == nil {
		b.clearState(ctx, state.UserID)
		b.send(chatID, i18n.T(lang, "unknown_command"))
		return
	}

	req := &models.Request{
		WorkerID:   user.ID,
		Type:       models.RequestTypeDaily,
		Reason:     text,
		LeaveDate:  state.Daily.LeaveDate,
		ReturnDate: state.Daily.ReturnDate,
	}
	if err := b.requestService.Create(ctx, req); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.finishRequest(ctx, chatID, user, req, lang)
}

func (b *Bot) handleHourlyTime(ctx context.Context, chatID int64, state *models.UserState, lang, text string) {
	hour, minute, err := parseTimeOfDay(text)
	if err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}

	startHour := b.config.Bot.WorkDayStartHour
	endHour := b.config.Bot.WorkDayEndHour
	if hour < startHour || hour > endHour || (hour == endHour && minute > 0) {
		b.send(chatID, i18n.Tf(lang, "time_outside_window", startHour, endHour))
		return
	}

	target, err := b.clock.At(b.clock.Today(), hour, minute)
	if err != nil {
		b.send(chatID, i18n.T(lang, "bad_time"))
		return
	}
	if !target.After(b.clock.Now()) {
		b.send(chatID, errorMessage(lang, errTimeNotFuture))
		return
	}

	if state.Hourly == nil {
		b.clearState(ctx, state.UserID)
		b.send(chatID, i18n.T(lang, "unknown_command"))
		return
	}
	state.Hourly.TargetTime = &target
	state.Step = models.StepHourlyReason
	if err := b.stateService.Set(ctx, state); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.sendInline(chatID, i18n.T(lang, "ask_reason"), cancelKeyboard(lang))
}

func (b *Bot) handleHourlyReason(ctx context.Context, chatID int64, user *models.User, state *models.UserState, lang, text string) {
	if user == nil || state.Hourly == nil {
		b.clearState(ctx, state.UserID)
		b.send(chatID, i18n.T(lang, "unknown_command"))
		return
	}

	req := &models.Request{
		WorkerID:   user.ID,
		Type:       models.RequestTypeHourly,
		HourlyKind: state.Hourly.Kind,
		Reason:     text,
		TargetTime: state.Hourly.TargetTime,
	}
	if err := b.requestService.Create(ctx, req); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.finishRequest(ctx, chatID, user, req, lang)
}

func (b *Bot) finishRequest(ctx context.Context, chatID int64, user *models.User, req *models.Request, lang string) {
	b.clearState(ctx, user.ID)
	if b.metrics != nil {
		b.metrics.RequestsCreated.WithLabelValues(req.Type).Inc()
	}
	b.send(chatID, i18n.Tf(lang, "request_created", req.ID))

	req.WorkerName = user.FullName
	b.notifyNewRequest(ctx, req)
}

func (b *Bot) handleLateComment(ctx context.Context, chatID int64, user *models.User, lang, text string) {
	if user == nil {
		b.send(chatID, i18n.T(lang, "unknown_command"))
		return
	}
	if err := b.attendanceService.AddLateComment(ctx, user.ID, text); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.clearState(ctx, user.ID)
	b.send(chatID, i18n.T(lang, "late_saved"))
}

func (b *Bot) handleDecisionComment(ctx context.Context, chatID int64, user *models.User, state *models.UserState, lang, text string) {
	if user == nil || state.Decision == nil {
		b.clearState(ctx, state.UserID)
		b.send(chatID, i18n.T(lang, "unknown_command"))
		return
	}

	req, err := b.requestService.Decide(ctx, state.Decision.RequestID, user, state.Decision.Verdict, text)
	if err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.clearState(ctx, user.ID)
	if b.metrics != nil {
		b.metrics.RequestsDecided.WithLabelValues(req.Status).Inc()
	}
	b.send(chatID, i18n.Tf(lang, "decision_applied", req.ID, statusText(lang, req.Status)))
	b.notifyDecision(ctx, req, user)
}

func (b *Bot) clearState(ctx context.Context, userID int64) {
	if err := b.stateService.Clear(ctx, userID); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to clear dialogue state")
	}
}
