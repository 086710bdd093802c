package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"davomat/internal/database"
	"davomat/internal/i18n"
	"davomat/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, update tgbotapi.Update) {
	cb := update.CallbackQuery
	userID := cb.From.ID
	data := cb.Data
	l := zerolog.Ctx(ctx)

	var chatID int64
	var messageID int
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
		messageID = cb.Message.MessageID
	}

	// Сразу гасим «часики» на кнопке
	if err := b.tgService.AnswerCallback(cb.ID, ""); err != nil {
		l.Debug().Err(err).Msg("Failed to answer callback")
	}

	user, err := b.userService.Get(ctx, userID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		l.Error().Err(err).Msg("Failed to load user")
		return
	}

	lang := models.LangUz
	if user != nil {
		lang = user.Language
	}

	switch {
	case data == cbNoop:
		return

	case data == cbLangUz || data == cbLangRu:
		b.callbackLanguage(ctx, chatID, userID, user, data)

	case data == cbRoleWorker || data == cbRoleManager:
		b.callbackRole(ctx, chatID, userID, user, data)

	case data == cbCancel:
		b.clearState(ctx, userID)
		b.send(chatID, i18n.T(lang, "cancelled"))
		if user != nil && user.IsVerified {
			b.sendMenu(chatID, user)
		}

	case data == cbCheckIn:
		if user == nil || !user.IsVerified {
			return
		}
		b.doCheckIn(ctx, chatID, user)

	case data == cbCheckOut:
		if user == nil || !user.IsVerified {
			return
		}
		b.doCheckOut(ctx, chatID, user)

	case data == cbRequestDaily:
		b.callbackRequestDaily(ctx, chatID, userID, lang)

	case data == cbRequestHourly:
		b.callbackRequestHourly(ctx, chatID, userID, lang)

	case data == cbHourlyLate || data == cbHourlyEarly:
		b.callbackHourlyKind(ctx, chatID, userID, lang, data)

	case data == cbSameDay:
		b.callbackSameDay(ctx, chatID, userID, lang)

	case strings.HasPrefix(data, cbApprovePrefix):
		b.callbackVerdict(ctx, chatID, messageID, user, models.VerdictApprove,
			strings.TrimPrefix(data, cbApprovePrefix))

	case strings.HasPrefix(data, cbRejectPrefix):
		b.callbackVerdict(ctx, chatID, messageID, user, models.VerdictReject,
			strings.TrimPrefix(data, cbRejectPrefix))

	case strings.HasPrefix(data, cbCommentNoPrefix):
		b.callbackDecide(ctx, chatID, user, strings.TrimPrefix(data, cbCommentNoPrefix), "")

	case strings.HasPrefix(data, cbCommentYesPrefix):
		b.callbackAskComment(ctx, chatID, user, strings.TrimPrefix(data, cbCommentYesPrefix))

	case strings.HasPrefix(data, cbVerifyWorkerPrefix):
		b.callbackVerify(ctx, chatID, user, strings.TrimPrefix(data, cbVerifyWorkerPrefix), models.RoleWorker)

	case strings.HasPrefix(data, cbAssignPMPrefix):
		b.callbackVerify(ctx, chatID, user, strings.TrimPrefix(data, cbAssignPMPrefix), models.RoleProjectManager)

	case strings.HasPrefix(data, cbAssignAdminPrefix):
		b.callbackVerify(ctx, chatID, user, strings.TrimPrefix(data, cbAssignAdminPrefix), models.RoleAdmin)

	case strings.HasPrefix(data, cbAssignSuperPrefix):
		b.callbackVerify(ctx, chatID, user, strings.TrimPrefix(data, cbAssignSuperPrefix), models.RoleSuperAdmin)

	case strings.HasPrefix(data, cbRejectWorkerPrefix):
		b.callbackRejectWorker(ctx, chatID, user, strings.TrimPrefix(data, cbRejectWorkerPrefix))

	case strings.HasPrefix(data, cbPendingPagePrefix):
		if user == nil {
			return
		}
		page, _ := strconv.Atoi(strings.TrimPrefix(data, cbPendingPagePrefix))
		b.showPendingRequests(ctx, chatID, user, page)

	default:
		l.Warn().Str("data", data).Msg("Unknown callback data")
	}
}

func (b *Bot) callbackLanguage(ctx context.Context, chatID, userID int64, user *models.User, data string) {
	lang := models.LangUz
	if data == cbLangRu {
		lang = models.LangRu
	}

	// Смена языка существующим пользователем
	if user != nil {
		if err := b.userService.SetLanguage(ctx, userID, lang); err != nil {
			b.send(chatID, errorMessage(lang, err))
			return
		}
		user.Language = lang
		b.send(chatID, i18n.T(lang, "language_set"))
		if user.IsVerified {
			b.sendMenu(chatID, user)
		}
		return
	}

	// Онбординг: язык выбран, спрашиваем роль
	state, err := b.stateService.Get(ctx, userID)
	if err != nil || state == nil {
		state = &models.UserState{UserID: userID}
	}
	if state.Onboarding == nil {
		state.Onboarding = &models.OnboardingDraft{}
	}
	state.Onboarding.Language = lang
	state.Step = models.StepChooseRole
	if err := b.stateService.Set(ctx, state); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.sendInline(chatID, i18n.T(lang, "choose_role"), roleKeyboard(lang))
}

func (b *Bot) callbackRole(ctx context.Context, chatID, userID int64, user *models.User, data string) {
	if user != nil {
		// Повторная регистрация в другой роли запрещена
		b.send(chatID, i18n.T(user.Language, "role_conflict"))
		return
	}

	state, err := b.stateService.Get(ctx, userID)
	if err != nil || state == nil || state.Onboarding == nil {
		b.send(chatID, i18n.T(models.LangUz, "unknown_command"))
		return
	}
	lang := state.Onboarding.Language
	if lang == "" {
		lang = models.LangUz
	}

	state.Onboarding.Role = data
	state.Step = models.StepAwaitFullName
	if err := b.stateService.Set(ctx, state); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.sendInline(chatID, i18n.T(lang, "ask_full_name"), cancelKeyboard(lang))
}

func (b *Bot) callbackRequestDaily(ctx context.Context, chatID, userID int64, lang string) {
	state := &models.UserState{
		UserID: userID,
		Step:   models.StepDailyDate,
		Daily:  &models.DailyDraft{},
	}
	if err := b.stateService.Set(ctx, state); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.sendInline(chatID, i18n.T(lang, "ask_leave_date"), cancelKeyboard(lang))
}

func (b *Bot) callbackRequestHourly(ctx context.Context, chatID, userID int64, lang string) {
	state := &models.UserState{
		UserID: userID,
		Step:   models.StepHourlyKind,
		Hourly: &models.HourlyDraft{},
	}
	if err := b.stateService.Set(ctx, state); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.sendInline(chatID, i18n.T(lang, "choose_hourly_kind"), hourlyKindKeyboard(lang))
}

func (b *Bot) callbackHourlyKind(ctx context.Context, chatID, userID int64, lang, data string) {
	state, err := b.stateService.Get(ctx, userID)
	if err != nil || state == nil || state.Hourly == nil {
		b.send(chatID, i18n.T(lang, "unknown_command"))
		return
	}

	state.Hourly.Kind = models.HourlyComingLate
	if data == cbHourlyEarly {
		state.Hourly.Kind = models.HourlyLeavingEarly
	}
	state.Step = models.StepHourlyTime
	if err := b.stateService.Set(ctx, state); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.sendInline(chatID, i18n.T(lang, "ask_time"), cancelKeyboard(lang))
}

func (b *Bot) callbackSameDay(ctx context.Context, chatID, userID int64, lang string) {
	state, err := b.stateService.Get(ctx, userID)
	if err != nil || state == nil || state.Daily == nil || state.Step != models.StepDailyReturn {
		b.send(chatID, i18n.T(lang, "unknown_command"))
		return
	}

	state.Daily.ReturnDate = state.Daily.LeaveDate
	state.Step = models.StepDailyReason
	if err := b.stateService.Set(ctx, state); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.sendInline(chatID, i18n.T(lang, "ask_reason"), cancelKeyboard(lang))
}

// callbackVerdict: менеджер нажал «одобрить» или «отклонить» —
// предлагаем выбрать, с комментарием решение или без.
func (b *Bot) callbackVerdict(ctx context.Context, chatID int64, messageID int, user *models.User, verdict, rawID string) {
	if user == nil || !user.IsVerified {
		return
	}
	lang := user.Language

	requestID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return
	}

	req, err := b.requestService.Get(ctx, requestID)
	if err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	if req.Status != models.StatusPending {
		b.send(chatID, i18n.T(lang, "already_decided"))
		return
	}
	if !user.CanDecide(req.Type) {
		b.send(chatID, i18n.T(lang, "unauthorized"))
		return
	}

	kb := commentChoiceKeyboard(lang, verdict, requestID)
	if messageID != 0 {
		if err := b.tgService.EditMessage(chatID, messageID, formatRequestLine(lang, req), &kb); err != nil {
			b.sendInline(chatID, formatRequestLine(lang, req), kb)
		}
		return
	}
	b.sendInline(chatID, formatRequestLine(lang, req), kb)
}

// callbackDecide применяет вердикт без комментария.
// rawData имеет вид "<verdict>_<id>".
func (b *Bot) callbackDecide(ctx context.Context, chatID int64, user *models.User, rawData, comment string) {
	if user == nil {
		return
	}
	lang := user.Language

	verdict, requestID, ok := splitVerdictData(rawData)
	if !ok {
		return
	}

	req, err := b.requestService.Decide(ctx, requestID, user, verdict, comment)
	if err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	if b.metrics != nil {
		b.metrics.RequestsDecided.WithLabelValues(req.Status).Inc()
	}
	b.send(chatID, i18n.Tf(lang, "decision_applied", req.ID, statusText(lang, req.Status)))
	b.notifyDecision(ctx, req, user)
}

// callbackAskComment переводит менеджера в шаг ввода комментария.
func (b *Bot) callbackAskComment(ctx context.Context, chatID int64, user *models.User, rawData string) {
	if user == nil {
		return
	}
	lang := user.Language

	verdict, requestID, ok := splitVerdictData(rawData)
	if !ok {
		return
	}

	state := &models.UserState{
		UserID: user.ID,
		Step:   models.StepDecisionComment,
		Decision: &models.DecisionDraft{
			RequestID: requestID,
			Verdict:   verdict,
		},
	}
	if err := b.stateService.Set(ctx, state); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.sendInline(chatID, i18n.T(lang, "ask_decision_comment"), cancelKeyboard(lang))
}

func splitVerdictData(raw string) (verdict string, requestID int64, ok bool) {
	idx := strings.LastIndex(raw, "_")
	if idx <= 0 {
		return "", 0, false
	}
	verdict = raw[:idx]
	id, err := strconv.ParseInt(raw[idx+1:], 10, 64)
	if err != nil {
		return "", 0, false
	}
	if verdict != models.VerdictApprove && verdict != models.VerdictReject {
		return "", 0, false
	}
	return verdict, id, true
}

func (b *Bot) callbackVerify(ctx context.Context, chatID int64, manager *models.User, rawID, role string) {
	if manager == nil || !manager.IsVerified {
		return
	}
	lang := manager.Language

	// Роли менеджеров раздаёт только супер-админ,
	// обычных сотрудников подтверждают и админы.
	if models.IsManagerRole(role) && manager.Role != models.RoleSuperAdmin {
		b.send(chatID, i18n.T(lang, "unauthorized"))
		return
	}
	if manager.Role != models.RoleAdmin && manager.Role != models.RoleSuperAdmin {
		b.send(chatID, i18n.T(lang, "unauthorized"))
		return
	}

	targetID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return
	}

	if err := b.userService.Verify(ctx, targetID, role); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}

	verified, err := b.userService.Get(ctx, targetID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("target_id", targetID).Msg("Failed to load verified user")
		return
	}
	b.send(chatID, i18n.Tf(lang, "worker_verified", verified.FullName))

	// Сообщаем человеку и показываем его меню
	b.send(verified.ChatID, i18n.T(verified.Language, "account_verified"))
	b.sendMenu(verified.ChatID, verified)
}

func (b *Bot) callbackRejectWorker(ctx context.Context, chatID int64, manager *models.User, rawID string) {
	if manager == nil || !manager.IsVerified ||
		(manager.Role != models.RoleAdmin && manager.Role != models.RoleSuperAdmin) {
		return
	}
	lang := manager.Language

	targetID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return
	}

	target, err := b.userService.Get(ctx, targetID)
	if err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	if target.IsVerified {
		// Подтверждённых не удаляем через эту кнопку
		b.send(chatID, i18n.T(lang, "unauthorized"))
		return
	}

	if err := b.userService.RejectRegistration(ctx, targetID); err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	b.send(chatID, i18n.Tf(lang, "worker_rejected", target.FullName))
	b.send(target.ChatID, i18n.T(target.Language, "registration_rejected"))
}
