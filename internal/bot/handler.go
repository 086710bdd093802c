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

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	userID := msg.From.ID
	chatID := msg.Chat.ID
	l := zerolog.Ctx(ctx)

	user, err := b.userService.Get(ctx, userID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		l.Error().Err(err).Msg("Failed to load user")
		b.send(chatID, i18n.T(models.LangUz, "internal_error"))
		return
	}

	if msg.IsCommand() {
		// Команда прерывает незавершенный диалог
		b.clearState(ctx, userID)
		b.handleCommand(ctx, msg, user)
		return
	}

	// Активный диалог имеет приоритет над кнопками меню
	state, err := b.stateService.Get(ctx, userID)
	if err != nil {
		l.Error().Err(err).Msg("Failed to load dialogue state")
	}
	if state != nil && state.Step != "" {
		b.handleDialogStep(ctx, msg, user, state)
		return
	}

	if user == nil {
		b.send(chatID, i18n.T(models.LangUz, "unknown_command"))
		return
	}
	if !user.IsVerified {
		b.send(chatID, i18n.T(user.Language, "await_verification"))
		return
	}

	b.handleMenuButton(ctx, msg, user)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *models.User) {
	chatID := msg.Chat.ID
	lang := models.LangUz
	if user != nil {
		lang = user.Language
	}

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg, user)

	case "lang":
		b.sendInline(chatID, i18n.T(lang, "choose_language"), languageKeyboard())

	case "activate":
		if user == nil {
			b.send(chatID, i18n.T(lang, "unknown_command"))
			return
		}
		if err := b.userService.SetActive(ctx, user.ID, true); err != nil {
			b.send(chatID, errorMessage(lang, err))
			return
		}
		b.send(chatID, i18n.T(lang, "activated"))

	case "deactivate":
		if user == nil {
			b.send(chatID, i18n.T(lang, "unknown_command"))
			return
		}
		if err := b.userService.SetActive(ctx, user.ID, false); err != nil {
			b.send(chatID, errorMessage(lang, err))
			return
		}
		b.send(chatID, i18n.T(lang, "deactivated"))

	case "digest":
		if user == nil || !user.IsVerified ||
			(user.Role != models.RoleAdmin && user.Role != models.RoleSuperAdmin) {
			b.send(chatID, i18n.T(lang, "unauthorized"))
			return
		}
		days := b.config.Bot.StaleThresholdDays
		if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
			if n, err := strconv.Atoi(arg); err == nil && n > 0 {
				days = n
			}
		}
		b.send(chatID, b.digestText(ctx, lang, days))

	case "report":
		if user == nil || !user.IsVerified || !user.IsManager() {
			b.send(chatID, i18n.T(lang, "unauthorized"))
			return
		}
		b.sendAttendanceReport(ctx, chatID, lang)

	default:
		b.send(chatID, i18n.T(lang, "unknown_command"))
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message, user *models.User) {
	chatID := msg.Chat.ID

	if user != nil {
		if !user.IsVerified {
			b.send(chatID, i18n.T(user.Language, "await_verification"))
			return
		}
		b.sendMenu(chatID, user)
		return
	}

	// Новый человек: онбординг начинается с выбора языка
	state := &models.UserState{
		UserID:     msg.From.ID,
		Step:       models.StepChooseLanguage,
		Onboarding: &models.OnboardingDraft{},
	}
	if err := b.stateService.Set(ctx, state); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to save onboarding state")
	}
	b.sendInline(chatID, i18n.T(models.LangUz, "choose_language"), languageKeyboard())
}

// handleMenuButton сопоставляет текст reply-кнопки с действием.
// Сравниваем с текстами обоих языков: клавиатура могла остаться
// от прежнего языка пользователя.
func (b *Bot) handleMenuButton(ctx context.Context, msg *tgbotapi.Message, user *models.User) {
	chatID := msg.Chat.ID
	lang := user.Language

	switch buttonAction(msg.Text) {
	case "btn_check_in":
		b.doCheckIn(ctx, chatID, user)
	case "btn_check_out":
		b.doCheckOut(ctx, chatID, user)
	case "btn_request_leave":
		b.sendInline(chatID, i18n.T(lang, "choose_request_type"), requestTypeKeyboard(lang))
	case "btn_late_comment":
		b.startLateComment(ctx, chatID, user)
	case "btn_my_requests":
		b.showMyRequests(ctx, chatID, user)
	case "btn_pending_requests":
		b.showPendingRequests(ctx, chatID, user, 0)
	case "btn_pending_workers":
		b.showPendingWorkers(ctx, chatID, user)
	case "btn_report":
		if !user.IsManager() {
			b.send(chatID, i18n.T(lang, "unauthorized"))
			return
		}
		b.sendAttendanceReport(ctx, chatID, lang)
	default:
		b.send(chatID, i18n.T(lang, "unknown_command"))
	}
}

// buttonAction возвращает ключ кнопки по её тексту на любом языке.
func buttonAction(text string) string {
	keys := []string{
		"btn_check_in", "btn_check_out", "btn_request_leave", "btn_late_comment",
		"btn_my_requests", "btn_pending_requests", "btn_pending_workers", "btn_report",
	}
	for _, key := range keys {
		for _, lang := range []string{models.LangUz, models.LangRu} {
			if text == i18n.T(lang, key) {
				return key
			}
		}
	}
	return ""
}

func (b *Bot) sendMenu(chatID int64, user *models.User) {
	if err := b.tgService.SendWithKeyboard(chatID, i18n.T(user.Language, "menu_title"), mainMenuKeyboard(user)); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send menu")
	}
}

func (b *Bot) sendInline(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	if err := b.tgService.SendWithInlineKeyboard(chatID, text, kb); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send inline keyboard")
	}
}
