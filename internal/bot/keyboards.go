package bot

import (
	"fmt"

	"davomat/internal/i18n"
	"davomat/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// callback data
const (
	cbLangUz      = "lang_uz"
	cbLangRu      = "lang_ru"
	cbRoleWorker  = "role_worker"
	cbRoleManager = "role_manager"

	cbCheckIn       = "check_in"
	cbCheckOut      = "check_out"
	cbRequestDaily  = "request_daily"
	cbRequestHourly = "request_hourly"
	cbHourlyLate    = "hourly_late"
	cbHourlyEarly   = "hourly_early"
	cbSameDay       = "same_day"
	cbCancel        = "cancel"
	cbNoop          = "noop"

	cbApprovePrefix      = "approve_"
	cbRejectPrefix       = "reject_"
	cbCommentYesPrefix   = "dc_yes_"
	cbCommentNoPrefix    = "dc_no_"
	cbVerifyWorkerPrefix = "vw_"
	cbRejectWorkerPrefix = "rw_"
	cbAssignPMPrefix     = "as_pm_"
	cbAssignAdminPrefix  = "as_adm_"
	cbAssignSuperPrefix  = "as_sup_"
	cbPendingPagePrefix  = "pend_page_"
)

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("O'zbekcha 🇺🇿", cbLangUz),
			tgbotapi.NewInlineKeyboardButtonData("Русский 🇷🇺", cbLangRu),
		),
	)
}

func roleKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_role_worker"), cbRoleWorker),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_role_manager"), cbRoleManager),
		),
	)
}

// mainMenuKeyboard строит reply-клавиатуру по роли пользователя.
func mainMenuKeyboard(user *models.User) tgbotapi.ReplyKeyboardMarkup {
	lang := user.Language
	rows := [][]tgbotapi.KeyboardButton{}

	if user.Role == models.RoleWorker {
		rows = append(rows,
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_check_in")),
				tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_check_out")),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_request_leave")),
				tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_late_comment")),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_my_requests")),
			),
		)
	} else {
		row := tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_pending_requests")),
		)
		if user.Role == models.RoleAdmin || user.Role == models.RoleSuperAdmin {
			row = append(row, tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_pending_workers")))
		}
		rows = append(rows, row,
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_report")),
			),
		)
	}

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

func requestTypeKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_daily"), cbRequestDaily),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_hourly"), cbRequestHourly),
		),
		cancelRow(lang),
	)
}

func hourlyKindKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_coming_late"), cbHourlyLate),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_leaving_early"), cbHourlyEarly),
		),
		cancelRow(lang),
	)
}

func sameDayKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_same_day"), cbSameDay),
		),
		cancelRow(lang),
	)
}

func cancelRow(lang string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_cancel"), cbCancel),
	)
}

// cancelKeyboard сопровождает текстовые шаги диалога кнопкой отмены.
func cancelKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(cancelRow(lang))
}

func decisionKeyboard(lang string, requestID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_approve"),
				fmt.Sprintf("%s%d", cbApprovePrefix, requestID)),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_reject"),
				fmt.Sprintf("%s%d", cbRejectPrefix, requestID)),
		),
	)
}

// commentChoiceKeyboard: после вердикта менеджер выбирает,
// добавлять ли комментарий к решению.
func commentChoiceKeyboard(lang, verdict string, requestID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_with_comment"),
				fmt.Sprintf("%s%s_%d", cbCommentYesPrefix, verdict, requestID)),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_without_comment"),
				fmt.Sprintf("%s%s_%d", cbCommentNoPrefix, verdict, requestID)),
		),
	)
}

func verifyWorkerKeyboard(lang string, workerID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_approve"),
				fmt.Sprintf("%s%d", cbVerifyWorkerPrefix, workerID)),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_reject"),
				fmt.Sprintf("%s%d", cbRejectWorkerPrefix, workerID)),
		),
	)
}

func assignRoleKeyboard(lang string, userID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_assign_pm"),
				fmt.Sprintf("%s%d", cbAssignPMPrefix, userID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_assign_admin"),
				fmt.Sprintf("%s%d", cbAssignAdminPrefix, userID)),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_assign_super"),
				fmt.Sprintf("%s%d", cbAssignSuperPrefix, userID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_reject"),
				fmt.Sprintf("%s%d", cbRejectWorkerPrefix, userID)),
		),
	)
}
