package bot

import (
	"context"
	"fmt"
	"strings"

	"davomat/internal/i18n"
	"davomat/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// showPendingRequests выводит страницу очереди заявок с кнопками решения
// под каждой позицией и навигацией внизу.
func (b *Bot) showPendingRequests(ctx context.Context, chatID int64, user *models.User, page int) {
	lang := user.Language

	if !user.IsManager() {
		b.send(chatID, i18n.T(lang, "unauthorized"))
		return
	}

	requests, err := b.requestService.PendingForRole(ctx, user.Role)
	if err != nil {
		b.send(chatID, errorMessage(lang, err))
		return
	}
	if len(requests) == 0 {
		b.send(chatID, i18n.T(lang, "pending_empty"))
		return
	}

	pageSize := b.config.Bot.PaginationSize
	if pageSize <= 0 {
		pageSize = models.DefaultPaginationSize
	}
	totalPages := (len(requests) + pageSize - 1) / pageSize
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	from := page * pageSize
	to := from + pageSize
	if to > len(requests) {
		to = len(requests)
	}

	var sb strings.Builder
	sb.WriteString(i18n.T(lang, "pending_title"))
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for i := from; i < to; i++ {
		req := &requests[i]
		fmt.Fprintf(&sb, "\n\n%s\n%s", req.WorkerName, formatRequestLine(lang, req))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("✅ #%d", req.ID), fmt.Sprintf("%s%d", cbApprovePrefix, req.ID)),
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("❌ #%d", req.ID), fmt.Sprintf("%s%d", cbRejectPrefix, req.ID)),
		))
	}

	if totalPages > 1 {
		nav := []tgbotapi.InlineKeyboardButton{}
		if page > 0 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️",
				fmt.Sprintf("%s%d", cbPendingPagePrefix, page-1)))
		}
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
			i18n.Tf(lang, "page_of", page+1, totalPages), cbNoop))
		if page < totalPages-1 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️",
				fmt.Sprintf("%s%d", cbPendingPagePrefix, page+1)))
		}
		rows = append(rows, nav)
	}

	b.sendInline(chatID, sb.String(), tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows})
}
