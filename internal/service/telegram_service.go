package service

import (
	"context"

	"davomat/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// TelegramService прячет tgbotapi за узким интерфейсом и придерживает
// исходящие сообщения ограничителем, чтобы массовые рассылки не упирались
// в лимиты Telegram.
type TelegramService struct {
	bot     domain.TelegramSender
	limiter *rate.Limiter
}

func NewTelegramService(bot domain.TelegramSender, sendRatePerSecond int) *TelegramService {
	if sendRatePerSecond <= 0 {
		sendRatePerSecond = 25
	}
	return &TelegramService{
		bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(sendRatePerSecond), sendRatePerSecond),
	}
}

func (s *TelegramService) send(c tgbotapi.Chattable) error {
	_ = s.limiter.Wait(context.Background())
	_, err := s.bot.Send(c)
	return err
}

func (s *TelegramService) SendMessage(chatID int64, text string) error {
	return s.send(tgbotapi.NewMessage(chatID, text))
}

func (s *TelegramService) SendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	return s.send(msg)
}

func (s *TelegramService) SendWithInlineKeyboard(
	chatID int64,
	text string,
	keyboard tgbotapi.InlineKeyboardMarkup,
) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	return s.send(msg)
}

func (s *TelegramService) SendDocument(chatID int64, filePath, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(filePath))
	doc.Caption = caption
	return s.send(doc)
}

func (s *TelegramService) EditMessage(
	chatID int64,
	messageID int,
	text string,
	keyboard *tgbotapi.InlineKeyboardMarkup,
) error {
	if keyboard != nil {
		return s.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *keyboard))
	}
	return s.send(tgbotapi.NewEditMessageText(chatID, messageID, text))
}

func (s *TelegramService) AnswerCallback(callbackID, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	_, err := s.bot.Request(callback)
	return err
}

func (s *TelegramService) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return s.bot.GetUpdatesChan(config)
}

func (s *TelegramService) StopReceivingUpdates() {
	s.bot.StopReceivingUpdates()
}
