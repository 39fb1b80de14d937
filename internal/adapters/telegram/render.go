package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ogurasousui/shift-checkin-bot/internal/core/conversation"
)

// messageFor は抽象的な描画指示を Bot API のメッセージへ写します。
// lastMessageID はボタン押下元のメッセージで、EditInPlace の対象になります。
func messageFor(chatID int64, lastMessageID int, render conversation.Render) tgbotapi.Chattable {
	markup := keyboardFor(render.Choices)

	if render.EditInPlace && lastMessageID != 0 {
		if markup != nil {
			return tgbotapi.NewEditMessageTextAndMarkup(chatID, lastMessageID, render.Body, *markup)
		}
		return tgbotapi.NewEditMessageText(chatID, lastMessageID, render.Body)
	}

	msg := tgbotapi.NewMessage(chatID, render.Body)
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	return msg
}

// keyboardFor は選択肢の並びをインラインキーボードへ写します。選択肢がなければ nil です。
func keyboardFor(choices [][]conversation.Choice) *tgbotapi.InlineKeyboardMarkup {
	if len(choices) == 0 {
		return nil
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(choices))
	for _, group := range choices {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(group))
		for _, choice := range group {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(choice.Label, choice.Token))
		}
		rows = append(rows, row)
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}
