package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ogurasousui/shift-checkin-bot/internal/core/conversation"
)

// inbound は一つの Bot API アップデートをエンジン向けに解釈した結果です。
type inbound struct {
	chatID        int64
	lastMessageID int
	callbackID    string
	sender        conversation.Sender
	event         conversation.Event
}

// eventFromUpdate はアップデートを三種類の会話イベントのどれかへ写します。
// コマンドでもテキストでもボタンでもないもの(入室通知など)は偽を返します。
func eventFromUpdate(update tgbotapi.Update) (inbound, bool) {
	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.Message == nil || cb.From == nil {
			return inbound{}, false
		}
		return inbound{
			chatID:        cb.Message.Chat.ID,
			lastMessageID: cb.Message.MessageID,
			callbackID:    cb.ID,
			sender:        senderFrom(cb.From),
			event:         conversation.ButtonPress{Token: cb.Data},
		}, true

	case update.Message != nil && update.Message.From != nil && update.Message.Text != "":
		msg := update.Message
		var event conversation.Event
		if msg.IsCommand() {
			event = conversation.Command{Name: msg.Command()}
		} else {
			event = conversation.TextMessage{Body: msg.Text}
		}
		return inbound{
			chatID: msg.Chat.ID,
			sender: senderFrom(msg.From),
			event:  event,
		}, true

	default:
		return inbound{}, false
	}
}

func senderFrom(user *tgbotapi.User) conversation.Sender {
	return conversation.Sender{
		ChannelUserID: strconv.FormatInt(user.ID, 10),
		DisplayName:   user.FirstName,
	}
}
