package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ogurasousui/shift-checkin-bot/internal/core/conversation"
)

func TestMessageFor_PlainText(t *testing.T) {
	t.Parallel()

	chattable := messageFor(100, 0, conversation.Render{Body: "привет"})

	msg, ok := chattable.(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected MessageConfig, got %T", chattable)
	}
	if msg.ChatID != 100 {
		t.Errorf("expected chat id 100, got %d", msg.ChatID)
	}
	if msg.Text != "привет" {
		t.Errorf("unexpected text: %s", msg.Text)
	}
	if msg.ReplyMarkup != nil {
		t.Error("plain render must not carry a keyboard")
	}
}

func TestMessageFor_Choices(t *testing.T) {
	t.Parallel()

	render := conversation.Render{
		Body: "выбери",
		Choices: [][]conversation.Choice{
			{{Label: "Один", Token: "one"}, {Label: "Два", Token: "two"}},
			{{Label: "Три", Token: "three"}},
		},
	}

	chattable := messageFor(100, 0, render)
	msg, ok := chattable.(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected MessageConfig, got %T", chattable)
	}

	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("expected InlineKeyboardMarkup, got %T", msg.ReplyMarkup)
	}
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(markup.InlineKeyboard))
	}
	if len(markup.InlineKeyboard[0]) != 2 || len(markup.InlineKeyboard[1]) != 1 {
		t.Error("row layout must follow the choice groups")
	}

	button := markup.InlineKeyboard[0][1]
	if button.Text != "Два" {
		t.Errorf("unexpected label: %s", button.Text)
	}
	if button.CallbackData == nil || *button.CallbackData != "two" {
		t.Errorf("unexpected callback data: %v", button.CallbackData)
	}
}

func TestMessageFor_EditInPlace(t *testing.T) {
	t.Parallel()

	render := conversation.Render{
		Body:        "обновлено",
		Choices:     [][]conversation.Choice{{{Label: "Ок", Token: "ok"}}},
		EditInPlace: true,
	}

	chattable := messageFor(100, 55, render)
	edit, ok := chattable.(tgbotapi.EditMessageTextConfig)
	if !ok {
		t.Fatalf("expected EditMessageTextConfig, got %T", chattable)
	}
	if edit.MessageID != 55 {
		t.Errorf("expected message id 55, got %d", edit.MessageID)
	}
	if edit.ReplyMarkup == nil {
		t.Error("expected the keyboard to be carried by the edit")
	}
}

func TestMessageFor_EditWithoutOrigin(t *testing.T) {
	t.Parallel()

	// No button press message to edit: fall back to a fresh message.
	chattable := messageFor(100, 0, conversation.Render{Body: "текст", EditInPlace: true})
	if _, ok := chattable.(tgbotapi.MessageConfig); !ok {
		t.Fatalf("expected MessageConfig fallback, got %T", chattable)
	}
}
