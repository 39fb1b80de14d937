package telegram

import (
	"context"
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ogurasousui/shift-checkin-bot/internal/core/conversation"
)

// 利用者ごとのキュー長。溢れた入力は配送保証の対象外として捨てます。
const perUserQueueSize = 32

// botClient は Bot が利用する Bot API 操作の抽象です。*tgbotapi.BotAPI が満たします。
type botClient interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot は Bot API のロングポーリングと会話エンジンを繋ぐトランスポート層です。
// セッションが利用者単位で管理されるため、直列化も利用者単位で行います。
// 同一利用者の入力はチャットをまたいでも一つのワーカーで順に処理し、
// 利用者間は並行に進みます。この直列化がエンジンのセッション整合性の前提です。
type Bot struct {
	api         botClient
	self        tgbotapi.User
	engine      *conversation.Engine
	pollTimeout int

	mu     sync.Mutex
	queues map[string]chan inbound
	wg     sync.WaitGroup
}

// New は Bot を生成し、Bot API との疎通を確認します。
func New(token string, pollTimeoutSec int, engine *conversation.Engine) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	b := newBot(api, pollTimeoutSec, engine)
	b.self = api.Self
	return b, nil
}

func newBot(client botClient, pollTimeoutSec int, engine *conversation.Engine) *Bot {
	return &Bot{
		api:         client,
		engine:      engine,
		pollTimeout: pollTimeoutSec,
		queues:      make(map[string]chan inbound),
	}
}

// Username は認証済みボットのユーザー名を返します。
func (b *Bot) Username() string {
	return b.self.UserName
}

// Run はアップデートの受信を開始し、コンテキストがキャンセルされると
// ポーリングを止めて進行中の処理を待ち合わせます。
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = b.pollTimeout

	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.shutdown()
			return nil
		case update, ok := <-updates:
			if !ok {
				b.shutdown()
				return nil
			}
			in, ok := eventFromUpdate(update)
			if !ok {
				continue
			}
			b.dispatch(ctx, in)
		}
	}
}

// dispatch は入力を利用者専用キューへ積みます。キーはエンジンがセッションを
// 引くのと同じ ChannelUserID で、チャット ID ではありません。キューが初めて
// 使われるタイミングでワーカーを起動します。
func (b *Bot) dispatch(ctx context.Context, in inbound) {
	key := in.sender.ChannelUserID

	b.mu.Lock()
	queue, ok := b.queues[key]
	if !ok {
		queue = make(chan inbound, perUserQueueSize)
		b.queues[key] = queue
		b.wg.Add(1)
		go b.worker(ctx, queue)
	}
	b.mu.Unlock()

	select {
	case queue <- in:
	default:
		log.Printf("telegram: queue for user %s full, dropping update", key)
	}
}

func (b *Bot) worker(ctx context.Context, queue chan inbound) {
	defer b.wg.Done()
	for in := range queue {
		b.process(ctx, in)
	}
}

func (b *Bot) shutdown() {
	b.mu.Lock()
	for _, queue := range b.queues {
		close(queue)
	}
	b.queues = make(map[string]chan inbound)
	b.mu.Unlock()
	b.wg.Wait()
}

// process は一つの入力をエンジンに渡し、返ってきた描画指示を送信します。
// ストア起因の失敗はエンジンが利用者向けの描画に変換済みなので、ここでは
// ログに残すだけでプロセスは続行します。
func (b *Bot) process(ctx context.Context, in inbound) {
	if in.callbackID != "" {
		if _, err := b.api.Request(tgbotapi.NewCallback(in.callbackID, "")); err != nil {
			log.Printf("telegram: answer callback for chat %d: %v", in.chatID, err)
		}
	}

	render, err := b.engine.Handle(ctx, in.sender, in.event)
	if err != nil {
		log.Printf("telegram: chat %d: %v", in.chatID, err)
	}

	if _, err := b.api.Send(messageFor(in.chatID, in.lastMessageID, render)); err != nil {
		log.Printf("telegram: send to chat %d: %v", in.chatID, err)
	}
}
