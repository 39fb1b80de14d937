package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	repo "github.com/ogurasousui/shift-checkin-bot/internal/adapters/repository/postgres"
	"github.com/ogurasousui/shift-checkin-bot/internal/adapters/telegram"
	"github.com/ogurasousui/shift-checkin-bot/internal/core/checkin"
	"github.com/ogurasousui/shift-checkin-bot/internal/core/conversation"
	"github.com/ogurasousui/shift-checkin-bot/internal/core/employee"
	"github.com/ogurasousui/shift-checkin-bot/internal/platform/config"
	pg "github.com/ogurasousui/shift-checkin-bot/internal/platform/db/postgres"
)

const sweepInterval = 5 * time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using process environment: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)
	employeeSvc := employee.NewService(repo.NewEmployeeRepository(dbPool), nil, txManager)
	checkinSvc := checkin.NewService(repo.NewCheckinRepository(dbPool), nil)

	sessions := conversation.NewMemoryStore(cfg.Session.IdleTimeout, nil)
	engine := conversation.NewEngine(sessions, employeeSvc, checkinSvc, nil)

	bot, err := telegram.New(cfg.Telegram.Token, cfg.Telegram.PollTimeoutSec, engine)
	if err != nil {
		log.Fatalf("failed to connect to Bot API: %v", err)
	}

	go sweepSessions(ctx, sessions)

	log.Printf("bot @%s is polling for updates", bot.Username())

	if err := bot.Run(ctx); err != nil {
		log.Fatalf("bot stopped with error: %v", err)
	}
}

// sweepSessions は放棄された会話セッションを定期的に回収します。
func sweepSessions(ctx context.Context, sessions *conversation.MemoryStore) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := sessions.Sweep(); removed > 0 {
				log.Printf("swept %d abandoned sessions", removed)
			}
		}
	}
}
