package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"receipt-ocr/api/internal/config"
	"receipt-ocr/api/internal/ocr"
	"receipt-ocr/api/internal/ocr/gemini"
	"receipt-ocr/api/internal/ocr/openrouter"
	"receipt-ocr/api/internal/ocr/tesseract"
	"receipt-ocr/api/internal/store"
	"receipt-ocr/api/internal/telegram"
)

func main() {
	cfg := config.Load()
	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is empty")
	}

	// --- Postgres (optional audit log) ---
	var repo telegram.RecognitionLog
	if dsn := cfg.DatabaseURL; dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("sql.Open: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(1 * time.Hour)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			cancel()
			log.Fatalf("db.Ping: %v", err)
		}
		cancel()
		repo = store.NewRecognitionRepo(db)
		log.Printf("db connected")
	}

	// --- Telegram bot ---
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal(err)
	}
	bot.Debug = false
	log.Printf("authorized on account %s", bot.Self.UserName)

	reg := probeEngines(cfg)
	for _, d := range reg.Descriptors() {
		if d.Available {
			log.Printf("engine %s: available", d.Name)
		} else {
			log.Printf("engine %s: unavailable (%s)", d.Name, d.InitError)
		}
	}

	router := telegram.NewRouter(bot, ocr.NewService(reg), repo)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	for upd := range bot.GetUpdatesChan(u) {
		go router.HandleUpdate(upd)
	}
}

// probeEngines builds the process-wide registry once. The priority order is
// fixed: the local engine first, then the remote fallbacks.
func probeEngines(cfg *config.Config) *ocr.Registry {
	ctx := context.Background()
	return ocr.Probe(
		ocr.Candidate{Name: tesseract.Name, Construct: func() (ocr.Engine, error) {
			return tesseract.New(cfg.TesseractLangs...)
		}},
		ocr.Candidate{Name: gemini.Name, Construct: func() (ocr.Engine, error) {
			return gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		}},
		ocr.Candidate{Name: openrouter.Name, Construct: func() (ocr.Engine, error) {
			return openrouter.New(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
		}},
	)
}
