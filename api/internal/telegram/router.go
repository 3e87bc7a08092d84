package telegram

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"receipt-ocr/api/internal/ocr"
	"receipt-ocr/api/internal/store"
)

// RecognitionLog is the optional persistence behind the bot: an audit log of
// finished recognitions doubling as a dedup cache for repeated photos.
type RecognitionLog interface {
	Insert(ctx context.Context, row *store.RecognitionRow) (int64, error)
	LastByHash(ctx context.Context, imageHash string, maxAge time.Duration) (*store.RecognitionRow, error)
}

// Router is the thin Telegram presentation layer: one photo in, recognized
// text and (on failure) the diagnostic trace out.
type Router struct {
	Bot   *tgbotapi.BotAPI
	Svc   *ocr.Service
	Repo  RecognitionLog // nil disables the audit log and the cache
	httpc *http.Client

	fileEndpoint string
}

func NewRouter(bot *tgbotapi.BotAPI, svc *ocr.Service, repo RecognitionLog) *Router {
	return &Router{
		Bot:          bot,
		Svc:          svc,
		Repo:         repo,
		httpc:        &http.Client{Timeout: 60 * time.Second},
		fileEndpoint: tgbotapi.FileEndpoint,
	}
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := *upd.Message
	switch {
	case msg.IsCommand():
		r.handleCommand(msg)
	case len(msg.Photo) > 0:
		r.acceptPhoto(msg)
	default:
		r.send(msg.Chat.ID, "Отправьте фото чека одним изображением.")
	}
}

func (r *Router) handleCommand(msg tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		r.send(msg.Chat.ID, "Привет! Пришлите фото чека — я распознаю текст и верну его сообщением.")
	default:
		r.send(msg.Chat.ID, "Неизвестная команда. Просто пришлите фото чека.")
	}
}

func (r *Router) send(chatID int64, text string) {
	// Telegram caps message length at 4096
	for len(text) > 0 {
		chunk := text
		if len(chunk) > 4000 {
			cut := strings.LastIndex(chunk[:4000], "\n")
			if cut < 1 {
				cut = 4000
				// never split a multi-byte rune across messages
				for cut > 0 && !utf8.RuneStart(chunk[cut]) {
					cut--
				}
				if cut == 0 {
					cut = 4000
				}
			}
			chunk = chunk[:cut]
		}
		text = strings.TrimPrefix(text, chunk)
		if _, err := r.Bot.Send(tgbotapi.NewMessage(chatID, chunk)); err != nil {
			log.Printf("telegram send: %v", err)
			return
		}
	}
}

func (r *Router) sendError(chatID int64, err error) {
	r.send(chatID, "Ошибка: "+err.Error())
}
