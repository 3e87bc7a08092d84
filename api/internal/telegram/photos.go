package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"receipt-ocr/api/internal/raster"
	"receipt-ocr/api/internal/store"
	"receipt-ocr/api/internal/util"
)

// cacheTTL bounds how long a stored recognition answers for a repeated photo.
const cacheTTL = 30 * 24 * time.Hour

func (r *Router) acceptPhoto(msg tgbotapi.Message) {
	cid := msg.Chat.ID
	ph := msg.Photo[len(msg.Photo)-1]
	file, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: ph.FileID})
	if err != nil {
		r.sendError(cid, err)
		return
	}
	url := fmt.Sprintf(r.fileEndpoint, r.Bot.Token, file.FilePath)
	imgBytes, err := r.download(url)
	if err != nil {
		r.sendError(cid, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	// The same receipt sent twice answers from the store without touching
	// the engines.
	hash := util.SHA256Hex(imgBytes)
	if r.Repo != nil {
		if row, err := r.Repo.LastByHash(ctx, hash, cacheTTL); err == nil {
			r.send(cid, row.Text)
			return
		}
	}

	frame, err := raster.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		r.sendError(cid, err)
		return
	}

	out := r.Svc.Submit(ctx, frame)
	if out.Text != "" {
		r.send(cid, out.Text)
	} else {
		r.send(cid, "Не удалось распознать текст. Диагностика:\n\n"+out.Trace)
	}

	if r.Repo != nil && out.Text != "" {
		if _, err := r.Repo.Insert(ctx, &store.RecognitionRow{
			ChatID:    cid,
			ImageHash: hash,
			Engine:    out.Engine,
			Text:      out.Text,
		}); err != nil {
			log.Printf("store recognition: %v", err)
		}
	}
}

func (r *Router) download(url string) ([]byte, error) {
	resp, err := r.httpc.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("download photo: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
