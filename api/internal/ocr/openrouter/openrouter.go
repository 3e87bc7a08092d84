// Package openrouter is the lowest-priority remote engine: an OpenRouter
// vision model called through the chat-completions API.
package openrouter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"receipt-ocr/api/internal/ocr"
	"receipt-ocr/api/internal/util"
)

const Name = "openrouter"

const apiURL = "https://openrouter.ai/api/v1/chat/completions"

const prompt = `You receive a photo of a printed receipt. Recognize every text line on it.
Return STRICT JSON: an array of detections, one per recognized line, each detection is
[[x1, y1, x2, y2], "line text", confidence]
in reading order. No comments, no markdown, nothing outside the JSON array.`

type Engine struct {
	apiKey string
	model  string
	httpc  *http.Client
}

func New(apiKey, model string) (*Engine, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("OPENROUTER_API_KEY is empty")
	}
	if strings.TrimSpace(model) == "" {
		model = "google/gemini-flash-1.5"
	}
	return &Engine{
		apiKey: apiKey,
		model:  model,
		httpc:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (e *Engine) Name() string { return Name }

func (e *Engine) Shape() ocr.Shape { return ocr.ShapeFlat }

func (e *Engine) DetectText(ctx context.Context, imagePath string) (any, error) {
	img, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, err
	}
	b64 := base64.StdEncoding.EncodeToString(img)
	dataURL := util.MakeDataURL(util.SniffMimeHTTP(img), b64)

	body := map[string]any{
		"model": e.model,
		"messages": []any{
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": prompt},
					map[string]any{"type": "image_url", "image_url": map[string]any{"url": dataURL}},
				},
			},
		},
		"temperature": 0,
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openrouter %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	if len(raw.Choices) == 0 {
		return nil, fmt.Errorf("openrouter: empty response")
	}

	out := util.StripCodeFences(raw.Choices[0].Message.Content)
	if out == "" {
		return []any{}, nil
	}
	var detections any
	if err := json.Unmarshal([]byte(out), &detections); err != nil {
		// модель прислала текст вместо JSON — мягкий фоллбэк на строки
		return ocr.FlatItemsFromText(out), nil
	}
	return detections, nil
}
