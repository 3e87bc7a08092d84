// Package gemini is the remote vision engine backed by the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"receipt-ocr/api/internal/ocr"
	"receipt-ocr/api/internal/util"
)

const Name = "gemini"

const prompt = `You receive a photo of a printed receipt. Recognize every text line on it.
Return STRICT JSON: an array of detections, one per recognized line, each detection is
[[x1, y1, x2, y2], "line text", confidence]
in reading order. No comments, no markdown, nothing outside the JSON array.`

type Engine struct {
	client *genai.Client
	model  string
}

// New constructs the engine handle once; the client is reused for the process
// lifetime.
func New(ctx context.Context, apiKey, model string) (*Engine, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.5-flash"
	}
	return &Engine{client: cl, model: model}, nil
}

func (e *Engine) Name() string { return Name }

func (e *Engine) Shape() ocr.Shape { return ocr.ShapeFlat }

func (e *Engine) DetectText(ctx context.Context, imagePath string) (any, error) {
	img, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, err
	}

	m := e.client.GenerativeModel(e.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	resp, err := m.GenerateContent(ctx,
		genai.Text(prompt),
		&genai.Blob{MIMEType: util.SniffMimeHTTP(img), Data: img},
	)
	if err != nil {
		return nil, err
	}

	out := util.StripCodeFences(collectText(resp))
	if out == "" {
		return []any{}, nil
	}
	var raw any
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		// модель прислала текст вместо JSON — мягкий фоллбэк на строки
		return ocr.FlatItemsFromText(out), nil
	}
	return raw, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

func ptrFloat32(v float32) *float32 { return &v }
