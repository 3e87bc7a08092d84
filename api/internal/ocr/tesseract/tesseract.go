// Package tesseract runs the local Tesseract library through gosseract.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"receipt-ocr/api/internal/ocr"
)

const Name = "tesseract"

// Engine is the local recognition engine. A gosseract client is not safe for
// concurrent use, so construction only verifies the installation and language
// data; a fresh client is opened per call.
type Engine struct {
	langs []string
}

// New verifies the Tesseract installation by running one recognition over a
// tiny blank image with the requested languages. Missing library data or
// language packs surface here, once, instead of on every request.
func New(langs ...string) (*Engine, error) {
	if len(langs) == 0 {
		langs = []string{"eng"}
	}
	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage(langs...); err != nil {
		return nil, fmt.Errorf("tesseract: set languages %v: %w", langs, err)
	}
	if err := client.SetImageFromBytes(blankPNG()); err != nil {
		return nil, fmt.Errorf("tesseract: set probe image: %w", err)
	}
	if _, err := client.Text(); err != nil {
		return nil, fmt.Errorf("tesseract: probe recognition with languages %v: %w", langs, err)
	}
	return &Engine{langs: langs}, nil
}

func (e *Engine) Name() string { return Name }

func (e *Engine) Shape() ocr.Shape { return ocr.ShapeNested }

// DetectText recognizes the image at path and returns a single page of
// (region, (text, confidence)) line items.
func (e *Engine) DetectText(ctx context.Context, imagePath string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage(e.langs...); err != nil {
		return nil, fmt.Errorf("set languages: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("detect text: %w", err)
	}
	items := make([]any, 0, len(boxes))
	for _, b := range boxes {
		region := []any{b.Box.Min.X, b.Box.Min.Y, b.Box.Max.X, b.Box.Max.Y}
		text := strings.TrimRight(b.Word, "\n")
		items = append(items, []any{region, []any{text, b.Confidence / 100}})
	}
	return []any{items}, nil
}

// blankPNG renders the small white probe image used by New.
func blankPNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
