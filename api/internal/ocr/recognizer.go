package ocr

import (
	"context"
	"os"

	"receipt-ocr/api/internal/raster"
)

// DefaultHints is appended to the trace when no engine could produce text.
// Static remediation text, not computed.
var DefaultHints = []string{
	"Рекомендации:",
	"1) Установите tesseract с языковыми данными (apt install tesseract-ocr tesseract-ocr-rus) или задайте GEMINI_API_KEY / OPENROUTER_API_KEY для удалённого движка.",
	"2) Проверьте, что сервис запущен в том же окружении, где установлены движки.",
	"3) Если движки доступны, но возвращают пустой текст, переснимите фото: резкий фокус, ровный свет, чек целиком в кадре.",
}

// Outcome is the result of one recognition request.
type Outcome struct {
	Text   string
	Engine string // engine whose call succeeded, empty otherwise
	Trace  string
}

// Recognizer tries engines in registry order and returns on the first
// successful call. Engine failures are non-fatal: they go into the trace and
// the next engine is tried. Engines run strictly sequentially; no timeout is
// imposed here, callers bound latency through ctx or externally.
type Recognizer struct {
	Registry *Registry
	TempDir  string   // empty means the system temp dir
	Hints    []string // nil means DefaultHints
}

func (r *Recognizer) Recognize(ctx context.Context, frame *raster.Frame) Outcome {
	tr := &Trace{}

	if frame == nil {
		tr.Add("Ошибка: изображение не загружено.")
		return Outcome{Trace: tr.String()}
	}

	canonical, err := raster.Normalize(frame)
	if err != nil {
		tr.Addf("Ошибка: не удалось привести изображение к каноническому виду: %v", err)
		return Outcome{Trace: tr.String()}
	}

	// At least one engine consumes a file path rather than in-memory pixels,
	// so the canonical image is persisted for the duration of the request.
	tmp, err := os.CreateTemp(r.TempDir, "receipt-*.png")
	if err != nil {
		tr.Addf("Ошибка: не удалось создать временный файл: %v", err)
		return Outcome{Trace: tr.String()}
	}
	path := tmp.Name()
	defer os.Remove(path)

	err = canonical.WritePNG(tmp)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		tr.Addf("Ошибка: не удалось записать временный файл: %v", err)
		return Outcome{Trace: tr.String()}
	}
	tr.Addf("Временный файл: %s", path)

	for _, d := range r.Registry.Descriptors() {
		if !d.Available {
			continue
		}
		tr.Addf("Пробуем %s...", d.Name)
		raw, err := d.Engine.DetectText(ctx, path)
		if err != nil {
			tr.Addf("Ошибка при запуске %s:", d.Name)
			tr.Add(err.Error())
			continue
		}
		tr.Addf("%s вернул результат.", d.Name)
		text := ExtractText(d.Engine.Shape(), raw)
		if text == "" {
			tr.Addf("%s вернул пустой текст.", d.Name)
		}
		// The first successful call wins, even when its text is empty.
		return Outcome{Text: text, Engine: d.Name, Trace: tr.String()}
	}

	tr.Add("Ни один движок не доступен, или все вернули ошибку.")
	for _, d := range r.Registry.Descriptors() {
		if d.Available {
			continue
		}
		tr.Addf("%s недоступен. Ошибка инициализации:", d.Name)
		if d.InitError != "" {
			tr.Add(d.InitError)
		} else {
			tr.Add("нет дополнительной информации")
		}
	}
	hints := r.Hints
	if hints == nil {
		hints = DefaultHints
	}
	tr.Add("")
	for _, h := range hints {
		tr.Add(h)
	}
	return Outcome{Trace: tr.String()}
}
