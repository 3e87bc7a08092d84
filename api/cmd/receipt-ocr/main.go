package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"receipt-ocr/api/internal/config"
	"receipt-ocr/api/internal/handle"
	"receipt-ocr/api/internal/ocr"
	"receipt-ocr/api/internal/ocr/gemini"
	"receipt-ocr/api/internal/ocr/openrouter"
	"receipt-ocr/api/internal/ocr/tesseract"
)

func main() {
	cfg := config.Load()

	// Prefer platform PORT env var; fallback to cfg.Port; then to 8000
	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Port = p
	} else if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8000"
	}

	reg := probeEngines(cfg)
	for _, d := range reg.Descriptors() {
		if d.Available {
			log.Printf("engine %s: available", d.Name)
		} else {
			log.Printf("engine %s: unavailable (%s)", d.Name, d.InitError)
		}
	}
	svc := ocr.NewService(reg)
	h := handle.New(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/receipt/recognize", h.Recognize)

	addr := ":" + cfg.Port
	log.Printf("receipt-ocr listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
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
