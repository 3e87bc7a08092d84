package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "TESSERACT_LANGS", "GEMINI_API_KEY", "GEMINI_MODEL",
		"OPENROUTER_API_KEY", "OPENROUTER_MODEL", "TELEGRAM_BOT_TOKEN", "DATABASE_URL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8000" {
		t.Fatalf("Port = %q, want 8000", cfg.Port)
	}
	if !reflect.DeepEqual(cfg.TesseractLangs, []string{"rus", "eng"}) {
		t.Fatalf("TesseractLangs = %v", cfg.TesseractLangs)
	}
	if cfg.GeminiAPIKey != "" || cfg.OpenRouterAPIKey != "" {
		t.Fatal("keys should default to empty")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TESSERACT_LANGS", " eng , deu ,")
	cfg := Load()
	if cfg.Port != "9000" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if !reflect.DeepEqual(cfg.TesseractLangs, []string{"eng", "deu"}) {
		t.Fatalf("TesseractLangs = %v", cfg.TesseractLangs)
	}
}
