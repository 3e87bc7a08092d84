package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	TesseractLangs []string

	GeminiAPIKey string
	GeminiModel  string

	OpenRouterAPIKey string
	OpenRouterModel  string

	TelegramBotToken string
	DatabaseURL      string
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// loadDotEnv loads a .env file from the working directory or next to the
// executable, if one exists. A missing file is not an error.
func loadDotEnv() {
	paths := []string{".env"}
	if execPath, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(execPath), ".env"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			godotenv.Load(p)
			return
		}
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Load reads configuration from the environment. No key is required for
// startup: an engine whose credentials are missing simply probes unavailable.
func Load() *Config {
	loadDotEnv()
	return &Config{
		Port: getEnv("PORT", "8000"),

		TesseractLangs: splitCSV(getEnv("TESSERACT_LANGS", "rus,eng")),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:  getEnv("OPENROUTER_MODEL", "google/gemini-flash-1.5"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
	}
}
