package handle

import (
	"encoding/json"
	"net/http"

	"receipt-ocr/api/internal/ocr"
)

type Handle struct {
	svc *ocr.Service
}

func New(svc *ocr.Service) *Handle {
	return &Handle{
		svc: svc,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
