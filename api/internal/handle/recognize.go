package handle

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"receipt-ocr/api/internal/raster"
	"receipt-ocr/api/internal/util"
)

type RecognizeRequest struct {
	ImageB64 string `json:"image_b64"`
}

type RecognizeResponse struct {
	RecognizedText  string `json:"recognized_text"`
	DiagnosticTrace string `json:"diagnostic_trace"`
}

// Recognize handles POST /v1/receipt/recognize. A request without an image is
// still answered 200: the service explains the problem in the trace.
func (h *Handle) Recognize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	var req RecognizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}

	deadline := 180 * time.Second
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	} else if ts := r.URL.Query().Get("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	}
	ctx, cancel := context.WithTimeout(r.Context(), deadline)
	defer cancel()

	var frame *raster.Frame
	if strings.TrimSpace(req.ImageB64) != "" {
		img, _, err := util.DecodeBase64MaybeDataURL(req.ImageB64)
		if err != nil || len(img) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad image_b64"})
			return
		}
		frame, err = raster.Decode(bytes.NewReader(img))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad image: " + err.Error()})
			return
		}
	}

	text, trace := h.svc.SubmitReceipt(ctx, frame)
	writeJSON(w, http.StatusOK, RecognizeResponse{
		RecognizedText:  text,
		DiagnosticTrace: trace,
	})
}
