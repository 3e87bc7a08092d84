package handle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"receipt-ocr/api/internal/ocr"
)

type stubEngine struct {
	raw any
	err error
}

func (s *stubEngine) Name() string { return "stub" }
func (s *stubEngine) Shape() ocr.Shape { return ocr.ShapeFlat }
func (s *stubEngine) DetectText(ctx context.Context, imagePath string) (any, error) {
	return s.raw, s.err
}

func newTestHandle(eng ocr.Engine) *Handle {
	reg := ocr.NewRegistry(&ocr.Descriptor{Name: "stub", Available: true, Engine: eng})
	return New(ocr.NewService(reg))
}

func tinyPNGB64(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func postRecognize(t *testing.T, h *Handle, body string) (*httptest.ResponseRecorder, RecognizeResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/receipt/recognize", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Recognize(w, req)
	var out RecognizeResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("bad response json: %v", err)
		}
	}
	return w, out
}

func TestRecognizeEndpoint(t *testing.T) {
	h := newTestHandle(&stubEngine{raw: []any{
		[]any{nil, "Total 500"},
		[]any{nil, "Thank you"},
	}})
	body, _ := json.Marshal(RecognizeRequest{ImageB64: tinyPNGB64(t)})

	w, out := postRecognize(t, h, string(body))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if out.RecognizedText != "Total 500\nThank you" {
		t.Fatalf("recognized_text = %q", out.RecognizedText)
	}
	if out.DiagnosticTrace == "" {
		t.Fatal("diagnostic_trace is empty")
	}
}

func TestRecognizeEndpointDataURL(t *testing.T) {
	h := newTestHandle(&stubEngine{raw: []any{[]any{nil, "ok"}}})
	body, _ := json.Marshal(RecognizeRequest{ImageB64: "data:image/png;base64," + tinyPNGB64(t)})
	w, out := postRecognize(t, h, string(body))
	if w.Code != http.StatusOK || out.RecognizedText != "ok" {
		t.Fatalf("status = %d, text = %q", w.Code, out.RecognizedText)
	}
}

func TestRecognizeEndpointNoImage(t *testing.T) {
	h := newTestHandle(&stubEngine{})
	w, out := postRecognize(t, h, `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if out.RecognizedText != "" {
		t.Fatalf("recognized_text = %q, want empty", out.RecognizedText)
	}
	if !strings.Contains(out.DiagnosticTrace, "изображение не загружено") {
		t.Fatalf("diagnostic_trace = %q", out.DiagnosticTrace)
	}
}

func TestRecognizeEndpointBadBase64(t *testing.T) {
	h := newTestHandle(&stubEngine{})
	w, _ := postRecognize(t, h, `{"image_b64":"%%%not-base64%%%"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestRecognizeEndpointBadMethod(t *testing.T) {
	h := newTestHandle(&stubEngine{})
	req := httptest.NewRequest(http.MethodGet, "/v1/receipt/recognize", nil)
	w := httptest.NewRecorder()
	h.Recognize(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
}
