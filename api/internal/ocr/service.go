package ocr

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"

	"receipt-ocr/api/internal/raster"
)

// Service is the single inbound operation exposed to presentation layers.
type Service struct {
	Recognizer *Recognizer
}

func NewService(reg *Registry) *Service {
	return &Service{Recognizer: &Recognizer{Registry: reg}}
}

// Submit runs one recognition request. Nothing escapes it: any unanticipated
// panic in the pipeline is converted into an empty text with the full failure
// detail in the trace.
func (s *Service) Submit(ctx context.Context, frame *raster.Frame) (out Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("submit receipt: recovered panic: %v", rec)
			out = Outcome{Trace: fmt.Sprintf("Внутренняя ошибка: %v\n%s", rec, debug.Stack())}
		}
	}()
	return s.Recognizer.Recognize(ctx, frame)
}

// SubmitReceipt is the two-string form shown to a human operator: recognized
// text and the diagnostic trace. Empty text always comes with a non-empty
// trace explaining why.
func (s *Service) SubmitReceipt(ctx context.Context, frame *raster.Frame) (text, trace string) {
	out := s.Submit(ctx, frame)
	return out.Text, out.Trace
}
