// Package ocr contains the recognition core: the engine contract, the
// probe-once registry, the fallback recognizer and the defensive result
// extractors.
package ocr

import "context"

// Shape identifies the structure of an engine's raw detection result.
type Shape int

const (
	// ShapeNested is pages -> items -> (region, (text, confidence)).
	ShapeNested Shape = iota
	// ShapeFlat is items -> (region, text, confidence).
	ShapeFlat
)

// Engine is an external recognition capability: constructed once at probe
// time, then called once per request with a path to the prepared image.
// The raw result stays engine-shaped; the extractors flatten it.
type Engine interface {
	Name() string
	Shape() Shape
	DetectText(ctx context.Context, imagePath string) (any, error)
}
