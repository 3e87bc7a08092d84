package tesseract

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"receipt-ocr/api/internal/ocr"
)

// ensureTesseractAvailable skips the test when the tesseract binary is not
// reachable.
func ensureTesseractAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}
}

func TestNewVerifiesLanguages(t *testing.T) {
	ensureTesseractAvailable(t)
	if _, err := New("xx-no-such-language"); err == nil {
		t.Fatal("expected error for unknown language")
	}
}

func TestDetectText(t *testing.T) {
	ensureTesseractAvailable(t)
	eng, err := New("eng")
	if err != nil {
		t.Skipf("tesseract eng data not installed: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 200, 80))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(10, 50),
	}
	target := "Total 500"
	d.DrawString(target)

	path := filepath.Join(t.TempDir(), "receipt.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode image: %v", err)
	}
	f.Close()

	raw, err := eng.DetectText(context.Background(), path)
	if err != nil {
		t.Fatalf("DetectText() error = %v", err)
	}
	text := ocr.ExtractText(eng.Shape(), raw)
	normalized := strings.Join(strings.Fields(text), " ")
	if !strings.Contains(normalized, "500") {
		t.Fatalf("recognized %q, want it to contain %q", normalized, "500")
	}
}

func TestDetectTextMissingFile(t *testing.T) {
	ensureTesseractAvailable(t)
	eng, err := New("eng")
	if err != nil {
		t.Skipf("tesseract eng data not installed: %v", err)
	}
	if _, err := eng.DetectText(context.Background(), filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Fatal("expected error for missing image file")
	}
}
