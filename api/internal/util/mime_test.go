package util

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestSniffMimeHTTP(t *testing.T) {
	pngHeader := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0}
	if got := SniffMimeHTTP(pngHeader); got != "image/png" {
		t.Fatalf("SniffMimeHTTP(png) = %q", got)
	}
	if got := SniffMimeHTTP([]byte{0xFF, 0xD8, 0xFF}); got != "image/jpeg" {
		t.Fatalf("SniffMimeHTTP(jpeg) = %q", got)
	}
	if got := SniffMimeHTTP([]byte("plain")); got != "application/octet-stream" {
		t.Fatalf("SniffMimeHTTP(plain) = %q", got)
	}
}

func TestDecodeBase64MaybeDataURL(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	b64 := base64.StdEncoding.EncodeToString(payload)

	got, mime, err := DecodeBase64MaybeDataURL(b64)
	if err != nil || !bytes.Equal(got, payload) || mime != "" {
		t.Fatalf("plain base64: got %v mime %q err %v", got, mime, err)
	}

	got, mime, err = DecodeBase64MaybeDataURL("data:image/png;base64," + b64)
	if err != nil || !bytes.Equal(got, payload) {
		t.Fatalf("data url: got %v err %v", got, err)
	}
	if mime != "image/png" {
		t.Fatalf("mime = %q, want image/png", mime)
	}

	if _, _, err := DecodeBase64MaybeDataURL("%%%"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
}

func TestSHA256Hex(t *testing.T) {
	if got := SHA256Hex([]byte("")); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Fatalf("SHA256Hex(\"\") = %q", got)
	}
}
