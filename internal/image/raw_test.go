package image

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
)

func TestIsRawPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "frame.rgba", want: true},
		{path: "FRAME.RGBA.XZ", want: true},
		{path: "frame.png", want: false},
		{path: "frame.rgba.gz", want: true},
		{path: "frame.rgba.bz2", want: true},
		{path: "frame.xz", want: false},
		{path: "frame.rgba.zip", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsRawPath(tt.path); got != tt.want {
				t.Errorf("IsRawPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestReadRaw(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		width   int
		wantLen int
		wantErr bool
	}{
		{name: "two pixels", data: make([]byte, 8), width: 0, wantLen: 2},
		{name: "whole rows", data: make([]byte, 24), width: 3, wantLen: 6},
		{name: "empty", data: nil, width: 0, wantLen: 0},
		{name: "partial pixel", data: make([]byte, 7), width: 0, wantErr: true},
		{name: "partial row", data: make([]byte, 20), width: 2, wantErr: true},
		{name: "negative width", data: make([]byte, 4), width: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, err := ReadRaw(bytes.NewReader(tt.data), tt.width)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadRaw() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && px.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", px.Len(), tt.wantLen)
			}
		})
	}
}

func TestLoadRawCompressed(t *testing.T) {
	raw := []byte{
		255, 0, 0, 255,
		0, 255, 0, 255,
		0, 0, 255, 128,
		9, 9, 9, 0,
	}

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz.NewWriter() error = %v", err)
	}
	if _, err := w.Write(raw); err != nil {
		t.Fatalf("xz write error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("xz close error = %v", err)
	}

	dir := t.TempDir()
	compressed := filepath.Join(dir, "frame.rgba.xz")
	plain := filepath.Join(dir, "frame.rgba")
	if err := os.WriteFile(compressed, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(plain, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{compressed, plain} {
		px, err := LoadRaw(path, 2)
		if err != nil {
			t.Fatalf("LoadRaw(%s) error = %v", filepath.Base(path), err)
		}
		if !bytes.Equal(px, raw) {
			t.Errorf("LoadRaw(%s) = %v, want %v", filepath.Base(path), []byte(px), raw)
		}
	}

	if _, err := LoadRaw(filepath.Join(dir, "missing.rgba"), 0); err == nil {
		t.Error("LoadRaw() on a missing file should fail")
	}
}

func TestRawImage(t *testing.T) {
	px, err := ReadRaw(bytes.NewReader(make([]byte, 4*6)), 0)
	if err != nil {
		t.Fatal(err)
	}

	img, err := RawImage(px, 3)
	if err != nil {
		t.Fatalf("RawImage() error = %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", img.Bounds())
	}

	if _, err := RawImage(px, 4); err == nil {
		t.Error("RawImage() with a width that does not divide the pixel count should fail")
	}
	if _, err := RawImage(px, 0); err == nil {
		t.Error("RawImage() with zero width should fail")
	}
}
