package compression

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{name: "frame.rgba", want: FormatNone},
		{name: "frame.rgba.gz", want: FormatGzip},
		{name: "FRAME.RGBA.XZ", want: FormatXz},
		{name: "frame.rgba.bz2", want: FormatBzip2},
		{name: "frame.zip", want: FormatNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.name); got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestTrimExt(t *testing.T) {
	if got := TrimExt("a.rgba.xz"); got != "a.rgba" {
		t.Errorf("TrimExt() = %q, want a.rgba", got)
	}
	if got := TrimExt("a.rgba"); got != "a.rgba" {
		t.Errorf("TrimExt() = %q, want a.rgba", got)
	}
}

func TestNewReader(t *testing.T) {
	payload := []byte(strings.Repeat("pixels", 100))

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	if _, err := gw.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}

	var xzBuf bytes.Buffer
	xw, err := xz.NewWriter(&xzBuf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := xw.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := xw.Close(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		data   []byte
		format Format
	}{
		{name: "plain", data: payload, format: FormatNone},
		{name: "gzip", data: gz.Bytes(), format: FormatGzip},
		{name: "xz", data: xzBuf.Bytes(), format: FormatXz},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := NewReader(bytes.NewReader(tt.data), tt.format)
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}
			defer rc.Close()
			got, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("decompressed %d bytes, want %d matching bytes", len(got), len(payload))
			}
		})
	}
}

func TestNewReaderErrors(t *testing.T) {
	if _, err := NewReader(strings.NewReader("not gzip"), FormatGzip); err == nil {
		t.Error("NewReader() should reject a corrupt gzip header")
	}
	if _, err := NewReader(strings.NewReader("not xz"), FormatXz); err == nil {
		t.Error("NewReader() should reject a corrupt xz header")
	}
	if _, err := NewReader(strings.NewReader(""), Format("lz4")); err == nil {
		t.Error("NewReader() should reject an unknown format")
	}
}
