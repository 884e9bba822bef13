package image

import (
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "red.png")
	writePNG(t, good, 3, 2, color.NRGBA{R: 255, A: 255})

	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "valid png", path: good, wantErr: false},
		{name: "empty path", path: "", wantErr: true},
		{name: "missing file", path: filepath.Join(dir, "missing.png"), wantErr: true},
		{name: "directory", path: dir, wantErr: true},
		{name: "undecodable", path: bad, wantErr: true},
	}

	loader := NewFileLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := loader.Load(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && img.Bounds().Dx() != 3 {
				t.Errorf("width = %d, want 3", img.Bounds().Dx())
			}
		})
	}
}

func TestScanDirectoryForImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 1, 1, color.White)
	if err := os.WriteFile(filepath.Join(dir, "b.rgba"), make([]byte, 8), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ScanDirectoryForImages(dir)
	if err != nil {
		t.Fatalf("ScanDirectoryForImages() error = %v", err)
	}
	want := []string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.rgba")}
	slices.Sort(got)
	if !slices.Equal(got, want) {
		t.Errorf("ScanDirectoryForImages() = %v, want %v", got, want)
	}

	if _, err := ScanDirectoryForImages(t.TempDir()); err == nil {
		t.Error("ScanDirectoryForImages() on an empty directory should fail")
	}
}

func TestResolveImagePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "only.png")
	writePNG(t, file, 1, 1, color.Black)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "file", path: file, want: file},
		{name: "directory with one image", path: dir, want: file},
		{name: "url", path: "https://example.com/a.png", want: "https://example.com/a.png"},
		{name: "missing", path: filepath.Join(dir, "nope"), wantErr: true},
		{name: "empty", path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveImagePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveImagePath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveImagePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectRandomImage(t *testing.T) {
	paths := []string{"a.png", "b.png", "c.png"}
	for i := 0; i < 20; i++ {
		got, err := SelectRandomImage(paths)
		if err != nil {
			t.Fatalf("SelectRandomImage() error = %v", err)
		}
		if !slices.Contains(paths, got) {
			t.Fatalf("SelectRandomImage() = %q, not in input", got)
		}
	}

	if _, err := SelectRandomImage(nil); err == nil {
		t.Error("SelectRandomImage(nil) should fail")
	}
}

func TestSmartLoaderURL(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "served.png")
	writePNG(t, src, 4, 4, color.NRGBA{G: 200, A: 255})
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	t.Run("private address rejected", func(t *testing.T) {
		loader := NewSmartLoader(SmartLoaderOptions{})
		if _, err := loader.Load(srv.URL + "/img.png"); err == nil {
			t.Error("Load() should reject a loopback URL unless AllowPrivate is set")
		}
	})

	t.Run("direct fetch", func(t *testing.T) {
		loader := NewSmartLoader(SmartLoaderOptions{AllowPrivate: true})
		img, err := loader.Load(srv.URL + "/img.png")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if img.Bounds().Dx() != 4 {
			t.Errorf("width = %d, want 4", img.Bounds().Dx())
		}
	})

	t.Run("cached fetch", func(t *testing.T) {
		cacheDir := filepath.Join(dir, "cache")
		loader := NewSmartLoader(SmartLoaderOptions{AllowPrivate: true, Cache: true, CacheDir: cacheDir})
		if _, err := loader.Load(srv.URL + "/img.png"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		entries, err := os.ReadDir(cacheDir)
		if err != nil {
			t.Fatalf("cache dir not created: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("cache holds %d files, want 1", len(entries))
		}
	})
}
