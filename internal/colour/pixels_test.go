package colour

import (
	"image"
	"image/color"
	"reflect"
	"testing"
)

func TestPixelsFromImage(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	nrgba.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	nrgba.SetNRGBA(1, 0, color.NRGBA{R: 4, G: 5, B: 6, A: 128})
	nrgba.SetNRGBA(0, 1, color.NRGBA{R: 7, G: 8, B: 9, A: 255})
	nrgba.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 11, B: 12, A: 0})

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 1))
	rgba.SetRGBA(0, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	rgba.SetRGBA(1, 0, color.RGBA{R: 0, G: 0, B: 0, A: 255})

	tests := []struct {
		name string
		img  image.Image
		want Pixels
	}{
		{
			name: "packed nrgba",
			img:  nrgba,
			want: Pixels{1, 2, 3, 255, 4, 5, 6, 128, 7, 8, 9, 255, 10, 11, 12, 0},
		},
		{
			name: "nrgba sub-image",
			img:  nrgba.SubImage(image.Rect(1, 0, 2, 2)),
			want: Pixels{4, 5, 6, 128, 10, 11, 12, 0},
		},
		{
			name: "opaque rgba",
			img:  rgba,
			want: Pixels{200, 100, 50, 255, 0, 0, 0, 255},
		},
		{
			name: "empty bounds",
			img:  image.NewNRGBA(image.Rectangle{}),
			want: Pixels{},
		},
		{
			name: "nil image",
			img:  nil,
			want: Pixels{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PixelsFromImage(tt.img)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PixelsFromImage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPixelsAccessors(t *testing.T) {
	px := Pixels{1, 2, 3, 4, 5, 6, 7, 8, 9}

	if got := px.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2 (partial pixel ignored)", got)
	}
	if got, want := px.At(1), (RGBA{R: 5, G: 6, B: 7, A: 8}); got != want {
		t.Errorf("At(1) = %+v, want %+v", got, want)
	}
	if got, want := px.Key(0), KeyOf(1, 2, 3); got != want {
		t.Errorf("Key(0) = %#x, want %#x", uint32(got), uint32(want))
	}
}
