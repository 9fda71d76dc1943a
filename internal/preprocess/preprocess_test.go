package preprocess

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"
)

// rectImage draws a dark rectangle rotated by deg degrees on a white canvas.
func rectImage(w, h int, deg float64) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = 255
	}
	cx, cy := float64(w)/2, float64(h)/2
	sin, cos := math.Sincos(deg * math.Pi / 180)
	hw, hh := float64(w)*0.35, float64(h)*0.15
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			rx := dx*cos + dy*sin
			ry := -dx*sin + dy*cos
			if math.Abs(rx) <= hw && math.Abs(ry) <= hh {
				g.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return g
}

func TestEstimateSkewStraight(t *testing.T) {
	p := New(Config{}, nil)
	img := rectImage(240, 140, 0)
	if got := p.EstimateSkew(img); math.Abs(got) > 0.5 {
		t.Fatalf("EstimateSkew on straight page = %.3f, want ~0", got)
	}
}

func TestEstimateSkewRotated(t *testing.T) {
	tests := []struct {
		deg  float64
		want float64
	}{
		{6, -6},
		{-6, 6},
		{3, -3},
	}
	p := New(Config{SampleStride: 1}, nil)
	for _, tc := range tests {
		img := rectImage(240, 140, tc.deg)
		got := p.EstimateSkew(img)
		if math.Abs(got-tc.want) > 1.5 {
			t.Errorf("EstimateSkew(rect rotated %.1f°) = %.3f, want ~%.1f", tc.deg, got, tc.want)
		}
	}
}

func TestNormalizeDeadbandSkipsRotation(t *testing.T) {
	p := New(Config{}, nil)
	img := rectImage(240, 140, 0)

	got := p.Normalize(img)

	// Output must differ from the input only by the contrast step.
	want := image.NewGray(img.Bounds())
	for i, v := range img.Pix {
		nv := float64(v) * 1.6
		if nv > 255 {
			nv = 255
		}
		want.Pix[i] = uint8(nv)
	}
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Fatal("Normalize rotated a page inside the deadband")
	}
}

func TestNormalizeCorrectsSkew(t *testing.T) {
	p := New(Config{SampleStride: 1}, nil)
	img := rectImage(240, 140, 6)

	out := p.Normalize(img)

	if residual := p.EstimateSkew(out); math.Abs(residual) > 1.0 {
		t.Fatalf("residual skew after Normalize = %.3f, want ~0", residual)
	}
}

func TestNormalizeDegeneratePage(t *testing.T) {
	p := New(Config{}, nil)
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	out := p.Normalize(img)

	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds changed: %v != %v", out.Bounds(), img.Bounds())
	}
	for i, v := range out.Pix {
		if v != 255 {
			t.Fatalf("pixel %d changed on an empty page: %d", i, v)
		}
	}
}

func TestGrayscaleRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	src.Set(3, 3, color.RGBA{A: 255})

	g := Grayscale(src)
	if g.GrayAt(3, 3).Y != 0 {
		t.Errorf("black pixel lost: %d", g.GrayAt(3, 3).Y)
	}
	if g.GrayAt(0, 0).Y != 255 {
		t.Errorf("white pixel lost: %d", g.GrayAt(0, 0).Y)
	}
}
