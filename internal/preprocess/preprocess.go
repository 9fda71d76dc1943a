// Package preprocess normalizes a single page raster before OCR: grayscale
// conversion, skew correction from the minimum-area bounding rectangle of the
// text block, and a fixed contrast boost.
package preprocess

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Config holds the empirically-tuned knobs of the preprocessor. The defaults
// match the deployment corpus but are deliberately not hard-baked.
type Config struct {
	DeadbandDeg  float64 // skip rotation below this absolute angle; default 0.5
	Contrast     float64 // multiplicative grayscale boost; default 1.6
	Threshold    uint8   // gray levels strictly below this are foreground; default 128
	SampleStride int     // pixel sampling stride for skew estimation; default 2
}

type Preprocessor struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Preprocessor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DeadbandDeg <= 0 {
		cfg.DeadbandDeg = 0.5
	}
	if cfg.Contrast <= 0 {
		cfg.Contrast = 1.6
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = 128
	}
	if cfg.SampleStride <= 0 {
		cfg.SampleStride = 2
	}
	return &Preprocessor{cfg: cfg, logger: logger}
}

// Normalize returns a deskewed, contrast-boosted grayscale copy of src.
// Degenerate pages (no detectable text block) come back grayscale and
// unrotated; there is no error path.
func (p *Preprocessor) Normalize(src image.Image) *image.Gray {
	g := Grayscale(src)

	angle := p.EstimateSkew(g)
	if math.Abs(angle) > p.cfg.DeadbandDeg {
		p.logger.Debug("preprocess.deskew", "angle_deg", angle)
		g = rotate(g, angle)
	}

	return boostContrast(g, p.cfg.Contrast)
}

// EstimateSkew returns the correction angle, in degrees, that straightens the
// dominant text block of g. The raw minimum-area rectangle angle lies in
// [-90, 0); it is folded into (-45, 45] with the rule: raw < -45 yields
// -(90+raw), otherwise -raw. Returns 0 when no usable foreground exists.
func (p *Preprocessor) EstimateSkew(g *image.Gray) float64 {
	pts := p.foregroundPoints(g)
	if len(pts) < 16 {
		return 0
	}
	hull := convexHull(pts)
	if len(hull) < 3 {
		return 0
	}
	raw := minAreaAngle(hull)
	if raw < -45 {
		return -(90 + raw)
	}
	return -raw
}

func (p *Preprocessor) foregroundPoints(g *image.Gray) []point {
	b := g.Bounds()
	stride := p.cfg.SampleStride
	pts := make([]point, 0, (b.Dx()/stride)*(b.Dy()/stride)/8)
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		for x := b.Min.X; x < b.Max.X; x += stride {
			if g.GrayAt(x, y).Y < p.cfg.Threshold {
				pts = append(pts, point{float64(x), float64(y)})
			}
		}
	}
	return pts
}

// Grayscale converts any image to 8-bit grayscale.
func Grayscale(src image.Image) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(b)
	draw.Draw(out, b, src, b.Min, draw.Src)
	return out
}

// rotate rotates g about its center by deg degrees using Catmull-Rom (cubic)
// resampling. Samples falling outside the source replicate the nearest edge
// pixel, so no black wedges appear at the corners.
func rotate(g *image.Gray, deg float64) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(b)

	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	cx := float64(b.Min.X) + float64(b.Dx())/2
	cy := float64(b.Min.Y) + float64(b.Dy())/2

	// src-to-dst affine map: translate center to origin, rotate, translate back.
	m := f64.Aff3{
		cos, -sin, cx - cos*cx + sin*cy,
		sin, cos, cy - sin*cx - cos*cy,
	}

	pad := (b.Dx() + b.Dy()) / 2
	src := replicated{g: g, pad: pad}
	xdraw.CatmullRom.Transform(out, m, src, src.Bounds(), xdraw.Src, nil)
	return out
}

// replicated extends a grayscale image by clamping out-of-bounds reads to the
// nearest edge pixel.
type replicated struct {
	g   *image.Gray
	pad int
}

func (r replicated) ColorModel() color.Model { return r.g.ColorModel() }

func (r replicated) Bounds() image.Rectangle { return r.g.Bounds().Inset(-r.pad) }

func (r replicated) At(x, y int) color.Color {
	b := r.g.Bounds()
	if x < b.Min.X {
		x = b.Min.X
	} else if x >= b.Max.X {
		x = b.Max.X - 1
	}
	if y < b.Min.Y {
		y = b.Min.Y
	} else if y >= b.Max.Y {
		y = b.Max.Y - 1
	}
	return r.g.At(x, y)
}

func boostContrast(g *image.Gray, factor float64) *image.Gray {
	out := image.NewGray(g.Bounds())
	for i, v := range g.Pix {
		nv := float64(v) * factor
		if nv > 255 {
			nv = 255
		}
		out.Pix[i] = uint8(nv)
	}
	return out
}
