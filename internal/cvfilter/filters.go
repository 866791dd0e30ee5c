// OpenCV-backed implementations of the catalog filters
package cvfilter

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"instafilter/internal/filters"
)

// NewBackend returns the dispatch table for every catalog filter
func NewBackend() filters.Registry {
	return filters.Registry{
		filters.Crystallize:       func() filters.Filter { return NewCrystallize() },
		filters.Edges:             func() filters.Filter { return NewEdges() },
		filters.GaussianBlur:      func() filters.Filter { return NewGaussianBlur() },
		filters.Pixellate:         func() filters.Filter { return NewPixellate() },
		filters.SepiaTone:         func() filters.Filter { return NewSepiaTone() },
		filters.UnsharpMask:       func() filters.Filter { return NewUnsharpMask() },
		filters.Vignette:          func() filters.Filter { return NewVignette() },
		filters.ComicEffect:       func() filters.Filter { return NewComicEffect() },
		filters.PhotoEffectChrome: func() filters.Filter { return NewPhotoEffectChrome() },
		filters.ColorInvert:       func() filters.Filter { return NewColorInvert() },
	}
}

// noParams is embedded by filters that consume no parameters
type noParams struct{}

func (noParams) SetValue(filters.Parameter, float64) {}

// Crystallize fills Voronoi cells seeded on a jittered grid with their seed colour
type Crystallize struct {
	Radius float64
}

func NewCrystallize() *Crystallize {
	return &Crystallize{Radius: 20}
}

func (c *Crystallize) SetValue(p filters.Parameter, v float64) {
	if p == filters.Radius {
		c.Radius = v
	}
}

func (c *Crystallize) Apply(src image.Image) (image.Image, error) {
	return run(src, func(in gocv.Mat, out *gocv.Mat) error {
		cell := int(math.Round(c.Radius))
		if cell < 1 {
			in.CopyTo(out)
			return nil
		}

		rows, cols := in.Rows(), in.Cols()
		pix := bgrBytes(in)
		dst := make([]byte, len(pix))

		gridX := (cols + cell - 1) / cell
		gridY := (rows + cell - 1) / cell
		seeds := make([]image.Point, gridX*gridY)
		for gy := 0; gy < gridY; gy++ {
			for gx := 0; gx < gridX; gx++ {
				jx, jy := jitter(gx, gy, cell)
				seeds[gy*gridX+gx] = image.Pt(
					min(gx*cell+jx, cols-1),
					min(gy*cell+jy, rows-1),
				)
			}
		}

		for y := 0; y < rows; y++ {
			cy := y / cell
			for x := 0; x < cols; x++ {
				cx := x / cell
				best, bestDist := image.Point{}, math.MaxInt
				for ny := max(cy-1, 0); ny <= min(cy+1, gridY-1); ny++ {
					for nx := max(cx-1, 0); nx <= min(cx+1, gridX-1); nx++ {
						s := seeds[ny*gridX+nx]
						dx, dy := s.X-x, s.Y-y
						if d := dx*dx + dy*dy; d < bestDist {
							best, bestDist = s, d
						}
					}
				}
				from := (best.Y*cols + best.X) * 3
				to := (y*cols + x) * 3
				copy(dst[to:to+3], pix[from:from+3])
			}
		}

		return fromBGRBytes(rows, cols, dst, out)
	})
}

// jitter returns a deterministic offset inside a cell
func jitter(gx, gy, cell int) (int, int) {
	h := uint32(gx)*73856093 ^ uint32(gy)*19349663
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return int(h % uint32(cell)), int((h >> 16) % uint32(cell))
}

// Edges renders the Sobel gradient magnitude
type Edges struct {
	Intensity float64
}

func NewEdges() *Edges {
	return &Edges{Intensity: 1}
}

func (e *Edges) SetValue(p filters.Parameter, v float64) {
	if p == filters.Intensity {
		e.Intensity = v
	}
}

func (e *Edges) Apply(src image.Image) (image.Image, error) {
	return run(src, func(in gocv.Mat, out *gocv.Mat) error {
		gradX := gocv.NewMat()
		defer gradX.Close()
		gradY := gocv.NewMat()
		defer gradY.Close()
		absX := gocv.NewMat()
		defer absX.Close()
		absY := gocv.NewMat()
		defer absY.Close()

		gocv.Sobel(in, &gradX, gocv.MatTypeCV16S, 1, 0, 3, 1, 0, gocv.BorderDefault)
		gocv.Sobel(in, &gradY, gocv.MatTypeCV16S, 0, 1, 3, 1, 0, gocv.BorderDefault)
		gocv.ConvertScaleAbs(gradX, &absX, e.Intensity, 0)
		gocv.ConvertScaleAbs(gradY, &absY, e.Intensity, 0)
		gocv.AddWeighted(absX, 0.5, absY, 0.5, 0, out)
		return nil
	})
}

// GaussianBlur implements Gaussian blur filter
type GaussianBlur struct {
	Radius float64
}

func NewGaussianBlur() *GaussianBlur {
	return &GaussianBlur{Radius: 10}
}

func (g *GaussianBlur) SetValue(p filters.Parameter, v float64) {
	if p == filters.Radius {
		g.Radius = v
	}
}

func (g *GaussianBlur) Apply(src image.Image) (image.Image, error) {
	return run(src, func(in gocv.Mat, out *gocv.Mat) error {
		blur(in, out, g.Radius/3)
		return nil
	})
}

// blur applies a Gaussian with the given sigma; sigma <= 0 copies
func blur(in gocv.Mat, out *gocv.Mat, sigma float64) {
	if sigma <= 0 {
		in.CopyTo(out)
		return
	}
	gocv.GaussianBlur(in, out, image.Pt(0, 0), sigma, sigma, gocv.BorderDefault)
}

// Pixellate replaces square blocks with their average colour
type Pixellate struct {
	Scale float64
}

func NewPixellate() *Pixellate {
	return &Pixellate{Scale: 8}
}

func (px *Pixellate) SetValue(p filters.Parameter, v float64) {
	if p == filters.Scale {
		px.Scale = v
	}
}

func (px *Pixellate) Apply(src image.Image) (image.Image, error) {
	return run(src, func(in gocv.Mat, out *gocv.Mat) error {
		block := int(math.Round(px.Scale))
		if block <= 1 {
			in.CopyTo(out)
			return nil
		}

		cols, rows := in.Cols(), in.Rows()
		small := gocv.NewMat()
		defer small.Close()

		size := image.Pt(max(cols/block, 1), max(rows/block, 1))
		gocv.Resize(in, &small, size, 0, 0, gocv.InterpolationArea)
		gocv.Resize(small, out, image.Pt(cols, rows), 0, 0, gocv.InterpolationNearestNeighbor)
		return nil
	})
}

// SepiaTone blends a sepia colour matrix with the source
type SepiaTone struct {
	Intensity float64
}

func NewSepiaTone() *SepiaTone {
	return &SepiaTone{Intensity: 1}
}

func (s *SepiaTone) SetValue(p filters.Parameter, v float64) {
	if p == filters.Intensity {
		s.Intensity = v
	}
}

// sepiaKernel rows and columns are in BGR order
var sepiaKernel = [3][3]float32{
	{0.131, 0.534, 0.272},
	{0.168, 0.686, 0.349},
	{0.189, 0.769, 0.393},
}

func (s *SepiaTone) Apply(src image.Image) (image.Image, error) {
	return run(src, func(in gocv.Mat, out *gocv.Mat) error {
		kernel := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
		defer kernel.Close()
		for r := range sepiaKernel {
			for c, v := range sepiaKernel[r] {
				kernel.SetFloatAt(r, c, v)
			}
		}

		sepia := gocv.NewMat()
		defer sepia.Close()
		gocv.Transform(in, &sepia, kernel)

		amount := filters.Intensity.Clamp(s.Intensity)
		gocv.AddWeighted(in, 1-amount, sepia, amount, 0, out)
		return nil
	})
}

// UnsharpMask sharpens by adding back the difference from a blurred copy
type UnsharpMask struct {
	Intensity float64
	Radius    float64
}

func NewUnsharpMask() *UnsharpMask {
	return &UnsharpMask{Intensity: 0.5, Radius: 2.5}
}

func (u *UnsharpMask) SetValue(p filters.Parameter, v float64) {
	switch p {
	case filters.Intensity:
		u.Intensity = v
	case filters.Radius:
		u.Radius = v
	}
}

func (u *UnsharpMask) Apply(src image.Image) (image.Image, error) {
	return run(src, func(in gocv.Mat, out *gocv.Mat) error {
		if u.Radius <= 0 || u.Intensity <= 0 {
			in.CopyTo(out)
			return nil
		}

		blurred := gocv.NewMat()
		defer blurred.Close()
		blur(in, &blurred, u.Radius)
		gocv.AddWeighted(in, 1+u.Intensity, blurred, -u.Intensity, 0, out)
		return nil
	})
}

// Vignette darkens the image towards its corners
type Vignette struct {
	Intensity float64
	Radius    float64
}

func NewVignette() *Vignette {
	return &Vignette{Intensity: 0, Radius: 1}
}

func (vg *Vignette) SetValue(p filters.Parameter, v float64) {
	switch p {
	case filters.Intensity:
		vg.Intensity = v
	case filters.Radius:
		vg.Radius = v
	}
}

func (vg *Vignette) Apply(src image.Image) (image.Image, error) {
	return run(src, func(in gocv.Mat, out *gocv.Mat) error {
		rows, cols := in.Rows(), in.Cols()
		lo, hi := filters.Radius.Bounds()
		inner := (math.Max(lo, math.Min(vg.Radius, hi)) - lo) / (hi - lo)
		amount := filters.Intensity.Clamp(vg.Intensity)

		cx, cy := float64(cols)/2, float64(rows)/2
		halfDiag := math.Hypot(cx, cy)

		pix := bgrBytes(in)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / halfDiag
				factor := 1 - amount*smoothstep(inner, 1, d)
				i := (y*cols + x) * 3
				for c := 0; c < 3; c++ {
					pix[i+c] = uint8(math.Round(float64(pix[i+c]) * factor))
				}
			}
		}
		return fromBGRBytes(rows, cols, pix, out)
	})
}

func smoothstep(edge0, edge1, x float64) float64 {
	if edge1 <= edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := math.Max(0, math.Min(1, (x-edge0)/(edge1-edge0)))
	return t * t * (3 - 2*t)
}

// ComicEffect flattens colours and draws dark ink lines along edges
type ComicEffect struct {
	noParams
}

func NewComicEffect() *ComicEffect {
	return &ComicEffect{}
}

func (ComicEffect) Apply(src image.Image) (image.Image, error) {
	return run(src, func(in gocv.Mat, out *gocv.Mat) error {
		gray := gocv.NewMat()
		defer gray.Close()
		gocv.CvtColor(in, &gray, gocv.ColorBGRToGray)

		smooth := gocv.NewMat()
		defer smooth.Close()
		gocv.MedianBlur(gray, &smooth, 5)

		ink := gocv.NewMat()
		defer ink.Close()
		gocv.AdaptiveThreshold(smooth, &ink, 255, gocv.AdaptiveThresholdMean, gocv.ThresholdBinary, 9, 2)

		inkBGR := gocv.NewMat()
		defer inkBGR.Close()
		gocv.CvtColor(ink, &inkBGR, gocv.ColorGrayToBGR)

		flat := gocv.NewMat()
		defer flat.Close()
		gocv.BilateralFilter(in, &flat, 9, 75, 75)

		gocv.BitwiseAnd(flat, inkBGR, out)
		return nil
	})
}

// PhotoEffectChrome boosts saturation and contrast
type PhotoEffectChrome struct {
	noParams
}

func NewPhotoEffectChrome() *PhotoEffectChrome {
	return &PhotoEffectChrome{}
}

const (
	chromeSaturation = 1.3
	chromeContrast   = 1.15
)

func (PhotoEffectChrome) Apply(src image.Image) (image.Image, error) {
	return run(src, func(in gocv.Mat, out *gocv.Mat) error {
		hsv := gocv.NewMat()
		defer hsv.Close()
		gocv.CvtColor(in, &hsv, gocv.ColorBGRToHSV)

		channels := gocv.Split(hsv)
		defer func() {
			for _, ch := range channels {
				ch.Close()
			}
		}()

		saturated := gocv.NewMat()
		defer saturated.Close()
		channels[1].ConvertToWithParams(&saturated, gocv.MatTypeCV8U, chromeSaturation, 0)
		saturated.CopyTo(&channels[1])

		merged := gocv.NewMat()
		defer merged.Close()
		gocv.Merge(channels, &merged)

		vivid := gocv.NewMat()
		defer vivid.Close()
		gocv.CvtColor(merged, &vivid, gocv.ColorHSVToBGR)

		vivid.ConvertToWithParams(out, gocv.MatTypeCV8U, chromeContrast, float32(128*(1-chromeContrast)))
		return nil
	})
}

// ColorInvert inverts every channel
type ColorInvert struct {
	noParams
}

func NewColorInvert() *ColorInvert {
	return &ColorInvert{}
}

func (ColorInvert) Apply(src image.Image) (image.Image, error) {
	return run(src, func(in gocv.Mat, out *gocv.Mat) error {
		gocv.BitwiseNot(in, out)
		return nil
	})
}
