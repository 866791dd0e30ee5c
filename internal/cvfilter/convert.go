// Conversions between Go rasters and OpenCV matrices
package cvfilter

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"instafilter/internal/filters"
)

// toMat converts img to a BGR 8UC3 matrix. The caller owns the result on
// success; on error nothing is allocated and the zero Mat is returned.
func toMat(img image.Image) (gocv.Mat, error) {
	if err := filters.ValidateSource(img); err != nil {
		return gocv.Mat{}, err
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("convert image to mat: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return gocv.Mat{}, filters.ErrEmptySource
	}
	return mat, nil
}

// toImage converts mat back to a Go raster, expanding grayscale to BGR first
func toImage(mat gocv.Mat) (image.Image, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("filter produced an empty matrix")
	}

	if mat.Channels() == 1 {
		color := gocv.NewMat()
		defer color.Close()
		gocv.CvtColor(mat, &color, gocv.ColorGrayToBGR)
		return color.ToImage()
	}
	return mat.ToImage()
}

// run converts src, applies fn, and converts the result back
func run(src image.Image, fn func(in gocv.Mat, out *gocv.Mat) error) (image.Image, error) {
	in, err := toMat(src)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	out := gocv.NewMat()
	defer out.Close()

	if err := fn(in, &out); err != nil {
		return nil, err
	}
	return toImage(out)
}

// bgrBytes returns a copy of the pixel data of an 8UC3 matrix
func bgrBytes(mat gocv.Mat) []byte {
	return mat.ToBytes()
}

// fromBGRBytes builds an 8UC3 matrix of the given size from raw pixel data
func fromBGRBytes(rows, cols int, data []byte, out *gocv.Mat) error {
	mat, err := gocv.NewMatFromBytes(rows, cols, gocv.MatTypeCV8UC3, data)
	if err != nil {
		return fmt.Errorf("build mat from bytes: %w", err)
	}
	defer mat.Close()
	mat.CopyTo(out)
	return nil
}
