package xbrz

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// FromImage converts img to packed non-premultiplied pixels and returns
// them with the image dimensions.
func FromImage(img image.Image) ([]Pixel, int, int) {
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = imaging.Clone(img)
	}
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	px := make([]Pixel, w*h)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		out := px[y*w : (y+1)*w]
		for x := range out {
			o := x * 4
			out[x] = RGBA(row[o], row[o+1], row[o+2], row[o+3])
		}
	}
	return px, w, h
}

// ToNRGBA unpacks a width×height pixel slice into a new image.
func ToNRGBA(px []Pixel, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x, p := range px[y*width : (y+1)*width] {
			o := x * 4
			row[o] = p.R()
			row[o+1] = p.G()
			row[o+2] = p.B()
			row[o+3] = p.A()
		}
	}
	return img
}

// ScaleNRGBA scales any image by n and returns the result as NRGBA.
func ScaleNRGBA(img image.Image, n int, opts Options) (*image.NRGBA, error) {
	b := img.Bounds()
	if err := checkDims(n, b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	src, w, h := FromImage(img)
	dst := make([]Pixel, w*n*h*n)
	if err := ScaleWithOptions(n, src, dst, w, h, opts); err != nil {
		return nil, fmt.Errorf("scale %dx%d: %w", w, h, err)
	}
	return ToNRGBA(dst, w*n, h*n), nil
}
