//go:build ignore

// gen_fixtures creates small pixel-art images for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
)

var palette = []color.NRGBA{
	{R: 0x20, G: 0x30, B: 0x40, A: 0xff}, // background
	{R: 0xe0, G: 0xc0, B: 0x20, A: 0xff}, // gold
	{R: 0x10, G: 0xa0, B: 0xf0, A: 0xff}, // blue
	{R: 0x60, G: 0xff, B: 0x60, A: 0xff}, // green
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, // white
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "tiles"), 0o755)

	writePNG(filepath.Join(dir, "coin.png"), disc(12, 12, palette[1]))
	writePNG(filepath.Join(dir, "ghost.png"), ghost(16, 16))

	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf("slope-%d.png", i)
		writePNG(filepath.Join(dir, "tiles", name), slope(16, 16, i))
	}

	writeGIF(filepath.Join(dir, "tiles", "checker.gif"), checker(8, 8))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 fixtures in %s\n", dir)
}

// disc draws a filled circle on the background color.
func disc(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	r := min(w, h) / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := x-w/2, y-h/2
			col := palette[0]
			if dx*dx+dy*dy <= r*r {
				col = c
			}
			img.SetNRGBA(x, y, col)
		}
	}
	return img
}

// ghost is a translucent sprite on a transparent background.
func ghost(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 2; y < h-2; y++ {
		for x := 3; x < w-3; x++ {
			if y > h/2 && (x+y)%4 == 0 {
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 0xf0, G: 0xf0, B: 0xff, A: 0xc0})
		}
	}
	return img
}

// slope draws a hill edge rising one pixel every step columns.
func slope(w, h, step int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col := palette[0]
			if y > h-1-x/step {
				col = palette[3]
			}
			img.SetNRGBA(x, y, col)
		}
	}
	return img
}

func checker(w, h int) *image.Paletted {
	pal := color.Palette{palette[0], palette[4]}
	img := image.NewPaletted(image.Rect(0, 0, w, h), pal)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetColorIndex(x, y, uint8((x+y)%2))
		}
	}
	return img
}

func writePNG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeGIF(path string, img *image.Paletted) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := gif.Encode(f, img, nil); err != nil {
		panic(err)
	}
}
