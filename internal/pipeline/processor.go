package pipeline

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/xbrz-cli/internal/encoder"
	"github.com/AnyUserName/xbrz-cli/internal/hasher"
	"github.com/AnyUserName/xbrz-cli/internal/manifest"
	"github.com/AnyUserName/xbrz-cli/xbrz"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// RawExtension marks raw sprites, which are read without an image codec.
const RawExtension = ".rgba.zst"

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// LoadImage decodes an image file, applying EXIF orientation. Raw
// sprites written by the raw encoder are accepted too.
func LoadImage(path string) (image.Image, error) {
	if strings.HasSuffix(strings.ToLower(path), RawExtension) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		px, w, h, err := encoder.DecodeRaw(data)
		if err != nil {
			return nil, err
		}
		return xbrz.ToNRGBA(px, w, h), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return imaging.Decode(f, imaging.AutoOrientation(true))
}

// HasAlpha reports whether any pixel is not fully opaque.
func HasAlpha(px []xbrz.Pixel) bool {
	for _, p := range px {
		if p.A() != 0xff {
			return true
		}
	}
	return false
}

// OutputName builds the content-addressed file name of one output:
// <base>.<N>x.<w>.<h>.<hash8>.<ext>
func OutputName(base string, scale, w, h int, hash, ext string) string {
	if len(hash) > 8 {
		hash = hash[:8]
	}
	return fmt.Sprintf("%s.%dx.%d.%d.%s.%s", base, scale, w, h, hash, ext)
}

// processImage handles a single source image: decode, scale at every
// profile scale, encode every format, write files.
func processImage(src Source, cfg Config, registry *encoder.Registry) processResult {
	result := processResult{key: src.Key}

	img, err := LoadImage(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	px, w, h := xbrz.FromImage(img)
	hasAlpha := HasAlpha(px)

	result.asset = manifest.Asset{
		Source: manifest.SourceInfo{
			Width:    w,
			Height:   h,
			Format:   src.Format,
			Size:     src.Size,
			HasAlpha: hasAlpha,
		},
	}

	scales := cfg.Profile.EffectiveScales(xbrz.MinScale, xbrz.MaxScale)
	formats := registry.ResolveFormats(cfg.Profile.Formats, hasAlpha)
	encOpts := encoder.Options{Quality: cfg.Profile.Quality, Lossless: cfg.Profile.Lossless}

	keyDir := filepath.Dir(filepath.FromSlash(src.Key))
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755); err != nil {
			result.err = fmt.Errorf("create dir for %s: %w", src.Key, err)
			return result
		}
	}

	for _, n := range scales {
		sw, sh := w*n, h*n
		dst := make([]xbrz.Pixel, sw*sh)
		if err := xbrz.ScaleParallelWithOptions(n, px, dst, w, h, cfg.ScaleWorkers, cfg.Options); err != nil {
			result.err = fmt.Errorf("scale %s %dx: %w", src.Key, n, err)
			return result
		}
		digest := hasher.PixelDigestHex(dst, sw, sh)

		var out image.Image = xbrz.ToNRGBA(dst, sw, sh)
		tw, th := cfg.Profile.TargetSize(w, h, n)
		fitted := tw != sw || th != sh
		if fitted {
			out = imaging.Resize(out, tw, th, imaging.Lanczos)
		}

		for _, format := range formats {
			enc := registry.Get(format)
			if enc == nil {
				continue
			}

			data, err := enc.Encode(out, encOpts)
			if err != nil {
				cfg.logf("warn: encode %s@%dx as %s: %v", src.Key, n, format, err)
				continue
			}

			contentHash := hasher.ContentHash(data, 16)
			fileName := OutputName(filepath.Base(src.Key), n, tw, th, contentHash, enc.Extension())
			relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

			outPath := filepath.Join(cfg.OutputDir, filepath.FromSlash(relPath))
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				result.err = fmt.Errorf("write %s: %w", relPath, err)
				return result
			}

			result.asset.Outputs = append(result.asset.Outputs, manifest.Output{
				Scale:       n,
				Format:      format,
				Width:       tw,
				Height:      th,
				Fitted:      fitted,
				Size:        int64(len(data)),
				Hash:        contentHash,
				PixelDigest: digest,
				Path:        relPath,
			})
		}
	}

	if len(result.asset.Outputs) == 0 {
		result.err = fmt.Errorf("%s: no output could be encoded in %v", src.Key, formats)
	}
	return result
}
