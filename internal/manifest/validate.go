package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Scale bounds accepted in outputs.
const (
	minScale = 2
	maxScale = 6
)

// Validate checks the manifest for internal consistency and that every
// referenced file exists under baseDir with the recorded size. It returns
// one message per problem, in asset key order.
func Validate(m *Manifest, baseDir string) []string {
	var errs []string

	if m.Version != SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	keys := make([]string, 0, len(m.Assets))
	for k := range m.Assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seenPaths := map[string]string{}
	outputCount := 0
	for _, key := range keys {
		asset := m.Assets[key]
		src := asset.Source
		outputCount += len(asset.Outputs)

		if src.Width <= 0 || src.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid source dimensions %dx%d",
				key, src.Width, src.Height))
		}
		if len(asset.Outputs) == 0 {
			errs = append(errs, fmt.Sprintf("asset %q: no outputs", key))
		}

		for i, o := range asset.Outputs {
			if o.Scale < minScale || o.Scale > maxScale {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: scale %d out of range", key, i, o.Scale))
			}
			if o.Format == "" {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: empty format", key, i))
			}
			if o.Width <= 0 || o.Height <= 0 {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: invalid dimensions %dx%d",
					key, i, o.Width, o.Height))
			} else if !o.Fitted && (o.Width != src.Width*o.Scale || o.Height != src.Height*o.Scale) {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: %dx%d is not %dx of %dx%d",
					key, i, o.Width, o.Height, o.Scale, src.Width, src.Height))
			} else if o.Fitted && o.Width >= src.Width*o.Scale {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: fitted width %d not below %d",
					key, i, o.Width, src.Width*o.Scale))
			}
			if o.Hash == "" {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: missing hash", key, i))
			}
			if len(o.PixelDigest) != 16 {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: bad pixel digest %q", key, i, o.PixelDigest))
			}
			if o.Path == "" {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: missing path", key, i))
				continue
			}

			if owner, dup := seenPaths[o.Path]; dup {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: duplicate path %q (also in %q)",
					key, i, o.Path, owner))
			}
			seenPaths[o.Path] = key

			info, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(o.Path)))
			if err != nil {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: file not found: %s", key, i, o.Path))
			} else if o.Size > 0 && info.Size() != o.Size {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: size mismatch: manifest=%d, disk=%d",
					key, i, o.Size, info.Size()))
			}
		}
	}

	if m.Stats.TotalAssets != len(m.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, len(m.Assets)))
	}
	if m.Stats.TotalOutputs != outputCount {
		errs = append(errs, fmt.Sprintf("stats.total_outputs mismatch: %d != %d", m.Stats.TotalOutputs, outputCount))
	}

	return errs
}
