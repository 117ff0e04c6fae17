package cmd

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnyUserName/xbrz-cli/internal/encoder"
	"github.com/AnyUserName/xbrz-cli/internal/pipeline"
	"github.com/AnyUserName/xbrz-cli/xbrz"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

var (
	convertScale    int
	convertFitWidth int
	convertQuality  int
	convertLossless bool
	convertWorkers  int
	convertEngine   engineFlags
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Upscale a single image",
	Long: `Scales one image with xBRz. The output format follows the output file
extension: .png, .jpg/.jpeg, .webp (needs cwebp) or .rgba.zst (raw sprite).`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().IntVarP(&convertScale, "scale", "n", 4, "scale factor 2-6")
	convertCmd.Flags().IntVar(&convertFitWidth, "fit-width", 0, "downscale the result to this width (0 = keep)")
	convertCmd.Flags().IntVarP(&convertQuality, "quality", "q", 0, "quality 1-100 for lossy formats (0 = encoder default)")
	convertCmd.Flags().BoolVar(&convertLossless, "lossless", false, "lossless webp")
	convertCmd.Flags().IntVarP(&convertWorkers, "workers", "w", 0, "goroutines, split by rows (0 = GOMAXPROCS)")
	convertEngine.register(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

// formatForPath maps an output file name to an encoder format.
func formatForPath(path string) (string, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, pipeline.RawExtension) {
		return "raw", nil
	}
	switch ext := filepath.Ext(lower); ext {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".webp":
		return "webp", nil
	default:
		return "", fmt.Errorf("unsupported output extension %q", ext)
	}
}

func runConvert(_ *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]
	if !xbrz.SupportedScale(convertScale) {
		return fmt.Errorf("scale %d: want %d-%d", convertScale, xbrz.MinScale, xbrz.MaxScale)
	}

	format, err := formatForPath(outPath)
	if err != nil {
		return err
	}
	enc := encoder.NewRegistry().Get(format)
	if enc == nil {
		return fmt.Errorf("encoder %s is not available", format)
	}

	img, err := pipeline.LoadImage(inPath)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}
	px, w, h := xbrz.FromImage(img)
	logVerbose("input:  %s (%dx%d)", inPath, w, h)

	start := time.Now()
	n := convertScale
	dst := make([]xbrz.Pixel, w*n*h*n)
	if err := xbrz.ScaleParallelWithOptions(n, px, dst, w, h, convertWorkers, convertEngine.options()); err != nil {
		return fmt.Errorf("scale: %w", err)
	}
	logVerbose("scaled %dx in %s", n, time.Since(start).Round(time.Microsecond))

	var out image.Image = xbrz.ToNRGBA(dst, w*n, h*n)
	if convertFitWidth > 0 && convertFitWidth < w*n {
		out = imaging.Resize(out, convertFitWidth, 0, imaging.Lanczos)
	}

	data, err := enc.Encode(out, encoder.Options{Quality: convertQuality, Lossless: convertLossless})
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	b := out.Bounds()
	fmt.Printf("  %s → %s  %dx%d → %dx%d  (%s)\n",
		inPath, outPath, w, h, b.Dx(), b.Dy(), formatBytes(int64(len(data))))
	return nil
}
