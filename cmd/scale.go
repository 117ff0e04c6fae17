package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AnyUserName/xbrz-cli/internal/manifest"
	"github.com/AnyUserName/xbrz-cli/internal/pipeline"
	"github.com/AnyUserName/xbrz-cli/internal/profile"
	"github.com/AnyUserName/xbrz-cli/xbrz"
	"github.com/spf13/cobra"
)

var (
	scaleOutDir     string
	scaleProfile    string
	scaleWorkers    int
	scaleRowWorkers int
	scaleScales     []int
	scaleFormats    []string
	scaleQuality    int
	scaleFitWidth   int
	scaleEngine     engineFlags
)

var scaleCmd = &cobra.Command{
	Use:   "scale <input_dir>",
	Short: "Upscale every image in a directory and write a manifest",
	Long: `Scans the input directory for images (png, jpg, gif, bmp, tiff, webp),
renders each at every scale of the profile with xBRz, encodes the result
in each of the profile's formats, and writes xbrz.manifest.json.

Output filenames are content-addressed: <key>.<N>x.<w>.<h>.<hash>.ext

Profiles: ` + strings.Join(profile.Names(), ", "),
	Args: cobra.ExactArgs(1),
	RunE: runScale,
}

func init() {
	scaleCmd.Flags().StringVarP(&scaleOutDir, "out", "o", "./xbrz_out", "output directory")
	scaleCmd.Flags().StringVarP(&scaleProfile, "profile", "p", "pixel-art", "processing profile")
	scaleCmd.Flags().IntVarP(&scaleWorkers, "workers", "w", 0, "images processed in parallel (0 = NumCPU)")
	scaleCmd.Flags().IntVar(&scaleRowWorkers, "row-workers", 1, "goroutines per image, split by rows")
	scaleCmd.Flags().IntSliceVarP(&scaleScales, "scales", "s", nil, "scale factors 2-6 (overrides profile)")
	scaleCmd.Flags().StringSliceVarP(&scaleFormats, "formats", "f", nil, "output formats: png, webp, jpeg, raw (overrides profile)")
	scaleCmd.Flags().IntVarP(&scaleQuality, "quality", "q", 0, "quality 1-100 for lossy formats (0 = profile default)")
	scaleCmd.Flags().IntVar(&scaleFitWidth, "fit-width", -1, "downscale outputs wider than this (0 = never, -1 = profile default)")
	scaleEngine.register(scaleCmd)
	rootCmd.AddCommand(scaleCmd)
}

func runScale(_ *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(scaleOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof := profile.Get(scaleProfile)
	if scaleScales != nil {
		prof.Scales = scaleScales
	}
	if scaleFormats != nil {
		prof.Formats = scaleFormats
	}
	if scaleQuality > 0 {
		prof.Quality = scaleQuality
	}
	if scaleFitWidth >= 0 {
		prof.FitWidth = scaleFitWidth
	}
	if len(prof.EffectiveScales(xbrz.MinScale, xbrz.MaxScale)) == 0 {
		return fmt.Errorf("no usable scale in %v (want 2-6)", prof.Scales)
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (scales=%v, formats=%v, quality=%d)", prof.Name, prof.Scales, prof.Formats, prof.Quality)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:     absInput,
		OutputDir:    absOutput,
		Profile:      prof,
		Options:      scaleEngine.options(),
		Workers:      scaleWorkers,
		ScaleWorkers: scaleRowWorkers,
		Verbose:      verbose,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printScaleReport(m, time.Since(start))
	return nil
}

func printScaleReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║               xbrz scale complete                ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := m.Stats
	fmt.Printf("  Assets:      %d\n", stats.TotalAssets)
	fmt.Printf("  Outputs:     %d\n", stats.TotalOutputs)
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	fmt.Printf("  Pixels out:  %s\n", formatPixels(stats.TotalPixelsOut))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Printf("  Metric:      %s (tolerance %.0f)\n", m.Options.Metric, m.Options.Tolerance)
	fmt.Println()

	// Top 10 largest outputs per asset.
	if len(m.Assets) > 0 {
		type assetSize struct {
			key        string
			inputSize  int64
			outputSize int64
		}
		var items []assetSize
		for key, a := range m.Assets {
			var outSum int64
			for _, o := range a.Outputs {
				outSum += o.Size
			}
			items = append(items, assetSize{key, a.Source.Size, outSum})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].outputSize != items[j].outputSize {
				return items[i].outputSize > items[j].outputSize
			}
			return items[i].key < items[j].key
		})
		n := min(len(items), 10)
		fmt.Printf("  Top %d heaviest (source → all outputs):\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %8s → %8s\n",
				truncKey(it.key, 40),
				formatBytes(it.inputSize),
				formatBytes(it.outputSize),
			)
		}
		fmt.Println()
	}

	fmt.Printf("  Formats:     %s\n", strings.Join(detectOutputFormats(m), ", "))
	fmt.Println()

	data, _ := json.Marshal(m)
	fmt.Printf("  Manifest:    %s (%s)\n", manifest.FileName, formatBytes(int64(len(data))))
	fmt.Println()
}

// formatOrder is the order formats are listed in reports.
var formatOrder = []string{"png", "webp", "raw", "jpeg"}

func detectOutputFormats(m *manifest.Manifest) []string {
	set := map[string]bool{}
	for _, a := range m.Assets {
		for _, o := range a.Outputs {
			set[o.Format] = true
		}
	}
	var out []string
	for _, f := range formatOrder {
		if set[f] {
			out = append(out, f)
		}
	}
	return out
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func formatPixels(n int64) string {
	if n >= 1_000_000 {
		return fmt.Sprintf("%.2f MP", float64(n)/1e6)
	}
	return fmt.Sprintf("%d px", n)
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
