package cmd

import (
	"fmt"
	"image"
	"time"

	"github.com/AnyUserName/xbrz-cli/internal/hasher"
	"github.com/AnyUserName/xbrz-cli/internal/pipeline"
	"github.com/AnyUserName/xbrz-cli/xbrz"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"golang.org/x/image/draw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	benchScales     []int
	benchIterations int
	benchParallel   bool
	benchWorkers    int
	benchBaselines  bool
	benchEngine     engineFlags
)

var benchCmd = &cobra.Command{
	Use:   "bench <image>",
	Short: "Measure scaling throughput and check determinism",
	Long: `Scales one image repeatedly at each requested factor and reports time per
run and source megapixels per second. Every run's pixels are hashed; any
difference between runs is reported as an error.

With --baselines, nearest-neighbor, approximate bilinear and Lanczos
resampling of the same image are timed for comparison.`,
	Args: cobra.ExactArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntSliceVarP(&benchScales, "scales", "s", []int{2, 3, 4, 5, 6}, "scale factors to measure")
	benchCmd.Flags().IntVarP(&benchIterations, "iterations", "i", 50, "runs per scale")
	benchCmd.Flags().BoolVar(&benchParallel, "parallel", false, "split rows across goroutines")
	benchCmd.Flags().IntVarP(&benchWorkers, "workers", "w", 0, "goroutines with --parallel (0 = GOMAXPROCS)")
	benchCmd.Flags().BoolVar(&benchBaselines, "baselines", false, "also time classic resampling filters")
	benchEngine.register(benchCmd)
	rootCmd.AddCommand(benchCmd)
}

// benchResult is one measured configuration.
type benchResult struct {
	name    string
	runs    int
	total   time.Duration
	srcPx   int
	digests int // distinct output digests seen, 1 when deterministic
}

func (r benchResult) perRun() time.Duration {
	if r.runs == 0 {
		return 0
	}
	return r.total / time.Duration(r.runs)
}

func (r benchResult) megapixelsPerSec() float64 {
	if r.total <= 0 {
		return 0
	}
	return float64(r.srcPx) * float64(r.runs) / r.total.Seconds() / 1e6
}

func runBench(_ *cobra.Command, args []string) error {
	if benchIterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", benchIterations)
	}
	img, err := pipeline.LoadImage(args[0])
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}
	px, w, h := xbrz.FromImage(img)
	opts := benchEngine.options()
	if _, err := opts.Normalized(); err != nil {
		return err
	}

	start := time.Now()
	xbrz.InitTable()
	logVerbose("color table ready in %s", time.Since(start).Round(time.Millisecond))

	workers := 1
	if benchParallel {
		workers = benchWorkers
	}

	var results []benchResult
	for _, n := range benchScales {
		r, err := benchScale(px, w, h, n, workers, opts)
		if err != nil {
			return err
		}
		results = append(results, r)
		if benchBaselines {
			results = append(results, benchFilters(img, w, h, n)...)
		}
	}

	printBenchReport(args[0], w, h, results)

	for _, r := range results {
		if r.digests > 1 {
			return fmt.Errorf("%s: %d different outputs across %d runs", r.name, r.digests, r.runs)
		}
	}
	return nil
}

func benchScale(px []xbrz.Pixel, w, h, n, workers int, opts xbrz.Options) (benchResult, error) {
	r := benchResult{name: fmt.Sprintf("xbrz %dx", n), srcPx: w * h}
	dst := make([]xbrz.Pixel, w*n*h*n)
	seen := map[uint64]bool{}

	for i := 0; i < benchIterations; i++ {
		clear(dst)
		t0 := time.Now()
		if err := xbrz.ScaleParallelWithOptions(n, px, dst, w, h, workers, opts); err != nil {
			return r, fmt.Errorf("scale %dx: %w", n, err)
		}
		r.total += time.Since(t0)
		r.runs++
		seen[hasher.PixelDigest(dst, w*n, h*n)] = true
	}
	r.digests = len(seen)
	logVerbose("%s: %d runs, %d distinct digests", r.name, r.runs, r.digests)
	return r, nil
}

// benchFilters times the classic resamplers at the same output size.
func benchFilters(src image.Image, w, h, n int) []benchResult {
	rect := image.Rect(0, 0, w*n, h*n)
	var results []benchResult

	for _, f := range []struct {
		name string
		k    draw.Interpolator
	}{
		{"nearest", draw.NearestNeighbor},
		{"bilinear", draw.ApproxBiLinear},
	} {
		r := benchResult{name: fmt.Sprintf("%s %dx", f.name, n), srcPx: w * h, digests: 1}
		dst := image.NewNRGBA(rect)
		for i := 0; i < benchIterations; i++ {
			t0 := time.Now()
			f.k.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)
			r.total += time.Since(t0)
			r.runs++
		}
		results = append(results, r)
	}

	r := benchResult{name: fmt.Sprintf("lanczos %dx", n), srcPx: w * h, digests: 1}
	for i := 0; i < benchIterations; i++ {
		t0 := time.Now()
		imaging.Resize(src, w*n, h*n, imaging.Lanczos)
		r.total += time.Since(t0)
		r.runs++
	}
	return append(results, r)
}

func printBenchReport(path string, w, h int, results []benchResult) {
	p := message.NewPrinter(language.English)

	fmt.Println()
	p.Printf("  Source:      %s (%dx%d, %d px)\n", path, w, h, w*h)
	p.Printf("  Iterations:  %d per scale\n", benchIterations)
	fmt.Println()
	fmt.Printf("  %-16s %12s %12s  %s\n", "filter", "per run", "MP/s", "deterministic")
	for _, r := range results {
		det := "yes"
		if r.digests > 1 {
			det = p.Sprintf("NO (%d outputs)", r.digests)
		}
		fmt.Printf("  %-16s %12s %12s  %s\n",
			r.name,
			r.perRun().Round(time.Microsecond),
			p.Sprintf("%.2f", r.megapixelsPerSec()),
			det,
		)
	}
	fmt.Println()
}
