package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/AnyUserName/xbrz-cli/xbrz"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "xbrz",
	Short: "Edge-aware pixel-art upscaler (xBRz, 2x-6x)",
	Long: `xbrz — enlarges sprites and pixel art by 2 to 6 times, rounding
diagonal edges instead of producing staircases.

Scales single files or whole directories into content-addressed outputs
(PNG, WebP, JPEG, zstd raw sprites) with a manifest, and benchmarks the
scaler against classic resampling filters.`,
	Version: version,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			xbrz.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
				&slog.HandlerOptions{Level: slog.LevelDebug})))
		}
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"xbrz %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[xbrz] "+format+"\n", args...)
	}
}

// engineFlags are the edge-detection tunables shared by every command
// that scales.
type engineFlags struct {
	tolerance float64
	dominant  float64
	steep     float64
	luminance float64
	exact     bool
}

func (f *engineFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.tolerance, "tolerance", xbrz.DefaultEqualColorTolerance, "color distance below which pixels count as equal")
	fs.Float64Var(&f.dominant, "dominant", xbrz.DefaultDominantDirectionThreshold, "gradient ratio for a dominant diagonal")
	fs.Float64Var(&f.steep, "steep", xbrz.DefaultSteepDirectionThreshold, "gradient ratio for shallow/steep lines")
	fs.Float64Var(&f.luminance, "luminance", xbrz.DefaultLuminanceWeight, "weight of the luma difference")
	fs.BoolVar(&f.exact, "exact-metric", false, "compute color distance in float (BT.709) instead of the lookup table")
}

func (f *engineFlags) options() xbrz.Options {
	o := xbrz.Options{
		LuminanceWeight:            f.luminance,
		EqualColorTolerance:        f.tolerance,
		DominantDirectionThreshold: f.dominant,
		SteepDirectionThreshold:    f.steep,
		Metric:                     xbrz.MetricTable,
	}
	if f.exact {
		o.Metric = xbrz.MetricExact
	}
	return o
}
