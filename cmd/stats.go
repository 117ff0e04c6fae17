package cmd

import (
	"fmt"
	"sort"

	"github.com/AnyUserName/xbrz-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a scaled output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	m, path, err := manifest.Load(args[0])
	if err != nil {
		return err
	}
	logVerbose("manifest: %s", path)
	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	fmt.Printf("  Metric:           %s (tolerance %.1f, dominant %.1f, steep %.1f)\n",
		m.Options.Metric, m.Options.Tolerance, m.Options.Dominant, m.Options.Steep)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total assets:     %d\n", s.TotalAssets)
	fmt.Printf("  Total outputs:    %d\n", s.TotalOutputs)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Printf("  Pixels out:       %s\n", formatPixels(s.TotalPixelsOut))
	fmt.Println()

	// Per-format breakdown.
	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, a := range m.Assets {
		for _, o := range a.Outputs {
			fs := formatStats[o.Format]
			fs.count++
			fs.bytes += o.Size
			formatStats[o.Format] = fs
		}
	}

	fmt.Println("  Format breakdown:")
	for _, f := range formatOrder {
		if fs, ok := formatStats[f]; ok {
			fmt.Printf("    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
		}
	}
	fmt.Println()

	// Per-scale breakdown.
	type scaleStat struct {
		outputs int
		bytes   int64
	}
	scaleStats := map[int]scaleStat{}
	for _, a := range m.Assets {
		for _, o := range a.Outputs {
			ss := scaleStats[o.Scale]
			ss.outputs++
			ss.bytes += o.Size
			scaleStats[o.Scale] = ss
		}
	}
	var scales []int
	for n := range scaleStats {
		scales = append(scales, n)
	}
	sort.Ints(scales)
	fmt.Println("  Scale breakdown:")
	for _, n := range scales {
		ss := scaleStats[n]
		fmt.Printf("    %dx  %4d outputs  %s\n", n, ss.outputs, formatBytes(ss.bytes))
	}
	fmt.Println()

	// Outputs whose pixels repeat another asset's render.
	owners := map[string]string{}
	shared := 0
	for key, a := range m.Assets {
		for _, o := range a.Outputs {
			if prev, ok := owners[o.PixelDigest]; ok && prev != key {
				shared++
			}
			owners[o.PixelDigest] = key
		}
	}
	fmt.Printf("  Distinct renders: %d\n", len(owners))

	var warnings []string
	for key, a := range m.Assets {
		if len(a.Outputs) == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q has no outputs", key))
		}
	}
	if shared > 0 {
		warnings = append(warnings, fmt.Sprintf("%d outputs duplicate another asset's pixels", shared))
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
