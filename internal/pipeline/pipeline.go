package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/xbrz-cli/internal/encoder"
	"github.com/AnyUserName/xbrz-cli/internal/manifest"
	"github.com/AnyUserName/xbrz-cli/internal/profile"
	"github.com/AnyUserName/xbrz-cli/xbrz"
)

// Config holds all parameters for a scale pipeline run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   profile.Profile
	Options   xbrz.Options
	// Workers is the number of images processed at once (0 = NumCPU).
	Workers int
	// ScaleWorkers splits each image's rows across goroutines (0 = 1).
	ScaleWorkers int
	Verbose      bool
}

func (c Config) logf(format string, args ...any) {
	if c.Verbose {
		fmt.Fprintf(os.Stderr, "[xbrz] "+format+"\n", args...)
	}
}

// Pipeline orchestrates batch scaling.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	return NewWithRegistry(cfg, encoder.NewRegistry())
}

// NewWithRegistry creates a pipeline with a custom set of encoders.
func NewWithRegistry(cfg Config, registry *encoder.Registry) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.ScaleWorkers <= 0 {
		cfg.ScaleWorkers = 1
	}
	return &Pipeline{
		cfg:      cfg,
		registry: registry,
	}
}

// Run executes the full pipeline and returns the manifest.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	p.cfg.logf("%s", p.registry.String())

	opts, err := ResolveOptions(p.cfg.Options)
	if err != nil {
		return nil, err
	}

	// Built once up front so workers don't all wait on the first call.
	if p.cfg.Options.Metric == xbrz.MetricTable {
		xbrz.InitTable()
	}

	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	p.cfg.logf("found %d images", len(sources))

	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			p.cfg.logf("processing: %s", s.Key)
			results[idx] = processImage(s, p.cfg, p.registry)
			if results[idx].err == nil {
				p.cfg.logf("done: %s (%d outputs)", s.Key, len(results[idx].asset.Outputs))
			}
		}(i, src)
	}
	wg.Wait()

	m := manifest.New(p.cfg.Profile.Name)
	m.Options = opts

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Assets[r.key] = r.asset
	}

	// Partial failures are reported but don't fail the run.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[xbrz] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[xbrz] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:  p.cfg.Workers,
		Encoders: p.registry.String(),
	}
	m.ComputeStats()
	return m, nil
}

// ResolveOptions validates engine options and returns them as recorded
// in the manifest, with zero fields replaced by defaults.
func ResolveOptions(o xbrz.Options) (manifest.Options, error) {
	n, err := o.Normalized()
	if err != nil {
		return manifest.Options{}, fmt.Errorf("options: %w", err)
	}
	return manifest.Options{
		Tolerance: n.EqualColorTolerance,
		Dominant:  n.DominantDirectionThreshold,
		Steep:     n.SteepDirectionThreshold,
		Luminance: n.LuminanceWeight,
		Metric:    n.Metric.String(),
	}, nil
}
