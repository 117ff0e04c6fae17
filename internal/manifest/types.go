package manifest

// Manifest is the top-level output of an xbrz scale run.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	Options     Options          `json:"options"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// Options records the edge-detection settings the outputs were made with.
type Options struct {
	Tolerance float64 `json:"tolerance"`
	Dominant  float64 `json:"dominant"`
	Steep     float64 `json:"steep"`
	Luminance float64 `json:"luminance"`
	Metric    string  `json:"metric"` // "table" or "exact"
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers  int    `json:"workers"`
	Encoders string `json:"encoders,omitempty"`
}

// Asset describes a single source image and all its scaled outputs.
type Asset struct {
	Source  SourceInfo `json:"source"`
	Outputs []Output   `json:"outputs"`
}

// SourceInfo holds metadata about the source image.
type SourceInfo struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	HasAlpha bool   `json:"has_alpha"`
}

// Output is one encoded result of an asset at one scale and format.
type Output struct {
	Scale       int    `json:"scale"`
	Format      string `json:"format"` // "png", "webp", "jpeg", "raw"
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Fitted      bool   `json:"fitted,omitempty"` // downscaled after scaling
	Size        int64  `json:"size"`             // bytes on disk
	Hash        string `json:"hash"`             // first 16 hex chars of xxhash64 of the file
	PixelDigest string `json:"pixel_digest"`     // xxhash64 of the scaled pixels
	Path        string `json:"path"`             // relative to the manifest
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalAssets      int   `json:"total_assets"`
	TotalOutputs     int   `json:"total_outputs"`
	TotalPixelsOut   int64 `json:"total_pixels_out"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the manifest's name inside an output directory.
const FileName = "xbrz.manifest.json"
