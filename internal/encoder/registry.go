package encoder

import (
	"fmt"
	"strings"
)

// priority is the order formats are listed and resolved in.
var priority = []string{"png", "webp", "raw", "jpeg"}

// Registry holds all available encoders keyed by format.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	return NewRegistryWith(
		&PNGEncoder{},
		&WebPEncoder{},
		&RawEncoder{},
		&JPEGEncoder{},
	)
}

// NewRegistryWith registers only the given encoders that are available.
func NewRegistryWith(all ...Encoder) *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}
	return r
}

// Get returns an encoder for the given format, or nil if unavailable.
// "jpg" is accepted for jpeg.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[normalize(format)]
}

// Available returns all available format names.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range priority {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// ResolveFormats filters requested formats to those available and
// falls back to png when none remain. jpeg has no alpha channel, so a
// translucent image also gets png next to it.
func (r *Registry) ResolveFormats(requested []string, hasAlpha bool) []string {
	var resolved []string
	seen := map[string]bool{}

	for _, f := range requested {
		f = normalize(f)
		if _, ok := r.encoders[f]; ok && !seen[f] {
			resolved = append(resolved, f)
			seen[f] = true
		}
	}

	if len(resolved) == 0 && r.encoders["png"] != nil {
		resolved = append(resolved, "png")
		seen["png"] = true
	}

	if hasAlpha && seen["jpeg"] && len(resolved) == 1 && r.encoders["png"] != nil {
		resolved = append(resolved, "png")
	}

	return resolved
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}

func normalize(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "jpg" {
		return "jpeg"
	}
	return f
}
