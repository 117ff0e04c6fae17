package profile

import "slices"

// Profile defines scaling and encoding parameters for a target use.
type Profile struct {
	Name     string
	Scales   []int    // xBRz factors to render, 2-6
	Formats  []string // output formats in priority order
	Quality  int      // encoding quality 1-100 for lossy formats
	Lossless bool     // ask lossy-capable encoders for lossless output
	FitWidth int      // downscale results wider than this (0 = never)
}

// Built-in profiles.
var profiles = map[string]Profile{
	"pixel-art": {
		Name:    "pixel-art",
		Scales:  []int{2, 3, 4},
		Formats: []string{"png"},
		Quality: 100,
	},
	"retro-hd": {
		Name:     "retro-hd",
		Scales:   []int{4, 6},
		Formats:  []string{"png", "webp"},
		Quality:  100,
		Lossless: true,
	},
	"preview": {
		Name:     "preview",
		Scales:   []int{2},
		Formats:  []string{"png", "jpeg"},
		Quality:  85,
		FitWidth: 1024,
	},
	"sprite-pack": {
		Name:    "sprite-pack",
		Scales:  []int{2, 3},
		Formats: []string{"raw"},
		Quality: 100,
	},
}

// Get returns a profile by name. Falls back to pixel-art if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		p.Scales = slices.Clone(p.Scales)
		p.Formats = slices.Clone(p.Formats)
		return p
	}
	p := profiles["pixel-art"]
	p.Name = name // preserve requested name
	p.Scales = slices.Clone(p.Scales)
	p.Formats = slices.Clone(p.Formats)
	return p
}

// Names lists the built-in profiles in sorted order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// EffectiveScales returns the profile scales that fall in [lo, hi],
// deduplicated and in ascending order.
func (p Profile) EffectiveScales(lo, hi int) []int {
	var result []int
	for _, s := range p.Scales {
		if s < lo || s > hi {
			continue
		}
		if !slices.Contains(result, s) {
			result = append(result, s)
		}
	}
	slices.Sort(result)
	return result
}

// TargetSize returns the output size of a w×h image at scale n, after
// the optional fit-width downscale. The aspect ratio is kept.
func (p Profile) TargetSize(w, h, n int) (int, int) {
	tw, th := w*n, h*n
	if p.FitWidth <= 0 || tw <= p.FitWidth {
		return tw, th
	}
	fh := int(float64(th) * float64(p.FitWidth) / float64(tw))
	if fh < 1 {
		fh = 1
	}
	return p.FitWidth, fh
}
