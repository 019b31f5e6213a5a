package kernel

import "strings"

// Feature is a bitmask of optional kernel code paths.
type Feature uint32

const (
	// Denoising auxiliary or denoised passes are present.
	FeatureDenoising Feature = 1 << iota

	// Any light pass other than combined is present.
	FeatureLightPasses

	// The shadow pass is present.
	FeatureShadowPass

	// Shader ray tracing is needed (ambient occlusion pass).
	FeatureNodeRaytrace
)

var featureNames = []struct {
	f    Feature
	name string
}{
	{FeatureDenoising, "denoising"},
	{FeatureLightPasses, "light_passes"},
	{FeatureShadowPass, "shadow_pass"},
	{FeatureNodeRaytrace, "node_raytrace"},
}

// Has reports whether all bits of other are set.
func (f Feature) Has(other Feature) bool {
	return f&other == other
}

// Implements Stringer.
func (f Feature) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, entry := range featureNames {
		if f.Has(entry.f) {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, "|")
}
