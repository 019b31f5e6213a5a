package pass

import (
	"fmt"
	"strings"
)

// Kind identifies the data stored by a render pass.
//
// Kinds are grouped into three ranges: light passes (up to CategoryLightEnd),
// data passes (up to CategoryDataEnd) and bake passes (up to
// CategoryBakeEnd). The position of a kind inside its range selects the bit
// it sets in the kernel's coarse pass flags, so each range holds at most 32
// kinds.
type Kind uint8

const (
	None Kind = iota

	// Light passes.
	Combined
	Emission
	Background
	AO
	Shadow
	Diffuse
	DiffuseDirect
	DiffuseIndirect
	Glossy
	GlossyDirect
	GlossyIndirect
	Transmission
	TransmissionDirect
	TransmissionIndirect
	Volume
	VolumeDirect
	VolumeIndirect
)

const CategoryLightEnd Kind = 31

const (
	// Data passes.
	Depth Kind = CategoryLightEnd + 1 + iota
	Position
	Normal
	Roughness
	UV
	ObjectID
	MaterialID
	Motion
	MotionWeight
	RenderTime
	Cryptomatte
	AOVColor
	AOVValue
	AdaptiveAuxBuffer
	SampleCount
	DiffuseColor
	GlossyColor
	TransmissionColor
	Mist
	DenoisingNormal
	DenoisingAlbedo
	ShadowCatcher
	ShadowCatcherSampleCount
	ShadowCatcherMatte
)

const CategoryDataEnd Kind = 63

const (
	// Bake passes.
	BakePrimitive Kind = CategoryDataEnd + 1 + iota
	BakeDifferential
)

const CategoryBakeEnd Kind = 95

var kindNames = map[Kind]string{
	None:                     "none",
	Combined:                 "combined",
	Emission:                 "emission",
	Background:               "background",
	AO:                       "ao",
	Shadow:                   "shadow",
	Diffuse:                  "diffuse",
	DiffuseDirect:            "diffuse_direct",
	DiffuseIndirect:          "diffuse_indirect",
	Glossy:                   "glossy",
	GlossyDirect:             "glossy_direct",
	GlossyIndirect:           "glossy_indirect",
	Transmission:             "transmission",
	TransmissionDirect:       "transmission_direct",
	TransmissionIndirect:     "transmission_indirect",
	Volume:                   "volume",
	VolumeDirect:             "volume_direct",
	VolumeIndirect:           "volume_indirect",
	Depth:                    "depth",
	Position:                 "position",
	Normal:                   "normal",
	Roughness:                "roughness",
	UV:                       "uv",
	ObjectID:                 "object_id",
	MaterialID:               "material_id",
	Motion:                   "motion",
	MotionWeight:             "motion_weight",
	RenderTime:               "render_time",
	Cryptomatte:              "cryptomatte",
	AOVColor:                 "aov_color",
	AOVValue:                 "aov_value",
	AdaptiveAuxBuffer:        "adaptive_aux_buffer",
	SampleCount:              "sample_count",
	DiffuseColor:             "diffuse_color",
	GlossyColor:              "glossy_color",
	TransmissionColor:        "transmission_color",
	Mist:                     "mist",
	DenoisingNormal:          "denoising_normal",
	DenoisingAlbedo:          "denoising_albedo",
	ShadowCatcher:            "shadow_catcher",
	ShadowCatcherSampleCount: "shadow_catcher_sample_count",
	ShadowCatcherMatte:       "shadow_catcher_matte",
	BakePrimitive:            "bake_primitive",
	BakeDifferential:         "bake_differential",
}

// Kinds returns every enumerated pass kind except None, in ascending order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames)-1)
	for k := Kind(1); k <= CategoryBakeEnd; k++ {
		if _, ok := kindNames[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Implements Stringer.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a pass kind name (as returned by String) back to a Kind.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, kName := range kindNames {
		if kName == name && k != None {
			return k, true
		}
	}
	return None, false
}

// Category of a pass kind.
type Category uint8

const (
	LightCategory Category = iota
	DataCategory
	BakeCategory
)

// Implements Stringer.
func (c Category) String() string {
	switch c {
	case LightCategory:
		return "light"
	case DataCategory:
		return "data"
	case BakeCategory:
		return "bake"
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// Category classifies k into one of the light, data or bake ranges. Any
// other value indicates that the kind enumeration and the category ranges
// have drifted apart.
func (k Kind) Category() Category {
	switch {
	case k == None:
		panic("pass: the none kind does not belong to any category")
	case k <= CategoryLightEnd:
		return LightCategory
	case k <= CategoryDataEnd:
		return DataCategory
	case k <= CategoryBakeEnd:
		return BakeCategory
	}
	panic(fmt.Sprintf("pass: kind %d is outside of all category ranges", uint8(k)))
}

// FlagBit returns the bit this kind sets in the coarse pass flag word of
// its category.
func (k Kind) FlagBit() uint32 {
	return 1 << (uint32(k) % 32)
}
