package kernel

// PassUnused marks an offset field whose pass is not present in the render
// buffer. The kernel tests offsets against it before writing.
const PassUnused int32 = -1

// FilterTableSize is the number of entries in the pixel filter importance
// table.
const FilterTableSize = 1024

// Cryptomatte layer selection bits.
type CryptomatteType uint32

const (
	CryptNone     CryptomatteType = 0
	CryptObject   CryptomatteType = 1 << 0
	CryptMaterial CryptomatteType = 1 << 1
	CryptAsset    CryptomatteType = 1 << 2
	CryptAccurate CryptomatteType = 1 << 3
)

// Film is the flat film configuration read by the integrator kernels. All
// pass offsets are in float components from the start of a pixel record.
type Film struct {
	Exposure           float32
	PassAlphaThreshold float32

	// Coarse presence bits for light passes and data passes.
	PassFlag      uint32
	LightPassFlag uint32

	// Number of float components per pixel.
	PassStride int32

	PassCombined         int32
	PassDepth            int32
	PassNormal           int32
	PassPosition         int32
	PassRoughness        int32
	PassUV               int32
	PassMotion           int32
	PassMotionWeight     int32
	PassObjectID         int32
	PassMaterialID       int32
	PassMist             int32
	PassEmission         int32
	PassBackground       int32
	PassAO               int32
	PassShadow           int32
	PassCryptomatte      int32
	PassAOVColor         int32
	PassAOVValue         int32
	PassBakePrimitive    int32
	PassBakeDifferential int32

	PassDiffuseColor      int32
	PassGlossyColor       int32
	PassTransmissionColor int32

	PassDiffuseDirect        int32
	PassDiffuseIndirect      int32
	PassGlossyDirect         int32
	PassGlossyIndirect       int32
	PassTransmissionDirect   int32
	PassTransmissionIndirect int32
	PassVolumeDirect         int32
	PassVolumeIndirect       int32

	PassDenoisingNormal int32
	PassDenoisingAlbedo int32

	PassSampleCount       int32
	PassAdaptiveAuxBuffer int32

	PassShadowCatcher            int32
	PassShadowCatcherSampleCount int32
	PassShadowCatcherMatte       int32

	// Offset of the denoised variant of the display pass, read when the
	// viewer shows denoised output.
	PassDenoisedDisplay int32

	UseApproximateShadowCatcher bool

	CryptomatteDepth  int32
	CryptomattePasses CryptomatteType

	// Offset of the pixel filter importance table in the lookup table
	// storage.
	FilterTableOffset int32

	MistStart    float32
	MistInvDepth float32
	MistFalloff  float32
}

// NewFilm returns a film configuration with every pass offset marked unused.
func NewFilm() Film {
	return Film{
		PassCombined:                 PassUnused,
		PassDepth:                    PassUnused,
		PassNormal:                   PassUnused,
		PassPosition:                 PassUnused,
		PassRoughness:                PassUnused,
		PassUV:                       PassUnused,
		PassMotion:                   PassUnused,
		PassMotionWeight:             PassUnused,
		PassObjectID:                 PassUnused,
		PassMaterialID:               PassUnused,
		PassMist:                     PassUnused,
		PassEmission:                 PassUnused,
		PassBackground:               PassUnused,
		PassAO:                       PassUnused,
		PassShadow:                   PassUnused,
		PassCryptomatte:              PassUnused,
		PassAOVColor:                 PassUnused,
		PassAOVValue:                 PassUnused,
		PassBakePrimitive:            PassUnused,
		PassBakeDifferential:         PassUnused,
		PassDiffuseColor:             PassUnused,
		PassGlossyColor:              PassUnused,
		PassTransmissionColor:        PassUnused,
		PassDiffuseDirect:            PassUnused,
		PassDiffuseIndirect:          PassUnused,
		PassGlossyDirect:             PassUnused,
		PassGlossyIndirect:           PassUnused,
		PassTransmissionDirect:       PassUnused,
		PassTransmissionIndirect:     PassUnused,
		PassVolumeDirect:             PassUnused,
		PassVolumeIndirect:           PassUnused,
		PassDenoisingNormal:          PassUnused,
		PassDenoisingAlbedo:          PassUnused,
		PassSampleCount:              PassUnused,
		PassAdaptiveAuxBuffer:        PassUnused,
		PassShadowCatcher:            PassUnused,
		PassShadowCatcherSampleCount: PassUnused,
		PassShadowCatcherMatte:       PassUnused,
		PassDenoisedDisplay:          PassUnused,
		FilterTableOffset:            PassUnused,
	}
}

// Data groups the kernel-facing configuration records of a scene.
type Data struct {
	Film Film
}
