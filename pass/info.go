package pass

import "fmt"

// Info describes how a pass kind is stored and which other passes it
// depends on.
type Info struct {
	// Number of float components per pixel.
	NumComponents int

	// Whether the pass is scaled by the film exposure when read back.
	UseExposure bool

	// Whether the kernel writes into this pass. Aggregate light passes
	// (diffuse, glossy, transmission, volume) are composed from their
	// direct/indirect counterparts and occupy no storage.
	IsWritten bool

	// Pass whose value divides this one on read back, or None.
	DivideKind Kind

	// Direct and indirect light contributions combined into this pass, or
	// None.
	DirectKind   Kind
	IndirectKind Kind

	// Whether the pass is assembled at read back instead of being read from
	// a single buffer slice.
	UseCompositing bool

	// Whether a denoised variant of the pass can be produced.
	SupportDenoise bool

	// Whether the denoiser needs the albedo pass when denoising this pass.
	UseDenoisingAlbedo bool
}

// GetInfo resolves the storage and dependency metadata of a pass kind.
//
// includeAlbedo selects whether light component passes (diffuse, glossy,
// transmission) carry the surface albedo; when they do not, they are divided
// by the matching color pass on read back.
func GetInfo(kind Kind, includeAlbedo bool) Info {
	info := Info{IsWritten: true}

	// Classify first so that kinds outside the enumerated ranges abort.
	if kind != None {
		kind.Category()
	}

	switch kind {
	case None:
		info.NumComponents = 0
		info.IsWritten = false
	case Combined:
		info.NumComponents = 4
		info.UseExposure = true
		info.SupportDenoise = true
	case Depth, Mist, Roughness, ObjectID, MaterialID, MotionWeight, RenderTime,
		SampleCount, ShadowCatcherSampleCount, AOVValue:
		info.NumComponents = 1
	case Normal, Position, UV, AO, Shadow, DiffuseColor, GlossyColor, TransmissionColor,
		DenoisingNormal, DenoisingAlbedo:
		info.NumComponents = 3
	case Motion, Cryptomatte, AdaptiveAuxBuffer, AOVColor, BakePrimitive, BakeDifferential:
		info.NumComponents = 4
	case Emission, Background:
		info.NumComponents = 3
		info.UseExposure = true
	case Diffuse, Glossy, Transmission:
		info.NumComponents = 3
		info.UseExposure = true
		info.DirectKind, info.IndirectKind = lightComponents(kind)
		if !includeAlbedo {
			info.DivideKind = colorKindFor(kind)
		}
		info.UseCompositing = true
		info.IsWritten = false
		info.UseDenoisingAlbedo = true
		info.SupportDenoise = true
	case DiffuseDirect, DiffuseIndirect, GlossyDirect, GlossyIndirect,
		TransmissionDirect, TransmissionIndirect:
		info.NumComponents = 3
		info.UseExposure = true
		if !includeAlbedo {
			info.DivideKind = colorKindFor(kind)
		}
		info.UseDenoisingAlbedo = true
		info.SupportDenoise = true
	case Volume:
		info.NumComponents = 3
		info.UseExposure = true
		info.DirectKind, info.IndirectKind = VolumeDirect, VolumeIndirect
		info.UseCompositing = true
		info.IsWritten = false
	case VolumeDirect, VolumeIndirect:
		info.NumComponents = 3
		info.UseExposure = true
	case ShadowCatcher:
		info.NumComponents = 3
		info.UseExposure = true
		info.UseCompositing = true
		info.SupportDenoise = true
	case ShadowCatcherMatte:
		info.NumComponents = 4
		info.UseExposure = true
		info.SupportDenoise = true
	default:
		panic(fmt.Sprintf("pass: no info defined for kind %s", kind))
	}

	return info
}

func lightComponents(kind Kind) (direct, indirect Kind) {
	switch kind {
	case Diffuse:
		return DiffuseDirect, DiffuseIndirect
	case Glossy:
		return GlossyDirect, GlossyIndirect
	case Transmission:
		return TransmissionDirect, TransmissionIndirect
	}
	return None, None
}

func colorKindFor(kind Kind) Kind {
	switch kind {
	case Diffuse, DiffuseDirect, DiffuseIndirect:
		return DiffuseColor
	case Glossy, GlossyDirect, GlossyIndirect:
		return GlossyColor
	case Transmission, TransmissionDirect, TransmissionIndirect:
		return TransmissionColor
	}
	return None
}
