package film

import (
	"fmt"

	"github.com/achilleasa/filmpass/kernel"
	"github.com/achilleasa/filmpass/pass"
)

// Entry is a finalized pass and its place in a pixel record.
type Entry struct {
	Pass *pass.Pass

	// Offset in float components from the start of the pixel record, or
	// kernel.PassUnused if the pass occupies no storage.
	Offset int

	Components int
}

// Layout is the finalized pass list with per pass offsets.
type Layout struct {
	Entries []Entry

	// Number of float components per pixel.
	Stride int
}

// Find returns the stored entry for the given kind and mode.
func (l Layout) Find(kind pass.Kind, mode pass.Mode) (Entry, bool) {
	for _, e := range l.Entries {
		if e.Pass.Kind == kind && e.Pass.Mode == mode && e.Offset != int(kernel.PassUnused) {
			return e, true
		}
	}
	return Entry{}, false
}

// FindByName returns the stored entry for a named pass.
func (l Layout) FindByName(name string) (Entry, bool) {
	for _, e := range l.Entries {
		if e.Pass.Name == name && e.Offset != int(kernel.PassUnused) {
			return e, true
		}
	}
	return Entry{}, false
}

// Stored returns the entries that occupy storage, in offset order.
func (l Layout) Stored() []Entry {
	out := make([]Entry, 0, len(l.Entries))
	for _, e := range l.Entries {
		if e.Offset != int(kernel.PassUnused) {
			out = append(out, e)
		}
	}
	return out
}

// offsetField returns the kernel film field that holds the offset of kind,
// or nil for kinds the kernel never addresses directly. Every enumerated
// kind must be listed.
func offsetField(kfilm *kernel.Film, kind pass.Kind) *int32 {
	switch kind {
	case pass.Combined:
		return &kfilm.PassCombined
	case pass.Emission:
		return &kfilm.PassEmission
	case pass.Background:
		return &kfilm.PassBackground
	case pass.AO:
		return &kfilm.PassAO
	case pass.Shadow:
		return &kfilm.PassShadow
	case pass.DiffuseDirect:
		return &kfilm.PassDiffuseDirect
	case pass.DiffuseIndirect:
		return &kfilm.PassDiffuseIndirect
	case pass.GlossyDirect:
		return &kfilm.PassGlossyDirect
	case pass.GlossyIndirect:
		return &kfilm.PassGlossyIndirect
	case pass.TransmissionDirect:
		return &kfilm.PassTransmissionDirect
	case pass.TransmissionIndirect:
		return &kfilm.PassTransmissionIndirect
	case pass.VolumeDirect:
		return &kfilm.PassVolumeDirect
	case pass.VolumeIndirect:
		return &kfilm.PassVolumeIndirect

	// Composed at output time from their direct, indirect and color passes.
	case pass.Diffuse, pass.Glossy, pass.Transmission, pass.Volume:
		return nil

	case pass.Depth:
		return &kfilm.PassDepth
	case pass.Position:
		return &kfilm.PassPosition
	case pass.Normal:
		return &kfilm.PassNormal
	case pass.Roughness:
		return &kfilm.PassRoughness
	case pass.UV:
		return &kfilm.PassUV
	case pass.ObjectID:
		return &kfilm.PassObjectID
	case pass.MaterialID:
		return &kfilm.PassMaterialID
	case pass.Motion:
		return &kfilm.PassMotion
	case pass.MotionWeight:
		return &kfilm.PassMotionWeight
	case pass.RenderTime:
		return nil
	case pass.Cryptomatte:
		return &kfilm.PassCryptomatte
	case pass.AOVColor:
		return &kfilm.PassAOVColor
	case pass.AOVValue:
		return &kfilm.PassAOVValue
	case pass.AdaptiveAuxBuffer:
		return &kfilm.PassAdaptiveAuxBuffer
	case pass.SampleCount:
		return &kfilm.PassSampleCount
	case pass.DiffuseColor:
		return &kfilm.PassDiffuseColor
	case pass.GlossyColor:
		return &kfilm.PassGlossyColor
	case pass.TransmissionColor:
		return &kfilm.PassTransmissionColor
	case pass.Mist:
		return &kfilm.PassMist
	case pass.DenoisingNormal:
		return &kfilm.PassDenoisingNormal
	case pass.DenoisingAlbedo:
		return &kfilm.PassDenoisingAlbedo
	case pass.ShadowCatcher:
		return &kfilm.PassShadowCatcher
	case pass.ShadowCatcherSampleCount:
		return &kfilm.PassShadowCatcherSampleCount
	case pass.ShadowCatcherMatte:
		return &kfilm.PassShadowCatcherMatte

	case pass.BakePrimitive:
		return &kfilm.PassBakePrimitive
	case pass.BakeDifferential:
		return &kfilm.PassBakeDifferential
	}

	panic(fmt.Sprintf("film: no offset field for pass kind %s", kind))
}

// buildLayout walks the finalized passes once and assigns offsets. It fills
// the pass offsets, flags and stride of kfilm.
func buildLayout(passes []*pass.Pass, displayPass pass.Kind, motionPass bool, kfilm *kernel.Film) Layout {
	layout := Layout{Entries: make([]Entry, 0, len(passes))}

	var (
		stride          int32
		haveCryptomatte bool
		haveAOVColor    bool
		haveAOVValue    bool
	)

	for _, p := range passes {
		entry := Entry{Pass: p, Offset: int(kernel.PassUnused), Components: p.Info().NumComponents}

		if p.Kind == pass.None || !p.IsWritten() {
			layout.Entries = append(layout.Entries, entry)
			continue
		}

		// Denoised variants get storage but no offset field; the output stage
		// locates them next to their noisy pass. The display pass is read back
		// by the viewer so its denoised offset is kept.
		if p.Mode == pass.Denoised {
			if p.Kind == displayPass {
				kfilm.PassDenoisedDisplay = stride
			}
			entry.Offset = int(stride)
			stride += int32(entry.Components)
			layout.Entries = append(layout.Entries, entry)
			continue
		}

		// No motion vectors are available outside of motion pass mode.
		if (p.Kind == pass.Motion || p.Kind == pass.MotionWeight) && !motionPass {
			layout.Entries = append(layout.Entries, entry)
			continue
		}

		switch p.Kind.Category() {
		case pass.LightCategory:
			kfilm.LightPassFlag |= p.Kind.FlagBit()
		case pass.DataCategory:
			kfilm.PassFlag |= p.Kind.FlagBit()
		}

		field := offsetField(kfilm, p.Kind)
		switch p.Kind {
		case pass.Cryptomatte:
			if !haveCryptomatte || stride < *field {
				*field = stride
			}
			haveCryptomatte = true
		case pass.AOVColor:
			if !haveAOVColor {
				*field = stride
				haveAOVColor = true
			}
		case pass.AOVValue:
			if !haveAOVValue {
				*field = stride
				haveAOVValue = true
			}
		default:
			if field != nil {
				*field = stride
			}
		}

		entry.Offset = int(stride)
		stride += int32(entry.Components)
		layout.Entries = append(layout.Entries, entry)
	}

	kfilm.PassStride = stride
	layout.Stride = int(stride)
	return layout
}
