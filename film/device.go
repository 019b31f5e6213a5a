package film

import (
	"fmt"

	"github.com/achilleasa/filmpass/device"
	"github.com/achilleasa/filmpass/kernel"
	"github.com/achilleasa/filmpass/pass"
	"github.com/achilleasa/filmpass/scene"
)

// DeviceUpdate rebuilds the kernel film configuration from the finalized
// scene passes and registers a fresh filter table. It does nothing unless
// the film is modified.
//
// If the filter table cannot be registered the error is returned and the
// kernel film configuration of dscene is left untouched.
func (f *Film) DeviceUpdate(dscene *device.Scene, s *scene.Scene) error {
	if !f.modified {
		return nil
	}

	kfilm := kernel.NewFilm()
	kfilm.Exposure = f.exposure
	kfilm.PassAlphaThreshold = f.passAlphaThreshold
	kfilm.UseApproximateShadowCatcher = f.useApproximateShadowCatcher

	layout := buildLayout(s.Passes, f.displayPass, s.NeedMotion() == scene.MotionPass, &kfilm)

	table := FilterTable(f.filterType, f.filterWidth)
	s.LookupTables.RemoveTable(&f.filterTableOffset)
	offset, err := s.LookupTables.AddTable(dscene, table)
	if err != nil {
		return fmt.Errorf("film: unable to register %s filter table: %w", f.filterType, err)
	}
	f.filterTableOffset = offset
	kfilm.FilterTableOffset = int32(offset)

	kfilm.MistStart = f.mistStart
	kfilm.MistInvDepth = 0
	if f.mistDepth > 0 {
		kfilm.MistInvDepth = 1 / f.mistDepth
	}
	kfilm.MistFalloff = f.mistFalloff

	kfilm.CryptomattePasses = f.cryptomattePasses
	kfilm.CryptomatteDepth = int32(f.cryptomatteDepth)

	dscene.Data.Film = kfilm
	f.layout = layout
	f.modified = false

	logger.Infof("updated film: %d passes, stride %d, filter table at %d, features: %s",
		len(layout.Stored()), layout.Stride, offset, f.KernelFeatures(s))
	return nil
}

// DeviceFree releases the filter table. It is safe to call more than once.
func (f *Film) DeviceFree(s *scene.Scene) {
	s.LookupTables.RemoveTable(&f.filterTableOffset)
}

// KernelFeatures returns the optional kernel features required by the
// written scene passes.
func (f *Film) KernelFeatures(s *scene.Scene) kernel.Feature {
	var features kernel.Feature

	for _, p := range s.Passes {
		if !p.IsWritten() {
			continue
		}

		if p.Mode == pass.Denoised || p.Kind == pass.DenoisingNormal || p.Kind == pass.DenoisingAlbedo {
			features |= kernel.FeatureDenoising
		}

		if p.Kind != pass.None && p.Kind != pass.Combined && p.Kind <= pass.CategoryLightEnd {
			features |= kernel.FeatureLightPasses
			if p.Kind == pass.Shadow {
				features |= kernel.FeatureShadowPass
			}
		}

		if p.Kind == pass.AO {
			features |= kernel.FeatureNodeRaytrace
		}
	}

	return features
}

// AOVOffset returns the offset of the named AOV relative to the first AOV of
// the same category, and whether it is a color AOV.
func (f *Film) AOVOffset(s *scene.Scene, name string) (offset int, isColor bool, ok bool) {
	var colorOffset, valueOffset int
	for _, p := range s.Passes {
		if p.Name == name {
			switch p.Kind {
			case pass.AOVValue:
				return valueOffset, false, true
			case pass.AOVColor:
				return colorOffset, true, true
			}
		}

		switch p.Kind {
		case pass.AOVValue:
			valueOffset += p.Info().NumComponents
		case pass.AOVColor:
			colorOffset += p.Info().NumComponents
		}
	}
	return -1, false, false
}

// ActualDisplayPass returns the pass that is shown for the requested kind
// and mode. A missing denoised pass falls back to the noisy one; the
// combined pass is replaced by the shadow catcher matte when the scene has
// a shadow catcher.
func (f *Film) ActualDisplayPass(s *scene.Scene, kind pass.Kind, mode pass.Mode) *pass.Pass {
	p := pass.Find(s.Passes, kind, mode)
	if p == nil && mode == pass.Denoised {
		p = pass.Find(s.Passes, kind, pass.Noisy)
	}
	if p == nil {
		return nil
	}

	if p.Kind == pass.Combined && s.HasShadowCatcher() {
		if matte := pass.Find(s.Passes, pass.ShadowCatcherMatte, p.Mode); matte != nil {
			p = matte
		}
	}
	return p
}

