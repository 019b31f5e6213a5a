package film

import (
	"github.com/achilleasa/filmpass/log"
	"github.com/achilleasa/filmpass/pass"
	"github.com/achilleasa/filmpass/scene"
)

// UpdatePasses rebuilds the auto generated passes of the scene from the
// current feature toggles and finalizes the pass list. User passes are never
// removed. When addSampleCountPass is set a sample count pass is guaranteed
// to exist.
//
// Scene managers are notified when the presence of the UV, motion or
// ambient occlusion pass changes relative to the previous call.
func (f *Film) UpdatePasses(s *scene.Scene, addSampleCountPass bool) {
	motionChanged := s.NeedMotion() != f.prevMotion
	if !f.modified && !motionChanged &&
		!s.ObjectManager.NeedUpdate() &&
		!s.Integrator.IsModified() &&
		!s.Background.IsModified() &&
		!s.BakeManager.IsModified() {
		return
	}

	s.Passes = pass.RemoveAuto(s.Passes)
	addAuto := func(kind pass.Kind, mode pass.Mode, name string) {
		s.Passes = append(s.Passes, pass.NewAuto(kind, mode, name))
	}

	// The renderer assumes that a combined pass always exists; adaptive
	// sampling for instance terminates on it.
	addAuto(f.displayPass, pass.Noisy, "")
	if f.displayPass != pass.Combined {
		addAuto(pass.Combined, pass.Noisy, "")
	}

	if s.Integrator.UseAdaptiveSampling() {
		addAuto(pass.SampleCount, pass.Noisy, "")
		addAuto(pass.AdaptiveAuxBuffer, pass.Noisy, "")
	}

	useDenoise := s.Integrator.UseDenoise()
	if useDenoise {
		if s.Integrator.UseDenoisePassNormal() {
			addAuto(pass.DenoisingNormal, pass.Noisy, "")
		}
		if s.Integrator.UseDenoisePassAlbedo() {
			addAuto(pass.DenoisingAlbedo, pass.Noisy, "")
		}
	}

	if s.HasShadowCatcher() {
		addAuto(pass.ShadowCatcher, pass.Noisy, "")
		addAuto(pass.ShadowCatcherSampleCount, pass.Noisy, "")
		addAuto(pass.ShadowCatcherMatte, pass.Noisy, "")

		if f.useApproximateShadowCatcher && !s.Background.Transparent() {
			addAuto(pass.Background, pass.Noisy, "")
		}
	} else if pass.Contains(s.Passes, pass.ShadowCatcher) {
		addAuto(pass.ShadowCatcher, pass.Noisy, "")
		addAuto(pass.ShadowCatcherSampleCount, pass.Noisy, "")
	}

	// Passes added below must not be scanned again.
	requested := append([]*pass.Pass(nil), s.Passes...)
	for _, p := range requested {
		info := p.Info()
		if info.DivideKind != pass.None {
			addAuto(info.DivideKind, pass.Noisy, "")
		}
		if info.DirectKind != pass.None {
			addAuto(info.DirectKind, pass.Noisy, "")
		}
		if info.IndirectKind != pass.None {
			addAuto(info.IndirectKind, pass.Noisy, "")
		}

		// Denoised storage is allocated for every denoisable pass so that
		// denoiser settings can change without a layout change.
		if info.SupportDenoise && useDenoise {
			addAuto(p.Kind, pass.Denoised, "")
		}
	}

	if s.BakeManager.Baking() {
		addAuto(pass.BakePrimitive, pass.Noisy, "BakePrimitive")
		addAuto(pass.BakeDifferential, pass.Noisy, "BakeDifferential")
	}

	if addSampleCountPass && !pass.Contains(s.Passes, pass.SampleCount) {
		addAuto(pass.SampleCount, pass.Noisy, "")
	}

	s.Passes = pass.Finalize(s.Passes, useDenoise)

	f.notifyPassPresence(s)
	f.prevMotion = s.NeedMotion()
	f.modified = true

	if log.IsEnabledFor("film", log.Debug) {
		logger.Debug("effective scene passes:")
		for _, p := range s.Passes {
			logger.Debugf("- %s", p)
		}
	}
}

func (f *Film) notifyPassPresence(s *scene.Scene) {
	haveUVPass := pass.Contains(s.Passes, pass.UV)
	haveMotionPass := pass.Contains(s.Passes, pass.Motion) && s.NeedMotion() == scene.MotionPass
	haveAOPass := pass.Contains(s.Passes, pass.AO)

	if haveUVPass != f.prevHaveUVPass {
		s.GeometryManager.TagUpdate(scene.UVPassNeeded)
		for _, shader := range s.Shaders {
			shader.NeedUpdateUVs = true
		}
	}
	if haveMotionPass != f.prevHaveMotionPass {
		s.GeometryManager.TagUpdate(scene.MotionPassNeeded)
	}
	if haveAOPass != f.prevHaveAOPass {
		s.Integrator.TagUpdate(scene.AOPassModified)
	}

	f.prevHaveUVPass = haveUVPass
	f.prevHaveMotionPass = haveMotionPass
	f.prevHaveAOPass = haveAOPass
}
