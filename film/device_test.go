package film

import (
	"errors"
	"math"
	"testing"

	"github.com/achilleasa/filmpass/device"
	"github.com/achilleasa/filmpass/kernel"
	"github.com/achilleasa/filmpass/lookup"
	"github.com/achilleasa/filmpass/pass"
	"github.com/achilleasa/filmpass/scene"
)

func TestCombinedOnlyLayout(t *testing.T) {
	f := NewFilm()
	s := newScene(t, pass.New(pass.Combined))

	dscene := update(t, f, s)

	layout := f.Layout()
	if len(layout.Entries) != 1 {
		t.Fatalf("expected 1 pass; got %d", len(layout.Entries))
	}
	e := layout.Entries[0]
	if e.Pass.Kind != pass.Combined || e.Offset != 0 || e.Components != 4 {
		t.Fatalf("expected combined at offset 0 with 4 components; got %s at %d with %d", e.Pass.Kind, e.Offset, e.Components)
	}
	if layout.Stride != 4 || dscene.Data.Film.PassStride != 4 {
		t.Fatalf("expected stride 4; got %d (kernel %d)", layout.Stride, dscene.Data.Film.PassStride)
	}
	if dscene.Data.Film.PassCombined != 0 {
		t.Fatalf("expected combined offset 0; got %d", dscene.Data.Film.PassCombined)
	}
	if exp := pass.Combined.FlagBit(); dscene.Data.Film.LightPassFlag != exp {
		t.Fatalf("expected light pass flag %b; got %b", exp, dscene.Data.Film.LightPassFlag)
	}
}

func TestOffsetsAreContiguous(t *testing.T) {
	specs := [][]*pass.Pass{
		{pass.New(pass.Combined)},
		{pass.New(pass.Combined), pass.New(pass.Depth), pass.New(pass.Normal), pass.New(pass.Mist)},
		{pass.New(pass.Diffuse), pass.New(pass.Glossy), pass.New(pass.Transmission), pass.New(pass.Volume)},
		{
			pass.NewNamed(pass.Cryptomatte, "CryptoObject00"),
			pass.NewNamed(pass.AOVValue, "V"),
			pass.NewNamed(pass.Cryptomatte, "CryptoObject01"),
			pass.NewNamed(pass.AOVColor, "C"),
			pass.New(pass.ObjectID),
		},
	}

	for specIndex, passes := range specs {
		f := NewFilm()
		s := newScene(t, passes...)
		s.Integrator.SetUseDenoise(true)
		s.Integrator.SetUseDenoisePassAlbedo(true)
		s.Integrator.SetUseAdaptiveSampling(true)
		s.ObjectManager.SetShadowCatcher(true)

		update(t, f, s)

		layout := f.Layout()
		next := 0
		for _, e := range layout.Stored() {
			if e.Offset != next {
				t.Fatalf("[spec %d] expected %s at offset %d; got %d", specIndex, e.Pass, next, e.Offset)
			}
			next += e.Components
		}
		if next != layout.Stride {
			t.Fatalf("[spec %d] expected stride %d; got %d", specIndex, next, layout.Stride)
		}
	}
}

func TestDenoisedPassesConsumeStride(t *testing.T) {
	f := NewFilm()
	glossy := pass.New(pass.GlossyDirect)
	glossy.IncludeAlbedo = true
	s := newScene(t, pass.New(pass.Combined), glossy)
	s.Integrator.SetUseDenoise(true)

	dscene := update(t, f, s)
	kfilm := dscene.Data.Film

	noisy, ok := f.Layout().Find(pass.Combined, pass.Noisy)
	if !ok {
		t.Fatal("expected a noisy combined pass")
	}
	denoised, ok := f.Layout().Find(pass.Combined, pass.Denoised)
	if !ok {
		t.Fatal("expected a denoised combined pass")
	}

	if int(kfilm.PassCombined) != noisy.Offset {
		t.Fatalf("expected combined offset field to point at the noisy pass (%d); got %d", noisy.Offset, kfilm.PassCombined)
	}
	if int(kfilm.PassDenoisedDisplay) != denoised.Offset {
		t.Fatalf("expected denoised display offset %d; got %d", denoised.Offset, kfilm.PassDenoisedDisplay)
	}

	// Glossy direct is not the display pass so its denoised variant only
	// takes up storage.
	if _, ok := f.Layout().Find(pass.GlossyDirect, pass.Denoised); !ok {
		t.Fatal("expected storage for the denoised glossy direct pass")
	}
	if kfilm.PassStride != 4+4+3+3 {
		t.Fatalf("expected stride 14; got %d", kfilm.PassStride)
	}
}

func TestCryptomatteUsesMinimumOffset(t *testing.T) {
	f := NewFilm()
	s := newScene(t,
		pass.New(pass.Combined),
		pass.NewNamed(pass.Cryptomatte, "CryptoObject00"),
		pass.NewNamed(pass.Cryptomatte, "CryptoObject01"),
		pass.NewNamed(pass.Cryptomatte, "CryptoObject02"),
	)
	f.SetCryptomattePasses(kernel.CryptObject)
	f.SetCryptomatteDepth(6)

	dscene := update(t, f, s)
	kfilm := dscene.Data.Film

	minOffset, names := -1, []string{}
	for _, e := range f.Layout().Stored() {
		if e.Pass.Kind != pass.Cryptomatte {
			continue
		}
		names = append(names, e.Pass.Name)
		if minOffset == -1 || e.Offset < minOffset {
			minOffset = e.Offset
		}
	}

	if int(kfilm.PassCryptomatte) != minOffset {
		t.Fatalf("expected cryptomatte offset %d; got %d", minOffset, kfilm.PassCryptomatte)
	}
	exp := []string{"CryptoObject00", "CryptoObject01", "CryptoObject02"}
	for i := range exp {
		if names[i] != exp[i] {
			t.Fatalf("expected cryptomatte layers in request order %v; got %v", exp, names)
		}
	}
	if kfilm.CryptomattePasses != kernel.CryptObject || kfilm.CryptomatteDepth != 6 {
		t.Fatalf("expected cryptomatte settings to be copied; got %d/%d", kfilm.CryptomattePasses, kfilm.CryptomatteDepth)
	}
}

func TestNamedAOVs(t *testing.T) {
	f := NewFilm()
	s := newScene(t,
		pass.New(pass.Combined),
		pass.NewNamed(pass.AOVColor, "A"),
		pass.NewNamed(pass.AOVColor, "B"),
		pass.NewNamed(pass.AOVValue, "V"),
	)

	dscene := update(t, f, s)
	kfilm := dscene.Data.Film

	a, okA := f.Layout().FindByName("A")
	b, okB := f.Layout().FindByName("B")
	if !okA || !okB {
		t.Fatal("expected both named AOVs to survive finalization")
	}
	if int(kfilm.PassAOVColor) != a.Offset {
		t.Fatalf("expected AOV color base at %d; got %d", a.Offset, kfilm.PassAOVColor)
	}
	if b.Offset != a.Offset+4 {
		t.Fatalf("expected AOV B to follow A; got A at %d, B at %d", a.Offset, b.Offset)
	}

	specs := []struct {
		name    string
		offset  int
		isColor bool
		ok      bool
	}{
		{"A", 0, true, true},
		{"B", 4, true, true},
		{"V", 0, false, true},
		{"missing", -1, false, false},
	}
	for _, spec := range specs {
		offset, isColor, ok := f.AOVOffset(s, spec.name)
		if offset != spec.offset || isColor != spec.isColor || ok != spec.ok {
			t.Errorf("expected AOV %q at (%d, %t, %t); got (%d, %t, %t)",
				spec.name, spec.offset, spec.isColor, spec.ok, offset, isColor, ok)
		}
	}
}

func TestPassFlags(t *testing.T) {
	f := NewFilm()
	s := newScene(t, pass.New(pass.Combined), pass.New(pass.Depth), pass.New(pass.AO))
	s.BakeManager.SetBaking(true)

	dscene := update(t, f, s)
	kfilm := dscene.Data.Film

	expLight := pass.Combined.FlagBit() | pass.AO.FlagBit()
	if kfilm.LightPassFlag != expLight {
		t.Fatalf("expected light pass flag %b; got %b", expLight, kfilm.LightPassFlag)
	}
	expData := pass.Depth.FlagBit()
	if kfilm.PassFlag != expData {
		t.Fatalf("expected pass flag %b; got %b", expData, kfilm.PassFlag)
	}
	if kfilm.PassBakePrimitive < 0 || kfilm.PassBakeDifferential < 0 {
		t.Fatal("expected bake passes to have offsets")
	}
}

func TestKernelFilmIsRebuilt(t *testing.T) {
	f := NewFilm()
	s := newScene(t, pass.New(pass.Combined), pass.New(pass.Depth))
	dscene := device.NewScene()

	f.UpdatePasses(s, false)
	if err := f.DeviceUpdate(dscene, s); err != nil {
		t.Fatal(err)
	}
	if dscene.Data.Film.PassDepth == kernel.PassUnused {
		t.Fatal("expected depth offset to be set")
	}

	s.Passes = s.Passes[:0]
	f.TagModified()
	f.UpdatePasses(s, false)
	if err := f.DeviceUpdate(dscene, s); err != nil {
		t.Fatal(err)
	}
	if dscene.Data.Film.PassDepth != kernel.PassUnused {
		t.Fatalf("expected stale depth offset to be cleared; got %d", dscene.Data.Film.PassDepth)
	}
}

func TestMistParameters(t *testing.T) {
	specs := []struct {
		depth  float32
		expInv float32
	}{
		{100, 0.01},
		{0, 0},
		{-5, 0},
	}

	for specIndex, spec := range specs {
		f := NewFilm()
		f.SetMistStart(2)
		f.SetMistDepth(spec.depth)
		f.SetMistFalloff(0.5)
		dscene := update(t, f, newScene(t))

		kfilm := dscene.Data.Film
		if math.Abs(float64(kfilm.MistInvDepth-spec.expInv)) > 1e-6 {
			t.Errorf("[spec %d] expected inverse depth %f; got %f", specIndex, spec.expInv, kfilm.MistInvDepth)
		}
		if kfilm.MistStart != 2 || kfilm.MistFalloff != 0.5 {
			t.Errorf("[spec %d] expected mist start/falloff to be copied", specIndex)
		}
	}
}

func TestFilterTableRegistration(t *testing.T) {
	f := NewFilm()
	s := newScene(t, pass.New(pass.Combined))
	dscene := device.NewScene()

	// Another owner holds the first table slot.
	other, err := s.LookupTables.AddTable(dscene, []float32{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}

	f.UpdatePasses(s, false)
	if err := f.DeviceUpdate(dscene, s); err != nil {
		t.Fatal(err)
	}
	first := f.FilterTableOffset()
	if first == lookup.InvalidOffset || int32(first) != dscene.Data.Film.FilterTableOffset {
		t.Fatalf("expected kernel filter table offset to match handle %d; got %d", first, dscene.Data.Film.FilterTableOffset)
	}
	if s.LookupTables.Count() != 2 {
		t.Fatalf("expected 2 registered tables; got %d", s.LookupTables.Count())
	}

	table := dscene.LookupTables.Data()[int(first) : int(first)+kernel.FilterTableSize]
	exp := FilterTable(FilterBox, 1)
	for i := range exp {
		if table[i] != exp[i] {
			t.Fatalf("expected filter table entry %d to be %f; got %f", i, exp[i], table[i])
		}
	}

	// Changing the filter releases the old table before registering a new
	// one.
	f.SetFilterType(FilterGaussian)
	if err := f.DeviceUpdate(dscene, s); err != nil {
		t.Fatal(err)
	}
	if s.LookupTables.Count() != 2 {
		t.Fatalf("expected the old filter table to be released; got %d tables", s.LookupTables.Count())
	}
	if f.FilterTableOffset() != first {
		t.Fatalf("expected the new table to reuse the released range at %d; got %d", first, f.FilterTableOffset())
	}

	f.DeviceFree(s)
	f.DeviceFree(s)
	if f.FilterTableOffset() != lookup.InvalidOffset || s.LookupTables.Count() != 1 {
		t.Fatal("expected device free to release the filter table exactly once")
	}
	s.LookupTables.RemoveTable(&other)
}

func TestDeviceUpdateRegistrationFailure(t *testing.T) {
	f := NewFilm()
	s := newScene(t, pass.New(pass.Combined))
	s.LookupTables = lookup.NewTables(kernel.FilterTableSize / 2)
	dscene := device.NewScene()
	prev := dscene.Data.Film

	f.UpdatePasses(s, false)
	err := f.DeviceUpdate(dscene, s)
	if !errors.Is(err, lookup.ErrPoolExhausted) {
		t.Fatalf("expected ErrPoolExhausted; got %v", err)
	}
	if dscene.Data.Film != prev {
		t.Fatal("expected kernel film to stay untouched after a failed update")
	}
	if !f.IsModified() {
		t.Fatal("expected the film to stay modified so the update is retried")
	}
	if f.FilterTableOffset() != lookup.InvalidOffset {
		t.Fatal("expected no filter table handle after a failed registration")
	}
	if len(f.Layout().Entries) != 0 {
		t.Fatal("expected no layout to be published")
	}
}

func TestDeviceUpdateSkippedWhenUnmodified(t *testing.T) {
	f := NewFilm()
	s := newScene(t, pass.New(pass.Combined))
	dscene := update(t, f, s)

	dscene.Data.Film.Exposure = 42
	if err := f.DeviceUpdate(dscene, s); err != nil {
		t.Fatal(err)
	}
	if dscene.Data.Film.Exposure != 42 {
		t.Fatal("expected an unmodified film to leave the kernel film alone")
	}

	f.SetExposure(1.5)
	if err := f.DeviceUpdate(dscene, s); err != nil {
		t.Fatal(err)
	}
	if dscene.Data.Film.Exposure != 1.5 {
		t.Fatalf("expected exposure 1.5; got %f", dscene.Data.Film.Exposure)
	}
}

func TestKernelFeatures(t *testing.T) {
	specs := []struct {
		passes  []pass.Kind
		denoise bool
		exp     kernel.Feature
	}{
		{[]pass.Kind{pass.Combined}, false, 0},
		{[]pass.Kind{pass.Combined}, true, kernel.FeatureDenoising},
		{[]pass.Kind{pass.Emission}, false, kernel.FeatureLightPasses},
		{[]pass.Kind{pass.Shadow}, false, kernel.FeatureLightPasses | kernel.FeatureShadowPass},
		{[]pass.Kind{pass.AO}, false, kernel.FeatureLightPasses | kernel.FeatureNodeRaytrace},
		{[]pass.Kind{pass.Depth, pass.Normal}, false, 0},
	}

	for specIndex, spec := range specs {
		f := NewFilm()
		s := newScene(t)
		for _, kind := range spec.passes {
			_ = s.AddPass(pass.New(kind))
		}
		s.Integrator.SetUseDenoise(spec.denoise)

		f.UpdatePasses(s, false)
		if got := f.KernelFeatures(s); got != spec.exp {
			t.Errorf("[spec %d] expected features %s; got %s", specIndex, spec.exp, got)
		}
	}
}

func TestActualDisplayPass(t *testing.T) {
	f := NewFilm()
	s := newScene(t, pass.New(pass.Combined), pass.New(pass.Depth))
	f.UpdatePasses(s, false)

	if p := f.ActualDisplayPass(s, pass.Depth, pass.Denoised); p == nil || p.Kind != pass.Depth || p.Mode != pass.Noisy {
		t.Fatalf("expected fallback to the noisy depth pass; got %v", p)
	}
	if p := f.ActualDisplayPass(s, pass.Mist, pass.Noisy); p != nil {
		t.Fatalf("expected no display pass for a missing kind; got %v", p)
	}
	if p := f.ActualDisplayPass(s, pass.Combined, pass.Noisy); p == nil || p.Kind != pass.Combined {
		t.Fatalf("expected the combined pass; got %v", p)
	}

	s.ObjectManager.SetShadowCatcher(true)
	f.UpdatePasses(s, false)
	if p := f.ActualDisplayPass(s, pass.Combined, pass.Noisy); p == nil || p.Kind != pass.ShadowCatcherMatte {
		t.Fatalf("expected the shadow catcher matte to replace combined; got %v", p)
	}
}

func TestOffsetFieldCoversEveryKind(t *testing.T) {
	var kfilm kernel.Film
	seen := make(map[*int32]pass.Kind)

	for _, kind := range pass.Kinds() {
		field := offsetField(&kfilm, kind)

		info := pass.GetInfo(kind, false)
		if field == nil {
			if info.IsWritten && kind != pass.RenderTime {
				t.Errorf("expected written kind %s to have an offset field", kind)
			}
			continue
		}
		if other, ok := seen[field]; ok {
			t.Errorf("kinds %s and %s share an offset field", other, kind)
		}
		seen[field] = kind
	}
}

func TestOffsetFieldPanicsOnUnknownKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a kind without an offset field")
		}
	}()
	var kfilm kernel.Film
	offsetField(&kfilm, pass.None)
}

func TestMotionPassesExcludedFromStride(t *testing.T) {
	specs := []struct {
		motion    scene.MotionType
		expStride int32
	}{
		{scene.MotionNone, 4},
		{scene.MotionBlur, 4},
		{scene.MotionPass, 4 + 4 + 1},
	}

	for specIndex, spec := range specs {
		f := NewFilm()
		s := newScene(t, pass.New(pass.Combined), pass.New(pass.Motion), pass.New(pass.MotionWeight))
		s.Motion = spec.motion

		dscene := update(t, f, s)
		if got := dscene.Data.Film.PassStride; got != spec.expStride {
			t.Errorf("[spec %d] expected stride %d; got %d", specIndex, spec.expStride, got)
		}
		if spec.motion != scene.MotionPass && dscene.Data.Film.PassMotionWeight != kernel.PassUnused {
			t.Errorf("[spec %d] expected motion weight to be unused", specIndex)
		}
	}
}
