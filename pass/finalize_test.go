package pass

import (
	"reflect"
	"testing"
)

func TestFinalizeMergesDuplicates(t *testing.T) {
	passes := []*Pass{
		New(Combined),
		NewAuto(Combined, Noisy, ""),
		New(Depth),
		NewAuto(Depth, Noisy, ""),
	}

	out := Finalize(passes, false)
	if len(out) != 2 {
		t.Fatalf("expected 2 passes after merging; got %d", len(out))
	}
	for _, p := range out {
		if p.IsAuto() {
			t.Fatalf("expected merged pass %s to keep user ownership", p)
		}
	}
}

func TestFinalizeAutoFlagIsConjunction(t *testing.T) {
	out := Finalize([]*Pass{NewAuto(Mist, Noisy, ""), NewAuto(Mist, Noisy, "")}, false)
	if len(out) != 1 || !out[0].IsAuto() {
		t.Fatalf("expected a single auto mist pass; got %v", out)
	}

	out = Finalize([]*Pass{NewAuto(Mist, Noisy, ""), New(Mist)}, false)
	if len(out) != 1 || out[0].IsAuto() {
		t.Fatalf("expected merging with a user pass to clear the auto flag; got %v", out)
	}
}

func TestFinalizeNames(t *testing.T) {
	a := NewNamed(AOVColor, "A")
	b := NewNamed(AOVColor, "B")
	unnamed := New(AOVColor)

	out := Finalize([]*Pass{unnamed, a, b}, false)
	if len(out) != 2 {
		t.Fatalf("expected 2 aov passes; got %d", len(out))
	}
	if out[0] != unnamed || out[0].Name != "A" {
		t.Fatalf("expected unnamed pass to inherit name A; got %s", out[0])
	}
	if out[1] != b {
		t.Fatalf("expected pass B to survive as a distinct entry; got %s", out[1])
	}
}

func TestFinalizeDistinctNamedPasses(t *testing.T) {
	out := Finalize([]*Pass{NewNamed(AOVColor, "A"), NewNamed(AOVColor, "B")}, false)
	if len(out) != 2 || out[0].Name != "A" || out[1].Name != "B" {
		t.Fatalf("expected both named aov passes in request order; got %v", out)
	}
}

func TestFinalizeDenoiseModes(t *testing.T) {
	combined := &Pass{Kind: Combined, Mode: Denoised}
	depth := &Pass{Kind: Depth, Mode: Denoised}

	out := Finalize([]*Pass{combined, depth}, true)
	if combined.Mode != Denoised {
		t.Fatal("expected combined to keep denoised mode when denoising is enabled")
	}
	if depth.Mode != Noisy {
		t.Fatal("expected depth to be forced to noisy mode")
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 passes; got %d", len(out))
	}

	out = Finalize([]*Pass{New(Combined), {Kind: Combined, Mode: Denoised}}, false)
	for _, p := range out {
		if p.Mode == Denoised {
			t.Fatalf("expected no denoised passes with denoising disabled; got %s", p)
		}
	}
	if len(out) != 1 {
		t.Fatalf("expected denoised combined to merge into noisy combined; got %d passes", len(out))
	}
}

func TestFinalizeOrdering(t *testing.T) {
	crypto0 := NewNamed(Cryptomatte, "CryptoObject00")
	crypto1 := NewNamed(Cryptomatte, "CryptoObject01")
	crypto2 := NewNamed(Cryptomatte, "CryptoMaterial00")

	out := Finalize([]*Pass{
		New(Depth),
		crypto0,
		New(Normal),
		crypto1,
		New(Combined),
		crypto2,
	}, false)

	var got []Kind
	for _, p := range out {
		got = append(got, p.Kind)
	}
	exp := []Kind{Combined, Cryptomatte, Cryptomatte, Cryptomatte, Normal, Depth}
	if !reflect.DeepEqual(got, exp) {
		t.Fatalf("expected order %v; got %v", exp, got)
	}

	if out[1] != crypto0 || out[2] != crypto1 || out[3] != crypto2 {
		t.Fatal("expected cryptomatte passes to keep their requested order")
	}
}

func TestFinalizeIsIdempotent(t *testing.T) {
	passes := []*Pass{
		NewNamed(AOVValue, "x"),
		New(Combined),
		NewAuto(Combined, Denoised, ""),
		New(UV),
		NewNamed(AOVValue, "y"),
		New(AOVValue),
		NewAuto(SampleCount, Noisy, ""),
		NewAuto(AdaptiveAuxBuffer, Noisy, ""),
	}

	first := Finalize(passes, true)
	snapshot := make([]Pass, len(first))
	for i, p := range first {
		snapshot[i] = *p
	}

	second := Finalize(first, true)
	if len(second) != len(first) {
		t.Fatalf("expected %d passes after second finalize; got %d", len(first), len(second))
	}
	for i, p := range second {
		if p != first[i] || *p != snapshot[i] {
			t.Fatalf("pass %d changed after second finalize: %s -> %s", i, &snapshot[i], p)
		}
	}
}

func TestRemoveAuto(t *testing.T) {
	user := New(Depth)
	out := RemoveAuto([]*Pass{NewAuto(Combined, Noisy, ""), user, NewAuto(Mist, Noisy, "")})
	if len(out) != 1 || out[0] != user {
		t.Fatalf("expected only the user pass to remain; got %v", out)
	}
}

func TestFindAndContains(t *testing.T) {
	passes := []*Pass{New(Combined), {Kind: Combined, Mode: Denoised, Name: "den"}, NewNamed(AOVColor, "A")}

	if p := Find(passes, Combined, Denoised); p == nil || p.Name != "den" {
		t.Fatalf("expected to find the denoised combined pass; got %v", p)
	}
	if p := Find(passes, Depth, Noisy); p != nil {
		t.Fatalf("expected no depth pass; got %s", p)
	}
	if p := FindByName(passes, "A"); p == nil || p.Kind != AOVColor {
		t.Fatalf("expected to find aov A; got %v", p)
	}
	if !Contains(passes, AOVColor) || Contains(passes, Mist) {
		t.Fatal("Contains returned unexpected results")
	}
}
