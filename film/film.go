// Package film decides which render passes are active, lays them out in the
// interleaved render buffer and publishes the layout to the kernel film
// configuration.
package film

import (
	"github.com/achilleasa/filmpass/kernel"
	"github.com/achilleasa/filmpass/log"
	"github.com/achilleasa/filmpass/lookup"
	"github.com/achilleasa/filmpass/pass"
	"github.com/achilleasa/filmpass/scene"
)

var logger = log.New("film")

// Film stores the film parameters and the state carried between pass
// updates. Parameter setters tag the film modified only when the value
// changes.
type Film struct {
	exposure           float32
	passAlphaThreshold float32

	filterType  FilterType
	filterWidth float32

	mistStart   float32
	mistDepth   float32
	mistFalloff float32

	displayPass      pass.Kind
	showActivePixels bool

	cryptomattePasses kernel.CryptomatteType
	cryptomatteDepth  int

	useApproximateShadowCatcher bool

	modified bool

	// Handle of the filter table in the scene lookup tables.
	filterTableOffset lookup.Offset

	// Layout computed by the last successful device update.
	layout Layout

	// Pass presence seen by the previous UpdatePasses call.
	prevHaveUVPass     bool
	prevHaveMotionPass bool
	prevHaveAOPass     bool
	prevMotion         scene.MotionType
}

// Create a film with default parameters. A new film is modified so the
// first update always runs.
func NewFilm() *Film {
	return &Film{
		exposure:          0.8,
		filterType:        FilterBox,
		filterWidth:       1,
		mistDepth:         100,
		mistFalloff:       1,
		displayPass:       pass.Combined,
		modified:          true,
		filterTableOffset: lookup.InvalidOffset,
	}
}

// AddDefault adds a user combined pass to the scene.
func AddDefault(s *scene.Scene) error {
	return s.AddPass(pass.New(pass.Combined))
}

func (f *Film) IsModified() bool { return f.modified }

// TagModified forces the next UpdatePasses and DeviceUpdate calls to run.
// Callers must tag the film after editing the scene's user passes.
func (f *Film) TagModified() { f.modified = true }

func (f *Film) Exposure() float32                 { return f.exposure }
func (f *Film) PassAlphaThreshold() float32       { return f.passAlphaThreshold }
func (f *Film) FilterType() FilterType            { return f.filterType }
func (f *Film) FilterWidth() float32              { return f.filterWidth }
func (f *Film) MistStart() float32                { return f.mistStart }
func (f *Film) MistDepth() float32                { return f.mistDepth }
func (f *Film) MistFalloff() float32              { return f.mistFalloff }
func (f *Film) DisplayPass() pass.Kind            { return f.displayPass }
func (f *Film) ShowActivePixels() bool            { return f.showActivePixels }
func (f *Film) CryptomatteDepth() int             { return f.cryptomatteDepth }
func (f *Film) UseApproximateShadowCatcher() bool { return f.useApproximateShadowCatcher }

func (f *Film) CryptomattePasses() kernel.CryptomatteType {
	return f.cryptomattePasses
}

// FilterTableOffset returns the handle of the registered filter table or
// lookup.InvalidOffset.
func (f *Film) FilterTableOffset() lookup.Offset { return f.filterTableOffset }

// Layout returns the pass layout computed by the last device update.
func (f *Film) Layout() Layout { return f.layout }

func setValue[T comparable](dst *T, v T, modified *bool) {
	if *dst != v {
		*dst = v
		*modified = true
	}
}

func (f *Film) SetExposure(v float32)           { setValue(&f.exposure, v, &f.modified) }
func (f *Film) SetPassAlphaThreshold(v float32) { setValue(&f.passAlphaThreshold, v, &f.modified) }
func (f *Film) SetFilterType(v FilterType)      { setValue(&f.filterType, v, &f.modified) }
func (f *Film) SetFilterWidth(v float32)        { setValue(&f.filterWidth, v, &f.modified) }
func (f *Film) SetMistStart(v float32)          { setValue(&f.mistStart, v, &f.modified) }
func (f *Film) SetMistDepth(v float32)          { setValue(&f.mistDepth, v, &f.modified) }
func (f *Film) SetMistFalloff(v float32)        { setValue(&f.mistFalloff, v, &f.modified) }
func (f *Film) SetDisplayPass(v pass.Kind)      { setValue(&f.displayPass, v, &f.modified) }
func (f *Film) SetShowActivePixels(v bool)      { setValue(&f.showActivePixels, v, &f.modified) }
func (f *Film) SetCryptomatteDepth(v int)       { setValue(&f.cryptomatteDepth, v, &f.modified) }

func (f *Film) SetCryptomattePasses(v kernel.CryptomatteType) {
	setValue(&f.cryptomattePasses, v, &f.modified)
}

func (f *Film) SetUseApproximateShadowCatcher(v bool) {
	setValue(&f.useApproximateShadowCatcher, v, &f.modified)
}
