package film

import (
	"fmt"
	"math"

	"github.com/achilleasa/filmpass/cdf"
	"github.com/achilleasa/filmpass/kernel"
)

// FilterType selects the pixel reconstruction filter.
type FilterType uint8

const (
	FilterBox FilterType = iota
	FilterGaussian
	FilterBlackmanHarris
)

var filterNames = map[FilterType]string{
	FilterBox:            "box",
	FilterGaussian:       "gaussian",
	FilterBlackmanHarris: "blackman_harris",
}

// Implements Stringer.
func (t FilterType) String() string {
	if name, ok := filterNames[t]; ok {
		return name
	}
	return fmt.Sprintf("filter(%d)", uint8(t))
}

// ParseFilterType maps a filter name back to a FilterType.
func ParseFilterType(name string) (FilterType, bool) {
	for t, tName := range filterNames {
		if tName == name {
			return t, true
		}
	}
	return FilterBox, false
}

func filterBox(v, width float32) float32 {
	return 1
}

func filterGaussian(v, width float32) float32 {
	v *= 6 / width
	return float32(math.Exp(float64(-2 * v * v)))
}

func filterBlackmanHarris(v, width float32) float32 {
	x := 2 * math.Pi * (float64(v)/float64(width) + 0.5)
	return float32(0.35875 - 0.48829*math.Cos(x) + 0.14128*math.Cos(2*x) - 0.01168*math.Cos(3*x))
}

// FilterTable builds the importance sampling table for a filter of the
// given type and width. The table has kernel.FilterTableSize entries and is
// symmetric around 0.5.
func FilterTable(filterType FilterType, width float32) []float32 {
	var fn func(v, width float32) float32

	// Gaussian and Blackman-Harris are evaluated over a wider support than
	// their nominal width.
	switch filterType {
	case FilterBox:
		fn = filterBox
	case FilterGaussian:
		fn = filterGaussian
		width *= 3
	case FilterBlackmanHarris:
		fn = filterBlackmanHarris
		width *= 2
	default:
		panic(fmt.Sprintf("film: unsupported filter type %d", uint8(filterType)))
	}

	return cdf.Inverted(
		kernel.FilterTableSize,
		0,
		width*0.5,
		func(v float32) float32 { return fn(v, width) },
		true,
	)
}
