// Package buffers owns the interleaved per pixel render buffer laid out by
// the film.
package buffers

import (
	"errors"
	"fmt"

	"github.com/achilleasa/filmpass/device"
	"github.com/achilleasa/filmpass/film"
	"github.com/achilleasa/filmpass/pass"
	"github.com/achilleasa/filmpass/types"
)

// MaxSize is the largest buffer, in floats, that Reset will allocate.
const MaxSize = 1 << 30

var (
	ErrNotAllocated = errors.New("buffers: render buffers not allocated")
	ErrInvalidSize  = errors.New("buffers: invalid buffer size")
)

// Params describes the size and pass layout of a render buffer.
type Params struct {
	Width  int
	Height int

	// Number of float components per pixel.
	PassStride int

	// Stored passes in offset order.
	Passes []film.Entry

	// Scale applied to passes that use exposure when reading pixels.
	Exposure float32
}

// NewParams builds buffer parameters from a film layout.
func NewParams(width, height int, layout film.Layout, exposure float32) Params {
	return Params{
		Width:      width,
		Height:     height,
		PassStride: layout.Stride,
		Passes:     layout.Stored(),
		Exposure:   exposure,
	}
}

// Find returns the pass matching kind and mode. A non-empty name must match
// too.
func (p Params) Find(kind pass.Kind, mode pass.Mode, name string) (film.Entry, bool) {
	for _, e := range p.Passes {
		if e.Pass.Kind != kind || e.Pass.Mode != mode {
			continue
		}
		if name != "" && e.Pass.Name != name {
			continue
		}
		return e, true
	}
	return film.Entry{}, false
}

// Size returns the number of floats needed for the buffer.
func (p Params) Size() int {
	return p.Width * p.Height * p.PassStride
}

// Validate checks that the dimensions are positive and that the buffer fits
// in MaxSize floats.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 || p.PassStride < 0 {
		return fmt.Errorf("%w: %dx%d with stride %d", ErrInvalidSize, p.Width, p.Height, p.PassStride)
	}
	if p.PassStride > 0 && p.Width > MaxSize/p.Height/p.PassStride {
		return fmt.Errorf("%w: %dx%d with stride %d exceeds %d floats", ErrInvalidSize, p.Width, p.Height, p.PassStride, MaxSize)
	}
	return nil
}

// RenderBuffers holds the pixel records of a render.
type RenderBuffers struct {
	Params Params

	buffer *device.Vector[float32]
}

func New() *RenderBuffers {
	return &RenderBuffers{
		buffer: device.NewVector[float32]("renderBuffers"),
	}
}

// Reset reallocates the buffer for params. All pixels are cleared. Invalid
// params leave the buffer untouched.
func (b *RenderBuffers) Reset(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	b.Params = params
	b.buffer.Alloc(params.Size())
	return nil
}

// Data returns the raw interleaved pixel records.
func (b *RenderBuffers) Data() []float32 {
	return b.buffer.Data()
}

// FindPass returns the stored entry for a pass.
func (b *RenderBuffers) FindPass(kind pass.Kind, mode pass.Mode, name string) (film.Entry, bool) {
	return b.Params.Find(kind, mode, name)
}

func (b *RenderBuffers) pixelIndex(x, y int) (int, error) {
	if b.buffer.Size() == 0 {
		return 0, ErrNotAllocated
	}
	if x < 0 || y < 0 || x >= b.Params.Width || y >= b.Params.Height {
		return 0, fmt.Errorf("buffers: pixel (%d, %d) outside of %dx%d buffer", x, y, b.Params.Width, b.Params.Height)
	}
	return (y*b.Params.Width + x) * b.Params.PassStride, nil
}

// ReadPixel returns the value of a pass at pixel (x, y). Three component
// passes get an alpha of 1; passes using exposure are scaled by it.
func (b *RenderBuffers) ReadPixel(kind pass.Kind, mode pass.Mode, name string, x, y int) (types.Vec4, error) {
	entry, ok := b.FindPass(kind, mode, name)
	if !ok {
		return types.Vec4{}, fmt.Errorf("buffers: no %s %s pass in render buffers", mode, kind)
	}
	return b.readEntry(entry, x, y)
}

func (b *RenderBuffers) readEntry(entry film.Entry, x, y int) (types.Vec4, error) {
	index, err := b.pixelIndex(x, y)
	if err != nil {
		return types.Vec4{}, err
	}

	start := index + entry.Offset
	v := types.Vec4FromComponents(b.buffer.Data()[start : start+entry.Components])
	if entry.Pass.Info().UseExposure {
		alpha := v[3]
		v = v.Mul(b.Params.Exposure)
		v[3] = alpha
	}
	return v, nil
}

// WritePixel stores v into the components of entry at pixel (x, y).
func (b *RenderBuffers) WritePixel(entry film.Entry, x, y int, v types.Vec4) error {
	index, err := b.pixelIndex(x, y)
	if err != nil {
		return err
	}
	start := index + entry.Offset
	copy(b.buffer.Data()[start:start+entry.Components], v[:entry.Components])
	b.buffer.TagModified()
	return nil
}

// Fill writes fn's value for every stored pass and pixel.
func (b *RenderBuffers) Fill(fn func(entry film.Entry, x, y int) types.Vec4) error {
	if b.buffer.Size() == 0 {
		return ErrNotAllocated
	}
	for y := 0; y < b.Params.Height; y++ {
		for x := 0; x < b.Params.Width; x++ {
			for _, entry := range b.Params.Passes {
				if err := b.WritePixel(entry, x, y, fn(entry, x, y)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// CopyToDevice publishes the host buffer to the device.
func (b *RenderBuffers) CopyToDevice() {
	b.buffer.CopyToDevice()
}

func (b *RenderBuffers) Free() {
	b.buffer.Free()
}
