// Package exrout writes render buffers as multi-channel OpenEXR images.
package exrout

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unsafe"

	"github.com/achilleasa/filmpass/buffers"
	"github.com/achilleasa/filmpass/film"
	"github.com/achilleasa/filmpass/log"
	"github.com/achilleasa/filmpass/pass"
	"github.com/mrjoshuak/go-openexr/exr"
)

var ErrNoPasses = errors.New("exrout: render buffers contain no passes")

var logger = log.New("exrout")

var (
	colorSuffixes  = []string{"R", "G", "B", "A"}
	vectorSuffixes = []string{"X", "Y", "Z", "W"}
)

// ChannelNames returns the EXR channel names of a pass, one per component.
func ChannelNames(p *pass.Pass, components int) []string {
	return layerChannels(LayerName(p), p, components)
}

func layerChannels(layer string, p *pass.Pass, components int) []string {
	if components == 1 {
		return []string{layer + ".V"}
	}

	suffixes := colorSuffixes
	switch p.Kind {
	case pass.Normal, pass.Position, pass.UV, pass.Motion, pass.DenoisingNormal:
		suffixes = vectorSuffixes
	}

	names := make([]string, components)
	for i := range names {
		names[i] = layer + "." + suffixes[i]
	}
	return names
}

// LayerNames returns a unique layer name for each entry. When a layer name
// is already taken by an earlier entry the pass kind is appended to it,
// followed by a counter if that is taken too.
func LayerNames(entries []film.Entry) []string {
	used := make(map[string]bool, len(entries))
	names := make([]string, len(entries))
	for i, entry := range entries {
		name := LayerName(entry.Pass)
		if used[name] {
			base := name + "_" + camelCase(entry.Pass.Kind.String())
			name = base
			for n := 2; used[name]; n++ {
				name = fmt.Sprintf("%s%d", base, n)
			}
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// LayerName returns the EXR layer a pass is written to. Named passes use
// their name; denoised variants get a "Denoised" prefix.
func LayerName(p *pass.Pass) string {
	name := p.Name
	if name == "" {
		name = camelCase(p.Kind.String())
	}
	if p.Mode == pass.Denoised {
		name = "Denoised" + name
	}
	return name
}

func camelCase(s string) string {
	parts := strings.Split(s, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "")
}

// Write encodes every stored pass of b as float channels of a ZIP
// compressed scanline image. Channel slices address the interleaved buffer
// directly.
func Write(w io.WriteSeeker, b *buffers.RenderBuffers) error {
	params := b.Params
	if len(params.Passes) == 0 {
		return ErrNoPasses
	}
	data := b.Data()
	if len(data) == 0 || len(data) < params.Size() {
		return buffers.ErrNotAllocated
	}

	header := exr.NewScanlineHeader(params.Width, params.Height)
	header.SetCompression(exr.CompressionZIP)

	channels := exr.NewChannelList()
	fb := exr.NewFrameBuffer()
	layers := LayerNames(params.Passes)
	for i, entry := range params.Passes {
		if err := addPass(channels, fb, layers[i], entry, data, params); err != nil {
			return err
		}
	}
	header.SetChannels(channels)

	sw, err := exr.NewScanlineWriter(w, header)
	if err != nil {
		return fmt.Errorf("exrout: unable to create scanline writer: %w", err)
	}
	sw.SetFrameBuffer(fb)
	if err = sw.WritePixels(0, params.Height-1); err != nil {
		return fmt.Errorf("exrout: unable to write pixels: %w", err)
	}
	if err = sw.Close(); err != nil {
		return fmt.Errorf("exrout: unable to finalize image: %w", err)
	}

	logger.Noticef("wrote %dx%d image with %d channels", params.Width, params.Height, channels.Len())
	return nil
}

func addPass(channels *exr.ChannelList, fb *exr.FrameBuffer, layer string, entry film.Entry, data []float32, params buffers.Params) error {
	for component, name := range layerChannels(layer, entry.Pass, entry.Components) {
		channels.Add(exr.NewChannel(name, exr.PixelTypeFloat))

		slice := exr.Slice{
			Type:      exr.PixelTypeFloat,
			Base:      unsafe.Pointer(&data[entry.Offset+component]),
			XStride:   params.PassStride * 4,
			YStride:   params.Width * params.PassStride * 4,
			XSampling: 1,
			YSampling: 1,
		}
		if err := fb.Insert(name, slice); err != nil {
			return fmt.Errorf("exrout: unable to add channel %q: %w", name, err)
		}
	}
	return nil
}

// WriteFile writes b to the file at path.
func WriteFile(path string, b *buffers.RenderBuffers) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = Write(f, b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
