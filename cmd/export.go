package cmd

import (
	"github.com/achilleasa/filmpass/exrout"
	"github.com/achilleasa/filmpass/film"
	"github.com/achilleasa/filmpass/types"
	"github.com/urfave/cli"
)

// Fill the render buffers of a scene with a diagnostic pattern and write
// them to an EXR image.
func ExportEXR(ctx *cli.Context) error {
	setupLogging(ctx)

	r, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	params := r.Buffers.Params
	err = r.Buffers.Fill(func(entry film.Entry, x, y int) types.Vec4 {
		return diagnosticPixel(entry, x, y, params.Width, params.Height, params.PassStride)
	})
	if err != nil {
		return err
	}
	r.Buffers.CopyToDevice()

	out := ctx.String("out")
	if err = exrout.WriteFile(out, r.Buffers); err != nil {
		return err
	}

	logger.Noticef("wrote %d passes to %s", len(params.Passes), out)
	return nil
}

// Horizontal and vertical gradients in the first two components; the third
// encodes the pass offset so layers can be told apart.
func diagnosticPixel(entry film.Entry, x, y, width, height, stride int) types.Vec4 {
	var u, v float32
	if width > 1 {
		u = float32(x) / float32(width-1)
	}
	if height > 1 {
		v = float32(y) / float32(height-1)
	}
	return types.XYZW(u, v, float32(entry.Offset)/float32(stride), 1)
}
