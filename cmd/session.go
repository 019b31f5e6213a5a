package cmd

import (
	"errors"
	"fmt"

	"github.com/achilleasa/filmpass/buffers"
	"github.com/achilleasa/filmpass/config"
	"github.com/achilleasa/filmpass/film"
	"github.com/achilleasa/filmpass/renderer"
	"github.com/achilleasa/filmpass/scene"
	"github.com/urfave/cli"
)

// Build and update a session from the optional scene description argument.
func openSession(ctx *cli.Context) (*renderer.Session, error) {
	if ctx.NArg() > 1 {
		return nil, errors.New("expected at most one scene file argument")
	}

	cfg := config.Default()
	if ctx.NArg() == 1 {
		var err error
		if cfg, err = config.Load(ctx.Args().First()); err != nil {
			return nil, err
		}
	}

	sc := scene.NewScene()
	f := film.NewFilm()
	if err := cfg.Apply(sc, f); err != nil {
		return nil, err
	}
	if len(sc.Passes) == 0 {
		logger.Info("scene defines no passes; adding default combined pass")
		if err := film.AddDefault(sc); err != nil {
			return nil, err
		}
	}

	width, height := ctx.Int("width"), ctx.Int("height")
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame dimensions must be positive; got %dx%d", width, height)
	}
	if width > buffers.MaxSize || height > buffers.MaxSize {
		return nil, fmt.Errorf("frame dimensions %dx%d exceed %d", width, height, buffers.MaxSize)
	}

	opts := renderer.Options{
		FrameW:             uint32(width),
		FrameH:             uint32(height),
		AddSampleCountPass: ctx.Bool("sample-count-pass"),
		LookupTableLimit:   ctx.Int("lookup-limit"),
	}

	r, err := renderer.NewSession(sc, f, opts)
	if err != nil {
		return nil, err
	}
	if err = r.Update(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}
