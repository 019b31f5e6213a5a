package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/filmpass/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	sessionFlags := cmd.SessionFlags()

	filterFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "type, t",
			Value: "box",
			Usage: "filter type (box, gaussian or blackman_harris)",
		},
		cli.Float64Flag{
			Name:  "width, w",
			Value: 1.0,
			Usage: "filter width in pixels",
		},
		cli.IntFlag{
			Name:  "samples, n",
			Value: 17,
			Usage: "number of table entries to print",
		},
	}

	exportFlags := append(cmd.SessionFlags(),
		cli.StringFlag{
			Name:  "out, o",
			Value: "passes.exr",
			Usage: "image filename for the exported passes",
		},
	)

	app := cli.NewApp()
	app.Name = "filmpass"
	app.Usage = "inspect render pass layouts of path tracer scenes"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "layout",
			Usage: "print the finalized pass layout of a scene",
			Description: `
Load a scene description, resolve the passes required by the enabled
features, and print the resulting pass offsets, kernel film fields and
kernel features.

Without a scene file the default description with a single combined pass
is used.`,
			ArgsUsage: "[scene.yaml]",
			Flags:     sessionFlags,
			Before:    cmd.LoadFlagDefaults(sessionFlags),
			Action:    cmd.ShowLayout,
		},
		{
			Name:  "passes",
			Usage: "list pass kinds and their storage metadata",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "include-albedo",
					Usage: "show light component passes with albedo included",
				},
			},
			Action: cmd.ListPasses,
		},
		{
			Name:   "filter",
			Usage:  "print a pixel filter importance table",
			Flags:  filterFlags,
			Action: cmd.ShowFilter,
		},
		{
			Name:  "export",
			Usage: "write the render buffers of a scene to an EXR image",
			Description: `
Fill every stored pass with a diagnostic gradient and write the render
buffers as a multi-layer OpenEXR image, one layer per pass.`,
			ArgsUsage: "[scene.yaml]",
			Flags:     exportFlags,
			Before:    cmd.LoadFlagDefaults(exportFlags),
			Action:    cmd.ExportEXR,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}
