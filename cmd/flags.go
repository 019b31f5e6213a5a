package cmd

import (
	"github.com/urfave/cli"
	"github.com/urfave/cli/altsrc"
)

// LoadFlag names the YAML file that flag defaults are read from.
var LoadFlag = cli.StringFlag{
	Name:  "load",
	Usage: "load flag values from a YAML file",
}

// SessionFlags returns the flags shared by commands that build a render
// session. Their values can also be set from the file passed to --load.
func SessionFlags() []cli.Flag {
	return []cli.Flag{
		altsrc.NewIntFlag(cli.IntFlag{
			Name:  "width",
			Value: 512,
			Usage: "frame width",
		}),
		altsrc.NewIntFlag(cli.IntFlag{
			Name:  "height",
			Value: 512,
			Usage: "frame height",
		}),
		altsrc.NewBoolFlag(cli.BoolFlag{
			Name:  "sample-count-pass",
			Usage: "reserve a sample count pass even without adaptive sampling",
		}),
		altsrc.NewIntFlag(cli.IntFlag{
			Name:  "lookup-limit",
			Value: 0,
			Usage: "lookup table storage limit in floats (0 disables the limit)",
		}),
		LoadFlag,
	}
}

// LoadFlagDefaults returns a Before hook that fills unset flags from the
// YAML file given by --load. Without --load the hook does nothing.
func LoadFlagDefaults(flags []cli.Flag) cli.BeforeFunc {
	loader := altsrc.InitInputSourceWithContext(flags, altsrc.NewYamlSourceFromFlagFunc(LoadFlag.Name))
	return func(ctx *cli.Context) error {
		if ctx.String(LoadFlag.Name) == "" {
			return nil
		}
		return loader(ctx)
	}
}
