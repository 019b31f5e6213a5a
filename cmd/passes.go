package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/filmpass/pass"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List every pass kind with its storage metadata.
func ListPasses(ctx *cli.Context) error {
	setupLogging(ctx)

	logger.Noticef("pass kinds\n%s", passCatalogTable(ctx.Bool("include-albedo")))
	return nil
}

func passCatalogTable(includeAlbedo bool) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Kind", "Category", "Components", "Written", "Exposure", "Denoise", "Divide", "Direct", "Indirect"})

	kinds := pass.Kinds()
	for _, kind := range kinds {
		info := pass.GetInfo(kind, includeAlbedo)
		table.Append([]string{
			kind.String(),
			kind.Category().String(),
			fmt.Sprintf("%d", info.NumComponents),
			fmt.Sprintf("%t", info.IsWritten),
			fmt.Sprintf("%t", info.UseExposure),
			fmt.Sprintf("%t", info.SupportDenoise),
			kindOrDash(info.DivideKind),
			kindOrDash(info.DirectKind),
			kindOrDash(info.IndirectKind),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "", "", "TOTAL", fmt.Sprintf("%d", len(kinds))})

	table.Render()
	return buf.String()
}

func kindOrDash(kind pass.Kind) string {
	if kind == pass.None {
		return "-"
	}
	return kind.String()
}
