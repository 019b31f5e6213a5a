package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/filmpass/film"
	"github.com/achilleasa/filmpass/kernel"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Print samples of a pixel filter importance table.
func ShowFilter(ctx *cli.Context) error {
	setupLogging(ctx)

	filterType, ok := film.ParseFilterType(ctx.String("type"))
	if !ok {
		return fmt.Errorf("unknown filter type %q", ctx.String("type"))
	}
	width := float32(ctx.Float64("width"))
	if width <= 0 {
		return fmt.Errorf("filter width must be positive; got %f", width)
	}
	samples := ctx.Int("samples")
	if samples < 2 || samples > kernel.FilterTableSize {
		return fmt.Errorf("samples must be between 2 and %d; got %d", kernel.FilterTableSize, samples)
	}

	logger.Noticef("%s filter table (width %.2f)\n%s", filterType, width, filterTable(film.FilterTable(filterType, width), samples))
	return nil
}

// Sample n evenly spaced entries of table.
func filterTable(table []float32, n int) string {
	var buf bytes.Buffer
	tw := tablewriter.NewWriter(&buf)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeader([]string{"Index", "u", "Offset"})

	last := len(table) - 1
	for i := 0; i < n; i++ {
		index := i * last / (n - 1)
		tw.Append([]string{
			fmt.Sprintf("%d", index),
			fmt.Sprintf("%.4f", float32(index)/float32(last)),
			fmt.Sprintf("%+.5f", table[index]),
		})
	}
	tw.SetFooter([]string{"", "RANGE", fmt.Sprintf("%+.5f .. %+.5f", table[0], table[last])})

	tw.Render()
	return buf.String()
}
