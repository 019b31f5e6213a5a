package cmd

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/achilleasa/filmpass/film"
	"github.com/achilleasa/filmpass/kernel"
	"github.com/achilleasa/filmpass/pass"
	"github.com/achilleasa/filmpass/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Print the finalized pass layout and kernel film offsets of a scene.
func ShowLayout(ctx *cli.Context) error {
	setupLogging(ctx)

	r, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	layout := r.Film.Layout()
	logger.Noticef("pass layout\n%s", layoutTable(layout))
	logger.Noticef("kernel film offsets\n%s", kernelOffsetTable(r.DeviceScene().DeviceData().Film))
	if aovs := aovTable(r); aovs != "" {
		logger.Noticef("AOV offsets\n%s", aovs)
	}

	mode := pass.Noisy
	if r.Scene.Integrator.UseDenoise() {
		mode = pass.Denoised
	}
	if display := r.Film.ActualDisplayPass(r.Scene, r.Film.DisplayPass(), mode); display != nil {
		logger.Noticef("display pass: %s", display)
	} else {
		logger.Warningf("no %s %s pass available for display", mode, r.Film.DisplayPass())
	}
	logger.Noticef("kernel features: %s", r.Film.KernelFeatures(r.Scene))

	displayUpdateStats(r.Stats())
	return nil
}

func layoutTable(layout film.Layout) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pass", "Mode", "Name", "Auto", "Offset", "Components"})
	for _, entry := range layout.Entries {
		offset := "-"
		if entry.Offset != int(kernel.PassUnused) {
			offset = fmt.Sprintf("%d", entry.Offset)
		}
		table.Append([]string{
			entry.Pass.Kind.String(),
			entry.Pass.Mode.String(),
			entry.Pass.Name,
			fmt.Sprintf("%t", entry.Pass.IsAuto()),
			offset,
			fmt.Sprintf("%d", entry.Components),
		})
	}
	table.SetFooter([]string{"", "", "", "", "STRIDE", fmt.Sprintf("%d", layout.Stride)})

	table.Render()
	return buf.String()
}

// List every Pass* offset field of the kernel film that is in use.
func kernelOffsetTable(kfilm kernel.Film) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Field", "Offset"})

	v := reflect.ValueOf(kfilm)
	for i := 0; i < v.NumField(); i++ {
		field := v.Type().Field(i)
		if !strings.HasPrefix(field.Name, "Pass") || field.Type.Kind() != reflect.Int32 || field.Name == "PassStride" {
			continue
		}
		offset := int32(v.Field(i).Int())
		if offset == kernel.PassUnused {
			continue
		}
		table.Append([]string{field.Name, fmt.Sprintf("%d", offset)})
	}
	table.SetFooter([]string{"PassStride", fmt.Sprintf("%d", kfilm.PassStride)})

	table.Render()
	return buf.String()
}

// Returns an empty string if the scene has no named AOVs.
func aovTable(r *renderer.Session) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"AOV", "Type", "Relative offset"})

	var rows int
	for _, p := range r.Scene.Passes {
		if (p.Kind != pass.AOVColor && p.Kind != pass.AOVValue) || p.Name == "" {
			continue
		}
		offset, isColor, ok := r.Film.AOVOffset(r.Scene, p.Name)
		if !ok {
			continue
		}
		aovType := "value"
		if isColor {
			aovType = "color"
		}
		table.Append([]string{p.Name, aovType, fmt.Sprintf("%d", offset)})
		rows++
	}
	if rows == 0 {
		return ""
	}

	table.Render()
	return buf.String()
}

func displayUpdateStats(stats renderer.UpdateStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Stage", "Time"})
	table.Append([]string{"pass update", fmt.Sprintf("%s", stats.PassUpdateTime)})
	table.Append([]string{"device update", fmt.Sprintf("%s", stats.DeviceUpdateTime)})
	table.Append([]string{"copy to device", fmt.Sprintf("%s", stats.CopyTime)})
	table.SetFooter([]string{"TOTAL", fmt.Sprintf("%s", stats.UpdateTime)})

	table.Render()
	logger.Noticef("update statistics\n%s", buf.String())
}
