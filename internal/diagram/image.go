package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ExportProfileDiagram exports the per-stage assay profile to an image
// file. The format follows the file extension (png, svg, pdf).
func ExportProfileDiagram(data CascadeDiagramData, filename string) error {
	if len(data.Assays) == 0 {
		return fmt.Errorf("no stage assays to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Cascade Stage Assay Profile (%s)", data.Process)
	p.X.Label.Text = "Stage (tails end → product end)"
	p.Y.Label.Text = "U-235 assay"

	profile := make(plotter.XYs, len(data.Assays))
	for i, assay := range data.Assays {
		profile[i] = plotter.XY{X: float64(i), Y: assay}
	}
	profileLine, err := plotter.NewLine(profile)
	if err != nil {
		return err
	}
	profileLine.LineStyle.Width = vg.Points(2)
	profileLine.LineStyle.Color = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	p.Add(profileLine)

	// Feed point marker
	feedStage := float64(data.Stripping + 1)
	feedLine, err := plotter.NewLine(plotter.XYs{
		{X: feedStage, Y: 0},
		{X: feedStage, Y: data.ProductAssay},
	})
	if err != nil {
		return err
	}
	feedLine.LineStyle.Width = vg.Points(1.5)
	feedLine.LineStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	feedLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(feedLine)

	// Target assay reference lines
	for _, ref := range []struct {
		assay float64
		label string
	}{
		{data.ProductAssay, fmt.Sprintf("x_p = %.4f", data.ProductAssay)},
		{data.TailsAssay, fmt.Sprintf("x_t = %.4f", data.TailsAssay)},
	} {
		refLine, err := plotter.NewLine(plotter.XYs{
			{X: 0, Y: ref.assay},
			{X: float64(len(data.Assays) - 1), Y: ref.assay},
		})
		if err != nil {
			return err
		}
		refLine.LineStyle.Color = color.Gray{Y: 128}
		refLine.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(refLine)

		l, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: 0, Y: ref.assay}},
			Labels: []string{ref.label},
		})
		if err != nil {
			return err
		}
		p.Add(l)
	}

	// Stream endpoints
	endpoints, err := plotter.NewScatter(plotter.XYs{
		{X: 0, Y: data.Assays[0]},
		{X: feedStage, Y: data.FeedAssay},
		{X: float64(len(data.Assays) - 1), Y: data.Assays[len(data.Assays)-1]},
	})
	if err != nil {
		return err
	}
	endpoints.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	endpoints.GlyphStyle.Radius = vg.Points(4)
	endpoints.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(endpoints)

	ext := filepath.Ext(filename)
	width := 8 * vg.Inch
	height := 6 * vg.Inch

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}

	switch ext {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
