package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// CascadeDiagramData holds data for drawing a cascade profile diagram.
type CascadeDiagramData struct {
	// Per-stage U-235 assay from the tails end to the product end.
	Assays []float64

	// Stage counts, rounded to drawn stages.
	Enriching int
	Stripping int

	// Stream assays (fractions)
	FeedAssay    float64
	ProductAssay float64
	TailsAssay   float64

	Process string
}

// DrawASCIIProfile renders the per-stage U-235 assay as a terminal
// line chart, tails end on the left, product end on the right.
func DrawASCIIProfile(data CascadeDiagramData) string {
	var sb strings.Builder

	percent := make([]float64, len(data.Assays))
	for i, a := range data.Assays {
		percent[i] = a * 100
	}

	sb.WriteString("\n")
	sb.WriteString("  STAGE ASSAY PROFILE (U-235, %)\n")
	sb.WriteString("  ──────────────────────────────\n\n")
	sb.WriteString(asciigraph.Plot(percent,
		asciigraph.Height(14),
		asciigraph.Width(60),
		asciigraph.Precision(3),
	))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("  tails ◄── %d stripping ── feed ── %d enriching ──► product\n",
		data.Stripping, data.Enriching))
	return sb.String()
}

// DrawASCIISchematic renders the cascade sections around the feed
// point with the stream assays.
func DrawASCIISchematic(data CascadeDiagramData) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("  CASCADE LAYOUT\n")
	sb.WriteString("  ──────────────\n\n")
	sb.WriteString(fmt.Sprintf("       product ──►  x_p = %.5f\n", data.ProductAssay))
	sb.WriteString("      ┌──────────────────────┐\n")
	sb.WriteString(fmt.Sprintf("      │  enriching   (%4d)  │\n", data.Enriching))
	sb.WriteString("      ├──────────────────────┤\n")
	sb.WriteString(fmt.Sprintf("  ──► │  feed  x_f = %.5f │\n", data.FeedAssay))
	sb.WriteString("      ├──────────────────────┤\n")
	sb.WriteString(fmt.Sprintf("      │  stripping   (%4d)  │\n", data.Stripping))
	sb.WriteString("      └──────────────────────┘\n")
	sb.WriteString(fmt.Sprintf("         tails ──►  x_t = %.5f\n", data.TailsAssay))
	return sb.String()
}
