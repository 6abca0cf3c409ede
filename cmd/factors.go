package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nfcsim/gocascade/internal/cascade"
	"github.com/nfcsim/gocascade/internal/nuclide"
	"github.com/spf13/cobra"
)

var (
	factorsGamma   float64
	factorsProcess string
)

var factorsCmd = &cobra.Command{
	Use:   "factors",
	Short: "Print the per-isotope stage separation factor table",
	Long: `Print the ideal stage separation factor and the matched-cascade
factor for every tracked uranium isotope, derived from the overall
U-235 separation factor (after Wood, 2008, with U-238 as key
component).

Example:
  gocascade factors --gamma 1.4`,
	RunE: runFactors,
}

func init() {
	rootCmd.AddCommand(factorsCmd)

	factorsCmd.Flags().Float64VarP(&factorsGamma, "gamma", "g", 1.4, "Overall U-235 separation factor gamma_235")
	factorsCmd.Flags().StringVar(&factorsProcess, "process", string(cascade.Centrifuge), "Enrichment process: centrifuge or diffusion")
}

func runFactors(cmd *cobra.Command, args []string) error {
	sf, err := cascade.NewSeparationFactors(factorsGamma, cascade.Process(factorsProcess))
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("SEPARATION FACTORS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Isotope\tNuclide id\tα (stage)\tα* (cascade)\n")
	for _, id := range nuclide.Isotopes() {
		fmt.Fprintf(w, "  U-%d\t%d\t%.6f\t%.6f\n", id.A(), int(id), sf.Alpha[id], sf.AlphaStar[id])
	}
	w.Flush()
	fmt.Println()
	fmt.Printf("  γ235 = %.4f, α235 = %.6f, process = %s\n\n",
		factorsGamma, sf.Alpha235(), factorsProcess)
	return nil
}
