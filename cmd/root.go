package cmd

import (
	"fmt"
	"os"

	"github.com/nfcsim/gocascade/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gocascade",
	Short: "Multi-Isotope Enrichment Cascade Solver",
	Long: `gocascade - Multi-Isotope Uranium Enrichment Cascade Solver

A CLI tool computing the physical outcome of a matched abundance-ratio
enrichment cascade for a uranium mixture of up to six isotopes
(U-232 through U-238).

Given a feed composition and target product/tails assays, it determines:
  - Per-isotope stage separation factors (after Wood, 2008)
  - The number of enriching and stripping stages (continuous or integer)
  - Product and tails compositions for all tracked isotopes
  - Feed, product and tails flows and separative work (SWU)
  - Optional downblending of an over-enriched integer-stage product`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gocascade v%-45s║\n", version.Version)
		fmt.Println("  ║   Multi-Isotope Enrichment Cascade Solver                 ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for matched abundance-ratio cascade calculations")
		fmt.Println("  over multi-isotope uranium mixtures.")
		fmt.Println()
		fmt.Println("  Commands:")
		fmt.Println("    • solve    - full cascade computation (flows, SWU, compositions)")
		fmt.Println("    • stages   - stage-count determination only")
		fmt.Println("    • factors  - per-isotope separation factor table")
		fmt.Println()
		fmt.Println("  Use 'gocascade --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
