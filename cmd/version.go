package cmd

import (
	"fmt"

	"github.com/nfcsim/gocascade/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gocascade",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gocascade v%s\n", version.Version)
		fmt.Println("Multi-Isotope Enrichment Cascade Solver")
		fmt.Println("Matched abundance-ratio cascade model (von Halle, 1987; Wood, 2008)")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
