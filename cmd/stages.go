package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/nfcsim/gocascade/internal/cascade"
	"github.com/spf13/cobra"
)

var (
	stagesFeedPreset   string
	stagesFeedComp     string
	stagesProductAssay float64
	stagesTailsAssay   float64
	stagesGamma        float64
	stagesProcess      string
	stagesInteger      bool
	stagesProfile      bool
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Determine enriching and stripping stage counts",
	Long: `Determine the number of enriching and stripping stages needed to
reach the target product and tails assays, either analytically
(continuous) or rounded to whole stages under the no-undershoot policy
(--integer).

Examples:
  gocascade stages --feed natural --product-assay 0.05 --tails-assay 0.0025
  gocascade stages --feed natural --product-assay 0.05 --tails-assay 0.0025 --integer --profile`,
	RunE: runStages,
}

func init() {
	rootCmd.AddCommand(stagesCmd)

	stagesCmd.Flags().StringVar(&stagesFeedPreset, "feed", "natural", "Feed preset: natural, depleted, reprocessed, weapons")
	stagesCmd.Flags().StringVar(&stagesFeedComp, "feed-comp", "", "Feed composition as mass=fraction pairs")
	stagesCmd.Flags().Float64VarP(&stagesProductAssay, "product-assay", "p", 0, "Target product U-235 assay [required]")
	stagesCmd.Flags().Float64VarP(&stagesTailsAssay, "tails-assay", "t", 0, "Target tails U-235 assay [required]")
	stagesCmd.Flags().Float64VarP(&stagesGamma, "gamma", "g", 1.4, "Overall U-235 separation factor gamma_235")
	stagesCmd.Flags().StringVar(&stagesProcess, "process", string(cascade.Centrifuge), "Enrichment process: centrifuge or diffusion")
	stagesCmd.Flags().BoolVar(&stagesInteger, "integer", false, "Round to whole stages (no-undershoot policy)")
	stagesCmd.Flags().BoolVar(&stagesProfile, "profile", false, "Print the per-stage U-235 assay profile")

	stagesCmd.MarkFlagRequired("product-assay")
	stagesCmd.MarkFlagRequired("tails-assay")
}

func runStages(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("feed-comp") {
		stagesFeedPreset = ""
	}
	feed, err := parseFeed(stagesFeedPreset, stagesFeedComp)
	if err != nil {
		return err
	}
	feed, err = feed.Normalize()
	if err != nil {
		return err
	}
	feedAssay, err := feed.Assay()
	if err != nil {
		return err
	}

	sf, err := cascade.NewSeparationFactors(stagesGamma, cascade.Process(stagesProcess))
	if err != nil {
		return err
	}

	var n cascade.StageCount
	if stagesInteger {
		n, err = cascade.IntegerStages(feed, stagesProductAssay, stagesTailsAssay, sf,
			cascade.StageCount{Enriching: -1, Stripping: -1}, cascade.NelderMead{})
	} else {
		n, err = cascade.DecimalStages(feedAssay, stagesProductAssay, stagesTailsAssay, sf)
	}
	if err != nil {
		return err
	}

	product, tails, err := cascade.Concentrations(feed, sf, n)
	if err != nil {
		return err
	}
	xp, _ := product.Assay()
	xt, _ := tails.Assay()

	fmt.Println()
	fmt.Println("STAGE COUNTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Feed assay:\t%.5f\n", feedAssay)
	fmt.Fprintf(w, "  Enriching stages:\t%.4f\n", n.Enriching)
	fmt.Fprintf(w, "  Stripping stages:\t%.4f\n", n.Stripping)
	fmt.Fprintf(w, "  Achieved product assay:\t%.5f (target %.5f)\n", xp, stagesProductAssay)
	fmt.Fprintf(w, "  Achieved tails assay:\t%.5f (target %.5f)\n", xt, stagesTailsAssay)
	w.Flush()
	fmt.Println()

	if stagesProfile {
		fmt.Println("PER-STAGE ASSAY (tails end → product end):")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		profile := cascade.AssayProfile(feedAssay, sf, n)
		feedIdx := int(math.Ceil(n.Stripping)) + 1
		for i, assay := range profile {
			mark := ""
			switch i {
			case 0:
				mark = "◄ tails"
			case feedIdx:
				mark = "◄ feed"
			case len(profile) - 1:
				mark = "◄ product"
			}
			fmt.Fprintf(w, "  stage %d\t%.6f\t%s\n", i-feedIdx, assay, mark)
		}
		w.Flush()
		fmt.Println()
	}
	return nil
}
