package cmd

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nfcsim/gocascade/internal/cascade"
	"github.com/nfcsim/gocascade/internal/diagram"
	"github.com/nfcsim/gocascade/internal/nuclide"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Request inputs
	solveFeedPreset   string
	solveFeedComp     string
	solveProductAssay float64
	solveTailsAssay   float64
	solveGamma        float64
	solveProcess      string
	solveFeedQty      float64
	solveProductQty   float64
	solveMaxSWU       float64
	solveDownblend    bool
	solveIntStages    bool
	solveInitEnrich   float64
	solveInitStrip    float64
	solveInputFile    string

	// Diagram options
	solveShowDiagram bool
	solveExportFile  string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Compute a full enrichment cascade",
	Long: `Compute the complete outcome of a multi-isotope enrichment cascade:
stage counts, per-isotope product and tails compositions, stream flows
and separative work.

The feed is given either as a named preset (natural, depleted,
reprocessed, weapons) or as explicit isotope fractions, or the whole
request is read from a JSON/YAML file (flags override file values).

Examples:
  # Enrich natural uranium to 5% with 0.25% tails, 1000 kg product
  gocascade solve --feed natural --product-assay 0.05 --tails-assay 0.0025 --product-qty 1000

  # Explicit feed composition, integer stages with downblending
  gocascade solve --feed-comp "235=0.00711,238=0.99289" --product-assay 0.05 \
      --tails-assay 0.0025 --product-qty 1000 --integer-stages --downblend

  # Request from file
  gocascade solve --input request.yaml`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	// Feed flags
	solveCmd.Flags().StringVar(&solveFeedPreset, "feed", "", "Feed preset: natural, depleted, reprocessed, weapons")
	solveCmd.Flags().StringVar(&solveFeedComp, "feed-comp", "", "Feed composition as mass=fraction pairs, e.g. \"235=0.00711,238=0.99289\"")

	// Target flags
	solveCmd.Flags().Float64VarP(&solveProductAssay, "product-assay", "p", 0, "Target product U-235 assay (atom fraction)")
	solveCmd.Flags().Float64VarP(&solveTailsAssay, "tails-assay", "t", 0, "Target tails U-235 assay (atom fraction)")

	// Process flags
	solveCmd.Flags().Float64VarP(&solveGamma, "gamma", "g", 1.4, "Overall U-235 separation factor gamma_235")
	solveCmd.Flags().StringVar(&solveProcess, "process", string(cascade.Centrifuge), "Enrichment process: centrifuge or diffusion")

	// Quantity caps (0 = unconstrained)
	solveCmd.Flags().Float64Var(&solveFeedQty, "feed-qty", 0, "Feed quantity cap (kg), 0 = unconstrained")
	solveCmd.Flags().Float64Var(&solveProductQty, "product-qty", 0, "Product quantity cap (kg), 0 = unconstrained")
	solveCmd.Flags().Float64Var(&solveMaxSWU, "max-swu", 0, "Separative work cap (kg SWU), 0 = unconstrained")

	// Mode flags
	solveCmd.Flags().BoolVar(&solveIntStages, "integer-stages", false, "Round stage counts to physically realizable integers")
	solveCmd.Flags().BoolVar(&solveDownblend, "downblend", false, "Downblend an over-enriched integer-stage product to the exact target")
	solveCmd.Flags().Float64Var(&solveInitEnrich, "init-enriching", -1, "Initial enriching stage count for the integer search")
	solveCmd.Flags().Float64Var(&solveInitStrip, "init-stripping", -1, "Initial stripping stage count for the integer search")

	// Request file
	solveCmd.Flags().StringVarP(&solveInputFile, "input", "i", "", "Read the request from a JSON/YAML file")

	// Diagram options
	solveCmd.Flags().BoolVar(&solveShowDiagram, "diagram", false, "Show ASCII cascade profile diagram")
	solveCmd.Flags().StringVarP(&solveExportFile, "output", "o", "", "Export profile diagram to file (png, svg, pdf)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd)
	if err != nil {
		return err
	}

	result, err := cascade.Compute(*req)
	if err != nil {
		return err
	}

	printReport(req, result)

	if solveShowDiagram || solveExportFile != "" {
		sf, err := cascade.NewSeparationFactors(req.Gamma235, req.Process)
		if err != nil {
			return err
		}
		feed, err := req.Feed.Normalize()
		if err != nil {
			return err
		}
		feedAssay, err := feed.Assay()
		if err != nil {
			return err
		}
		data := diagram.CascadeDiagramData{
			Assays:       cascade.AssayProfile(feedAssay, sf, result.Stages),
			Enriching:    int(math.Ceil(result.Stages.Enriching)),
			Stripping:    int(math.Ceil(result.Stages.Stripping)),
			FeedAssay:    feedAssay,
			ProductAssay: result.ProductAssay(),
			TailsAssay:   result.TailsAssay(),
			Process:      string(req.Process),
		}
		if solveShowDiagram {
			fmt.Println(diagram.DrawASCIISchematic(data))
			fmt.Println(diagram.DrawASCIIProfile(data))
		}
		if solveExportFile != "" {
			if err := diagram.ExportProfileDiagram(data, solveExportFile); err != nil {
				return fmt.Errorf("exporting diagram: %w", err)
			}
			fmt.Printf("Diagram exported to: %s\n", solveExportFile)
		}
	}
	return nil
}

// buildRequest assembles the enrichment request from the request file
// (if any) and the command flags, flags taking precedence.
func buildRequest(cmd *cobra.Command) (*cascade.Request, error) {
	req := &cascade.Request{
		FeedQty:       cascade.Unconstrained,
		ProductQty:    cascade.Unconstrained,
		MaxSWU:        cascade.Unconstrained,
		Process:       cascade.Centrifuge,
		Gamma235:      1.4,
		InitEnriching: -1,
		InitStripping: -1,
	}

	if solveInputFile != "" {
		if err := loadRequestFile(solveInputFile, req); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("feed") || cmd.Flags().Changed("feed-comp") {
		feed, err := parseFeed(solveFeedPreset, solveFeedComp)
		if err != nil {
			return nil, err
		}
		req.Feed = feed
	}
	if cmd.Flags().Changed("product-assay") {
		req.TargetProductAssay = solveProductAssay
	}
	if cmd.Flags().Changed("tails-assay") {
		req.TargetTailsAssay = solveTailsAssay
	}
	if cmd.Flags().Changed("gamma") {
		req.Gamma235 = solveGamma
	}
	if cmd.Flags().Changed("process") {
		req.Process = cascade.Process(solveProcess)
	}
	if cmd.Flags().Changed("feed-qty") {
		req.FeedQty = orUnconstrained(solveFeedQty)
	}
	if cmd.Flags().Changed("product-qty") {
		req.ProductQty = orUnconstrained(solveProductQty)
	}
	if cmd.Flags().Changed("max-swu") {
		req.MaxSWU = orUnconstrained(solveMaxSWU)
	}
	if cmd.Flags().Changed("integer-stages") {
		req.UseIntegerStages = solveIntStages
	}
	if cmd.Flags().Changed("downblend") {
		req.UseDownblending = solveDownblend
	}
	if cmd.Flags().Changed("init-enriching") {
		req.InitEnriching = solveInitEnrich
	}
	if cmd.Flags().Changed("init-stripping") {
		req.InitStripping = solveInitStrip
	}

	if req.Feed == nil {
		return nil, fmt.Errorf("no feed given: use --feed, --feed-comp or --input")
	}
	return req, nil
}

func orUnconstrained(v float64) float64 {
	if v <= 0 {
		return cascade.Unconstrained
	}
	return v
}

// parseFeed builds a feed composition from a preset name or an
// explicit mass=fraction list.
func parseFeed(preset, comp string) (nuclide.Composition, error) {
	if preset != "" && comp != "" {
		return nil, fmt.Errorf("use either --feed or --feed-comp, not both")
	}
	switch strings.ToLower(preset) {
	case "natural":
		return nuclide.NaturalU(), nil
	case "depleted":
		return nuclide.DepletedU(), nil
	case "reprocessed":
		return nuclide.ReprocessedU(), nil
	case "weapons":
		return nuclide.WeaponGradeU(), nil
	case "":
	default:
		return nil, fmt.Errorf("unknown feed preset %q", preset)
	}

	feed := make(nuclide.Composition)
	for _, pair := range strings.Split(comp, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			return nil, fmt.Errorf("malformed feed component %q, want mass=fraction", pair)
		}
		mass, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("malformed isotope mass %q: %w", key, err)
		}
		id, err := nuclide.FromIsotope(mass)
		if err != nil {
			return nil, err
		}
		frac, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed fraction %q: %w", value, err)
		}
		feed[id] = frac
	}
	return feed, nil
}

// loadRequestFile reads request fields from a JSON/YAML file. Nuclide
// keys in feed_composition use the ZZZAAAMMMM form, e.g. "922350000".
func loadRequestFile(path string, req *cascade.Request) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading request file: %w", err)
	}

	var file struct {
		FeedComposition    map[string]float64 `mapstructure:"feed_composition"`
		TargetProductAssay float64            `mapstructure:"target_product_assay"`
		TargetTailsAssay   float64            `mapstructure:"target_tails_assay"`
		Gamma235           float64            `mapstructure:"gamma_235"`
		Process            string             `mapstructure:"process"`
		FeedQty            float64            `mapstructure:"feed_qty"`
		ProductQty         float64            `mapstructure:"product_qty"`
		MaxSWU             float64            `mapstructure:"max_swu"`
		UseDownblending    bool               `mapstructure:"use_downblending"`
		UseIntegerStages   bool               `mapstructure:"use_integer_stages"`
		InitEnriching      *float64           `mapstructure:"n_init_enriching"`
		InitStripping      *float64           `mapstructure:"n_init_stripping"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return fmt.Errorf("decoding request file: %w", err)
	}

	if file.FeedComposition != nil {
		feed := make(nuclide.Composition, len(file.FeedComposition))
		for key, frac := range file.FeedComposition {
			id, err := strconv.Atoi(key)
			if err != nil {
				return fmt.Errorf("malformed nuclide id %q in %s: %w", key, path, err)
			}
			feed[nuclide.ID(id)] = frac
		}
		req.Feed = feed
	}
	if file.TargetProductAssay != 0 {
		req.TargetProductAssay = file.TargetProductAssay
	}
	if file.TargetTailsAssay != 0 {
		req.TargetTailsAssay = file.TargetTailsAssay
	}
	if file.Gamma235 != 0 {
		req.Gamma235 = file.Gamma235
	}
	if file.Process != "" {
		req.Process = cascade.Process(file.Process)
	}
	if file.FeedQty != 0 {
		req.FeedQty = file.FeedQty
	}
	if file.ProductQty != 0 {
		req.ProductQty = file.ProductQty
	}
	if file.MaxSWU != 0 {
		req.MaxSWU = file.MaxSWU
	}
	req.UseDownblending = file.UseDownblending
	req.UseIntegerStages = file.UseIntegerStages
	if file.InitEnriching != nil {
		req.InitEnriching = *file.InitEnriching
	}
	if file.InitStripping != nil {
		req.InitStripping = *file.InitStripping
	}
	return nil
}

func printReport(req *cascade.Request, result *cascade.Result) {
	feed, _ := req.Feed.Normalize()
	feedAssay, _ := feed.Assay()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     MULTI-ISOTOPE ENRICHMENT CASCADE")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Feed assay (x_f):\t%.5f\n", feedAssay)
	fmt.Fprintf(w, "  Target product assay (x_p):\t%.5f\n", req.TargetProductAssay)
	fmt.Fprintf(w, "  Target tails assay (x_t):\t%.5f\n", req.TargetTailsAssay)
	fmt.Fprintf(w, "  Separation factor (γ235):\t%.4f\n", req.Gamma235)
	fmt.Fprintf(w, "  Process:\t%s\n", req.Process)
	fmt.Fprintf(w, "  Feed cap:\t%s\n", capString(req.FeedQty, "kg"))
	fmt.Fprintf(w, "  Product cap:\t%s\n", capString(req.ProductQty, "kg"))
	fmt.Fprintf(w, "  SWU cap:\t%s\n", capString(req.MaxSWU, "kg SWU"))
	fmt.Fprintf(w, "  Integer stages:\t%v\n", req.UseIntegerStages)
	fmt.Fprintf(w, "  Downblending:\t%v\n", req.UseDownblending)
	w.Flush()
	fmt.Println()

	fmt.Println("CASCADE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Enriching stages:\t%.4f\n", result.Stages.Enriching)
	fmt.Fprintf(w, "  Stripping stages:\t%.4f\n", result.Stages.Stripping)
	fmt.Fprintf(w, "  Achieved stage factor (α*):\t%.6f\n", result.AchievedFactor)
	w.Flush()
	fmt.Println()

	fmt.Println("STREAMS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Feed used:\t%.3f kg\n", result.FeedUsed)
	fmt.Fprintf(w, "  Product produced:\t%.3f kg\n", result.ProductProduced)
	fmt.Fprintf(w, "  Tails produced:\t%.3f kg\n", result.TailsProduced)
	fmt.Fprintf(w, "  Separative work:\t%.3f kg SWU\n", result.SWUUsed)
	fmt.Fprintf(w, "  Product assay:\t%.5f\n", result.ProductAssay())
	fmt.Fprintf(w, "  Tails assay:\t%.5f\n", result.TailsAssay())
	w.Flush()
	fmt.Println()

	fmt.Println("COMPOSITIONS [%]:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "  U-isotope")
	for _, id := range nuclide.Isotopes() {
		fmt.Fprintf(w, "\t%d", id.A())
	}
	fmt.Fprintln(w)
	printCompRow(w, "x_f", feed)
	printCompRow(w, "x_p", result.Product)
	printCompRow(w, "x_t", result.Tails)
	w.Flush()
	fmt.Println()
}

func printCompRow(w *tabwriter.Writer, label string, comp nuclide.Composition) {
	fmt.Fprintf(w, "  %s", label)
	for _, id := range nuclide.Isotopes() {
		fmt.Fprintf(w, "\t%.4e", comp[id]*100)
	}
	fmt.Fprintln(w)
}

func capString(v float64, unit string) string {
	if v > cascade.FiniteCapLimit {
		return "unconstrained"
	}
	return fmt.Sprintf("%.3f %s", v, unit)
}
