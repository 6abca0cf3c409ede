package cascade

import (
	"fmt"

	"github.com/nfcsim/gocascade/internal/nuclide"
)

// Process tags the enrichment technology of a cascade. It does not
// alter the separation-factor algebra but is carried through to the
// result for downstream accounting, and it bounds the integer-stage
// search.
type Process string

const (
	Centrifuge Process = "centrifuge"
	Diffusion  Process = "diffusion"
)

// Valid reports whether p is a known enrichment process.
func (p Process) Valid() bool {
	return p == Centrifuge || p == Diffusion
}

// maxStages is the upper bound on a single cascade section. Gaseous
// diffusion needs far more stages per unit enrichment than
// centrifugation.
func (p Process) maxStages() float64 {
	if p == Diffusion {
		return 7000
	}
	return 200
}

// StageCount holds the number of stages in the enriching and in the
// stripping section. Both are real-valued; integer-stage mode rounds
// them to whole stages.
type StageCount struct {
	Enriching float64
	Stripping float64
}

// Request describes one enrichment computation. Quantities are in kg
// per timestep, assays are fractions of total uranium in [0, 1).
type Request struct {
	// Feed composition in atom fractions. Must contain U-235 and U-238.
	Feed nuclide.Composition

	TargetProductAssay float64
	TargetTailsAssay   float64

	// Gamma235 is the overall product-to-tails separation factor for
	// U-235 of a single stage.
	Gamma235 float64

	Process Process

	// Caps on the three stream quantities. Exactly one is binding; set
	// the others to Unconstrained.
	FeedQty    float64
	ProductQty float64
	MaxSWU     float64

	UseDownblending  bool
	UseIntegerStages bool

	// Optional initial stage counts for the integer-stage search.
	// Negative values mean "derive the seed from the continuous
	// solution".
	InitEnriching float64
	InitStripping float64
}

// Result holds the physical outcome of one enrichment computation. All
// fields are final once returned.
type Result struct {
	Product nuclide.Composition
	Tails   nuclide.Composition

	FeedUsed        float64 // kg per timestep
	ProductProduced float64 // kg per timestep
	TailsProduced   float64 // kg per timestep
	SWUUsed         float64 // kg SWU per timestep

	Stages StageCount

	// AchievedFactor is the overall per-stage U-235 separation factor
	// consistent with the delivered assays.
	AchievedFactor float64

	Process Process
}

// ProductAssay returns the U-235 assay of the product stream.
func (r *Result) ProductAssay() float64 {
	assay, _ := r.Product.Assay()
	return assay
}

// TailsAssay returns the U-235 assay of the tails stream.
func (r *Result) TailsAssay() float64 {
	assay, _ := r.Tails.Assay()
	return assay
}

// validate checks the request invariants. The feed composition is
// checked against the already-normalized copy passed in.
func (req *Request) validate(feed nuclide.Composition) error {
	for id, frac := range req.Feed {
		if _, err := id.Isotope(); err != nil {
			return fmt.Errorf("%w: feed contains %v", ErrInvalidInput, err)
		}
		if frac < 0 {
			return fmt.Errorf("%w: feed fraction of nuclide %d is negative (%g)",
				ErrInvalidInput, int(id), frac)
		}
	}
	if req.Feed[nuclide.U235] <= 0 || req.Feed[nuclide.U238] <= 0 {
		return fmt.Errorf("%w: feed must contain both U-235 and U-238", ErrInvalidInput)
	}
	if !req.Process.Valid() {
		return fmt.Errorf("%w: process must be %q or %q, got %q",
			ErrInvalidInput, Centrifuge, Diffusion, req.Process)
	}
	if req.Gamma235 <= 1 {
		return fmt.Errorf("%w: overall separation factor gamma_235 must exceed 1, got %g",
			ErrInvalidInput, req.Gamma235)
	}

	xp, xt := req.TargetProductAssay, req.TargetTailsAssay
	if xp <= 0 || xp >= 1 || xt <= 0 || xt >= 1 {
		return fmt.Errorf("%w: target assays must lie strictly in (0, 1), got product %g, tails %g",
			ErrInvalidInput, xp, xt)
	}
	if xt >= xp {
		return fmt.Errorf("%w: target tails assay %g must be below target product assay %g",
			ErrInvalidInput, xt, xp)
	}
	xf, err := feed.Assay()
	if err != nil {
		return err
	}
	if xf <= xt || xf >= xp {
		return fmt.Errorf("%w: feed assay %g must lie strictly between target tails %g and target product %g",
			ErrInvalidInput, xf, xt, xp)
	}

	if req.FeedQty <= 0 || req.ProductQty <= 0 || req.MaxSWU <= 0 {
		return fmt.Errorf("%w: quantity caps must be strictly positive (feed %g, product %g, max swu %g)",
			ErrInvalidInput, req.FeedQty, req.ProductQty, req.MaxSWU)
	}
	if req.FeedQty > FiniteCapLimit && req.ProductQty > FiniteCapLimit && req.MaxSWU > FiniteCapLimit {
		return fmt.Errorf("%w: at least one of feed quantity, product quantity and max swu must be finite",
			ErrInvalidInput)
	}
	if req.UseDownblending && !req.UseIntegerStages {
		return fmt.Errorf("%w: downblending applies only together with integer stages", ErrInvalidInput)
	}
	return nil
}
