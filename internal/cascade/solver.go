package cascade

// The solver composes the separation-factor model, the stage-count
// determination, the matched abundance-ratio concentration algebra and
// the flow/SWU accounting into one request-to-result computation. Each
// call is pure: nothing is shared between invocations, so concurrent
// requests need no coordination.

// Solver computes enrichment cascades. The zero value is not usable;
// construct one with NewSolver, which installs the default
// gradient-free stage minimizer.
type Solver struct {
	// Minimizer drives the integer-stage fallback search. Any
	// gradient-free 2-D optimizer satisfies the interface.
	Minimizer Minimizer
}

// NewSolver returns a Solver backed by the Nelder-Mead minimizer.
func NewSolver() *Solver {
	return &Solver{Minimizer: NelderMead{}}
}

// Compute runs one enrichment computation. It returns either a
// complete result or an error; no partial results are produced.
func (s *Solver) Compute(req Request) (*Result, error) {
	feed, err := req.Feed.Normalize()
	if err != nil {
		return nil, err
	}
	if err := req.validate(feed); err != nil {
		return nil, err
	}

	sf, err := NewSeparationFactors(req.Gamma235, req.Process)
	if err != nil {
		return nil, err
	}

	feedAssay, err := feed.Assay()
	if err != nil {
		return nil, err
	}

	var stages StageCount
	if req.UseIntegerStages {
		seed := StageCount{Enriching: req.InitEnriching, Stripping: req.InitStripping}
		stages, err = IntegerStages(feed, req.TargetProductAssay, req.TargetTailsAssay,
			sf, seed, s.Minimizer)
	} else {
		stages, err = DecimalStages(feedAssay, req.TargetProductAssay, req.TargetTailsAssay, sf)
	}
	if err != nil {
		return nil, err
	}

	product, tails, err := Concentrations(feed, sf, stages)
	if err != nil {
		return nil, err
	}
	productAssay, err := product.Assay()
	if err != nil {
		return nil, err
	}
	tailsAssay, err := tails.Assay()
	if err != nil {
		return nil, err
	}

	flows, err := resolveFlows(&req, feedAssay, productAssay, tailsAssay)
	if err != nil {
		return nil, err
	}

	achieved, err := AchievedFactor(feed, sf, stages)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Product:        product,
		Tails:          tails,
		Stages:         stages,
		AchievedFactor: achieved,
		Process:        req.Process,
	}
	if req.UseIntegerStages && req.UseDownblending {
		if err := downblend(result, &flows, feed, req.TargetProductAssay); err != nil {
			return nil, err
		}
	}
	result.FeedUsed = flows.Feed
	result.ProductProduced = flows.Product
	result.TailsProduced = flows.Tails
	result.SWUUsed = flows.SWU
	return result, nil
}

// Compute runs one enrichment computation with the default solver.
func Compute(req Request) (*Result, error) {
	return NewSolver().Compute(req)
}
