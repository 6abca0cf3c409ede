package cascade

import (
	"fmt"
	"math"

	"github.com/nfcsim/gocascade/internal/nuclide"
)

// DecimalStages solves the two-component (U-235/U-238) cascade
// relation for the number of enriching and stripping stages in closed
// form. The per-stage gain of the U-235/U-238 abundance ratio in a
// matched abundance-ratio cascade is the cascade factor of U-235, so
//
//	n_enriching = ln(R_product/R_feed) / ln(alpha*_235)
//	n_stripping = ln(R_feed/R_tails) / ln(alpha*_235) - 1
//
// with R = x/(1-x). Always succeeds for validated inputs.
func DecimalStages(feedAssay, targetProduct, targetTails float64, sf *SeparationFactors) (StageCount, error) {
	if targetTails >= feedAssay || feedAssay >= targetProduct {
		return StageCount{}, fmt.Errorf("%w: assay ordering tails < feed < product violated (%g, %g, %g)",
			ErrInvalidInput, targetTails, feedAssay, targetProduct)
	}

	ratio := func(x float64) float64 { return x / (1 - x) }
	logGain := math.Log(sf.AlphaStar[nuclide.U235])

	return StageCount{
		Enriching: math.Log(ratio(targetProduct)/ratio(feedAssay)) / logGain,
		Stripping: math.Log(ratio(feedAssay)/ratio(targetTails))/logGain - 1,
	}, nil
}

// IntegerStages determines a whole-stage cascade layout for the given
// targets. Integer rounding can only overshoot or undershoot each
// target, so the policy is no-undershoot: the smallest integer pair
// whose product assay reaches the target and whose tails assay does
// not exceed it. When no rounding of the continuous solution
// qualifies, the stage pair is found by minimizing the relative assay
// deviation with a gradient-free search and then adjusted upward until
// both targets are met.
func IntegerStages(feed nuclide.Composition, targetProduct, targetTails float64,
	sf *SeparationFactors, seed StageCount, min Minimizer) (StageCount, error) {

	feedAssay, err := feed.Assay()
	if err != nil {
		return StageCount{}, err
	}

	cont, err := DecimalStages(feedAssay, targetProduct, targetTails, sf)
	if err != nil {
		return StageCount{}, err
	}
	if seed.Enriching < 0 || seed.Stripping < 0 {
		seed = cont
	}

	meets := func(n StageCount) bool {
		product, tails, err := Concentrations(feed, sf, n)
		if err != nil {
			return false
		}
		xp, _ := product.Assay()
		xt, _ := tails.Assay()
		return xp >= targetProduct-1e-9 && xt <= targetTails+1e-9
	}

	// Scan the rounding corners of the seed in order of increasing
	// total stage count; the first qualifying pair is the smallest
	// no-undershoot cascade.
	corners := []StageCount{
		{math.Floor(seed.Enriching), math.Floor(seed.Stripping)},
		{math.Floor(seed.Enriching), math.Ceil(seed.Stripping)},
		{math.Ceil(seed.Enriching), math.Floor(seed.Stripping)},
		{math.Ceil(seed.Enriching), math.Ceil(seed.Stripping)},
	}
	for _, n := range corners {
		if n.Enriching < 1 || n.Stripping < 0 {
			continue
		}
		if meets(n) {
			return n, nil
		}
	}

	// No simple rounding works, e.g. with a caller-supplied seed far
	// from the continuous solution. Minimize the relative deviation
	// from both targets instead.
	bound := sf.Process.maxStages()
	objective := func(enriching, stripping float64) float64 {
		n := StageCount{Enriching: enriching, Stripping: stripping}
		if n.Enriching < 1 || n.Stripping < 0 || n.Enriching > bound || n.Stripping > bound {
			return 1e12
		}
		product, tails, err := Concentrations(feed, sf, n)
		if err != nil {
			return 1e12
		}
		xp, _ := product.Assay()
		xt, _ := tails.Assay()
		dp := (xp - targetProduct) / targetProduct
		dt := (xt - targetTails) / targetTails
		return dp*dp + dt*dt
	}

	best, err := min.Minimize(objective, seed)
	if err != nil {
		return StageCount{}, fmt.Errorf("%w: integer stage search failed: %v", ErrConvergence, err)
	}
	if best.Enriching > 0.9*bound {
		maximal, merr := MaximalAssay(feed, sf, best.Stripping)
		if merr != nil {
			return StageCount{}, merr
		}
		return StageCount{}, fmt.Errorf(
			"%w: product assay %g unreachable, maximal asymptotic assay is %g",
			ErrCapacityInfeasible, targetProduct, maximal)
	}

	n := StageCount{
		Enriching: math.Max(1, math.Round(best.Enriching)),
		Stripping: math.Max(0, math.Round(best.Stripping)),
	}
	// Rounding to nearest may undershoot either target; adding stages
	// raises the product assay and lowers the tails assay
	// monotonically, so walk upward until both hold.
	for iter := 0; iter < IterMax; iter++ {
		if meets(n) {
			return n, nil
		}
		product, tails, err := Concentrations(feed, sf, n)
		if err != nil {
			return StageCount{}, err
		}
		xp, _ := product.Assay()
		xt, _ := tails.Assay()
		if xp < targetProduct-1e-9 {
			n.Enriching++
		}
		if xt > targetTails+1e-9 {
			n.Stripping++
		}
		if n.Enriching > bound || n.Stripping > bound {
			maximal, merr := MaximalAssay(feed, sf, n.Stripping)
			if merr != nil {
				return StageCount{}, merr
			}
			return StageCount{}, fmt.Errorf(
				"%w: no %s cascade below %g stages meets product %g / tails %g (maximal assay %g)",
				ErrCapacityInfeasible, sf.Process, bound, targetProduct, targetTails, maximal)
		}
	}
	return StageCount{}, fmt.Errorf(
		"%w: integer stage adjustment still moving after %d iterations (last pair %g, %g)",
		ErrConvergence, IterMax, n.Enriching, n.Stripping)
}
