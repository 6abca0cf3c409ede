package cascade

import (
	"fmt"
	"math"
)

// ValueFunction is the standard separative value of a stream at U-235
// assay x, V(x) = (2x-1) ln(x/(1-x)).
func ValueFunction(assay float64) float64 {
	return (2*assay - 1) * math.Log(assay/(1-assay))
}

// Flows holds the resolved stream quantities of one computation, in kg
// per timestep.
type Flows struct {
	Feed    float64
	Product float64
	Tails   float64
	SWU     float64 // kg SWU per timestep
}

// resolveFlows derives the three stream quantities from whichever of
// the caller's caps binds, using the two-component mass balance
//
//	feed = product + tails
//	feed*xf = product*xp + tails*xt
//
// on the achieved assays. If the separative work exceeds the SWU cap,
// all flows are scaled down proportionally; capacity is resolved by
// throughput reduction, never by changing assays.
func resolveFlows(req *Request, feedAssay, productAssay, tailsAssay float64) (Flows, error) {
	if productAssay <= tailsAssay || feedAssay <= tailsAssay {
		return Flows{}, fmt.Errorf("%w: achieved assays collapsed (feed %g, product %g, tails %g)",
			ErrCapacityInfeasible, feedAssay, productAssay, tailsAssay)
	}
	// kg of feed consumed per kg of product drawn.
	feedPerProduct := (productAssay - tailsAssay) / (feedAssay - tailsAssay)

	var fl Flows
	swuBound := false
	switch {
	case req.ProductQty <= FiniteCapLimit &&
		(req.FeedQty > FiniteCapLimit || req.ProductQty*feedPerProduct <= req.FeedQty):
		fl.Product = req.ProductQty
		fl.Feed = fl.Product * feedPerProduct
	case req.FeedQty <= FiniteCapLimit:
		fl.Feed = req.FeedQty
		fl.Product = fl.Feed / feedPerProduct
	default:
		// Only the SWU cap is finite; compute unit flows and scale to
		// the cap below.
		fl.Feed = 1
		fl.Product = 1 / feedPerProduct
		swuBound = true
	}
	fl.Tails = fl.Feed - fl.Product

	fl.SWU = fl.Product*ValueFunction(productAssay) +
		fl.Tails*ValueFunction(tailsAssay) -
		fl.Feed*ValueFunction(feedAssay)
	if fl.SWU <= 0 {
		return Flows{}, fmt.Errorf("%w: separative work came out non-positive (%g kg SWU)",
			ErrCapacityInfeasible, fl.SWU)
	}

	if swuBound || fl.SWU > req.MaxSWU {
		scale := req.MaxSWU / fl.SWU
		fl.Feed *= scale
		fl.Product *= scale
		fl.Tails *= scale
		fl.SWU = req.MaxSWU
	}
	return fl, nil
}
