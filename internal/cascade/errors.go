package cascade

import "errors"

var (
	// ErrInvalidInput is returned for assay ordering and range
	// violations and for infeasible downblend targets.
	ErrInvalidInput = errors.New("invalid enrichment input")

	// ErrConvergence is returned when an iterative routine exceeds its
	// iteration cap without settling within tolerance.
	ErrConvergence = errors.New("iteration did not converge")

	// ErrCapacityInfeasible is returned when a binding constraint
	// cannot be honored, e.g. a product assay that is physically
	// unreachable from the given feed.
	ErrCapacityInfeasible = errors.New("enrichment capacity infeasible")
)
