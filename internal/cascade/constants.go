package cascade

const (
	// EpsAssay is the tolerance on assays and iterative convergence.
	EpsAssay = 1e-5

	// EpsComposition is the tolerance on composition normalization and
	// mass balance checks.
	EpsComposition = 1e-5

	// IterMax caps the achieved-factor fixed point and the
	// integer-stage search.
	IterMax = 200

	// Unconstrained marks a feed, product or SWU cap that the caller
	// leaves unbounded. Caps at or above FiniteCapLimit are treated as
	// unconstrained during validation.
	Unconstrained  = 1e299
	FiniteCapLimit = 1e298
)
