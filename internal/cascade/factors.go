package cascade

import (
	"fmt"
	"math"

	"github.com/nfcsim/gocascade/internal/nuclide"
)

// SeparationFactors holds the per-isotope stage separation factors of
// an enrichment cascade.
//
// Alpha is the ideal stage factor, defined as the ratio of abundance
// ratios in product and tails across one stage. Following Wood,
// "Effects of Separation Processes on Minor Uranium Isotopes in
// Enrichment Cascades", Science & Global Security 16 (2008), the minor
// isotope factors are extrapolated linearly in mass difference from
// U-238 as the key component.
//
// AlphaStar is the matched-abundance-ratio cascade factor, the ideal
// factor rescaled by the square root of the U-235 stage factor so the
// cascade is symmetric around the key pair.
type SeparationFactors struct {
	Alpha     map[nuclide.ID]float64
	AlphaStar map[nuclide.ID]float64

	// Gamma235 is the overall U-235 separation factor the table was
	// derived from.
	Gamma235 float64
	Process  Process
}

// NewSeparationFactors derives per-isotope stage factors from the
// overall U-235 separation factor gamma_235.
func NewSeparationFactors(gamma235 float64, process Process) (*SeparationFactors, error) {
	if gamma235 <= 1 {
		return nil, fmt.Errorf("%w: overall separation factor gamma_235 must exceed 1, got %g",
			ErrInvalidInput, gamma235)
	}
	if !process.Valid() {
		return nil, fmt.Errorf("%w: process must be %q or %q, got %q",
			ErrInvalidInput, Centrifuge, Diffusion, process)
	}

	// Convert the overall product-to-feed ratio convention into a
	// single-stage factor.
	alpha235 := math.Sqrt(gamma235)

	sf := &SeparationFactors{
		Alpha:     make(map[nuclide.ID]float64),
		AlphaStar: make(map[nuclide.ID]float64),
		Gamma235:  gamma235,
		Process:   process,
	}
	sqrtAlpha235 := math.Sqrt(alpha235)
	for _, id := range nuclide.Isotopes() {
		deltaMass := 238.0 - float64(id.A())
		alpha := 1.0 + deltaMass*(alpha235-1.0)/(238.0-235.0)
		sf.Alpha[id] = alpha
		sf.AlphaStar[id] = alpha / sqrtAlpha235
	}
	return sf, nil
}

// Alpha235 returns the ideal U-235 stage factor.
func (sf *SeparationFactors) Alpha235() float64 {
	return sf.Alpha[nuclide.U235]
}

// scaled returns a copy of the table with cascade factors rebuilt for
// the given U-235 stage factor, keeping the ideal factors fixed.
func (sf *SeparationFactors) scaled(alpha235 float64) *SeparationFactors {
	out := &SeparationFactors{
		Alpha:     sf.Alpha,
		AlphaStar: make(map[nuclide.ID]float64, len(sf.Alpha)),
		Gamma235:  sf.Gamma235,
		Process:   sf.Process,
	}
	sqrtAlpha := math.Sqrt(alpha235)
	for id, alpha := range sf.Alpha {
		out.AlphaStar[id] = alpha / sqrtAlpha
	}
	return out
}

// AchievedFactor computes the per-stage U-235 separation factor that is
// self-consistent with the assays a cascade of the given staging
// actually delivers. The realized factor depends on the achieved
// concentrations and the concentrations depend on the factor, so the
// value is found by fixed-point iteration starting from the ideal
// U-235 stage factor.
func AchievedFactor(feed nuclide.Composition, sf *SeparationFactors, n StageCount) (float64, error) {
	alpha := sf.Alpha235()
	stages := n.Enriching + n.Stripping + 1

	for iter := 0; iter < IterMax; iter++ {
		product, tails, err := Concentrations(feed, sf.scaled(alpha), n)
		if err != nil {
			return 0, err
		}
		xp, err := product.Assay()
		if err != nil {
			return 0, err
		}
		xt, err := tails.Assay()
		if err != nil {
			return 0, err
		}

		// Overall achieved separation across the whole cascade, reduced
		// to the implied per-stage factor.
		gamma := (xp / (1 - xp)) / (xt / (1 - xt))
		next := math.Pow(gamma, 2.0/stages)

		if math.Abs(next-alpha) < EpsAssay {
			return next, nil
		}
		alpha = next
	}
	return 0, fmt.Errorf("%w: achieved separation factor still moving after %d iterations (last iterate %g)",
		ErrConvergence, IterMax, alpha)
}
