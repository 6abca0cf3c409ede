package cascade

import (
	"fmt"
	"math"

	"github.com/nfcsim/gocascade/internal/nuclide"
)

// Concentrations computes the product and tails compositions of a
// matched abundance-ratio cascade with the given staging, following
// von Halle, "Multicomponent isotope separation in matched abundance
// ratio cascades composed of stages with large separation factors"
// (1987).
//
// For each isotope the enriching and stripping sections contribute the
// geometric sums
//
//	e = 1/alpha* / (1 - alpha*^(-n_enriching))
//	s = 1/alpha* / (alpha*^(n_stripping+1) - 1)
//
// and the product and tails fractions are the feed fraction split in
// the ratio e : s, renormalized over all isotopes.
func Concentrations(feed nuclide.Composition, sf *SeparationFactors, n StageCount) (product, tails nuclide.Composition, err error) {
	if n.Enriching <= 0 || n.Stripping < 0 {
		return nil, nil, fmt.Errorf("%w: stage counts out of range (enriching %g, stripping %g)",
			ErrInvalidInput, n.Enriching, n.Stripping)
	}

	ids := nuclide.Isotopes()
	e := make(map[nuclide.ID]float64, len(ids))
	s := make(map[nuclide.ID]float64, len(ids))
	var eSum, sSum float64
	for _, id := range ids {
		alphaStar := sf.AlphaStar[id]
		e[id] = 1 / alphaStar / (1 - math.Pow(alphaStar, -n.Enriching))
		s[id] = 1 / alphaStar / (math.Pow(alphaStar, n.Stripping+1) - 1)
		eSum += e[id] * feed[id] / (e[id] + s[id])
		sSum += s[id] * feed[id] / (e[id] + s[id])
	}
	if eSum < 1e-12 || sSum < 1e-12 {
		return nil, nil, fmt.Errorf("%w: cascade cut vanished (enriching sum %g, stripping sum %g)",
			nuclide.ErrArithmetic, eSum, sSum)
	}

	product = make(nuclide.Composition, len(ids))
	tails = make(nuclide.Composition, len(ids))
	for _, id := range ids {
		if feed[id] == 0 {
			continue
		}
		product[id] = e[id] * feed[id] / ((e[id] + s[id]) * eSum)
		tails[id] = s[id] * feed[id] / ((e[id] + s[id]) * sSum)
	}
	return product, tails, nil
}

// MaximalAssay returns the asymptotic U-235 product assay reachable
// from the given feed as the enriching section grows without bound,
// holding the stripping section fixed. Isotopes lighter than the
// matched pair concentrate faster than U-235, so a feed rich in minor
// isotopes may never reach a requested assay.
func MaximalAssay(feed nuclide.Composition, sf *SeparationFactors, stripping float64) (float64, error) {
	var u235, total float64
	for _, id := range nuclide.Isotopes() {
		alphaStar := sf.AlphaStar[id]
		if alphaStar <= 1 {
			// Heavy isotopes leave the product entirely in the limit.
			continue
		}
		m := math.Pow(alphaStar, stripping+1)
		w := feed[id] * (m - 1) / m
		total += w
		if id == nuclide.U235 {
			u235 = w
		}
	}
	if total < 1e-12 {
		return 0, fmt.Errorf("%w: no enrichable isotopes in feed", nuclide.ErrArithmetic)
	}
	return u235 / total, nil
}
