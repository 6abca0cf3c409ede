package cascade

import (
	"math"

	"github.com/nfcsim/gocascade/internal/nuclide"
)

// AssayProfile returns the per-stage U-235 assay from the bottom of
// the stripping section to the top of the enriching section. The first
// entry is the tails withdrawal, the entry at index
// ceil(n_stripping)+1 is the feed point, the last entry is the product
// withdrawal. The walk applies the per-stage abundance-ratio gain of
// the matched cascade to the feed assay.
func AssayProfile(feedAssay float64, sf *SeparationFactors, n StageCount) []float64 {
	gain := sf.AlphaStar[nuclide.U235]
	stripping := int(math.Ceil(n.Stripping))
	enriching := int(math.Ceil(n.Enriching))

	feedRatio := feedAssay / (1 - feedAssay)
	profile := make([]float64, 0, stripping+enriching+2)
	for k := -(stripping + 1); k <= enriching; k++ {
		r := feedRatio * math.Pow(gain, float64(k))
		profile = append(profile, r/(1+r))
	}
	return profile
}
