package cascade

import (
	"fmt"

	"github.com/nfcsim/gocascade/internal/nuclide"
)

// downblend dilutes an over-enriched product stream with raw feed
// until its U-235 assay equals the target exactly. Integer-stage
// rounding may only err upward under the no-undershoot policy, so
// blending is only ever needed in that direction. The blended feed
// increases both product produced and feed used, and the separative
// work is recomputed for the blended streams.
func downblend(res *Result, fl *Flows, feed nuclide.Composition, targetAssay float64) error {
	productAssay, err := res.Product.Assay()
	if err != nil {
		return err
	}
	if productAssay <= targetAssay+EpsAssay {
		// Nothing to blend away.
		return nil
	}
	feedAssay, err := feed.Assay()
	if err != nil {
		return err
	}
	if feedAssay >= targetAssay {
		return fmt.Errorf("%w: cannot downblend to assay %g with feed at assay %g",
			ErrInvalidInput, targetAssay, feedAssay)
	}

	// Mass of feed bringing the mixture to the target assay.
	blend := fl.Product * (productAssay - targetAssay) / (targetAssay - feedAssay)

	blended := make(nuclide.Composition, len(res.Product))
	for _, id := range nuclide.Isotopes() {
		frac := (fl.Product*res.Product[id] + blend*feed[id]) / (fl.Product + blend)
		if frac > 0 {
			blended[id] = frac
		}
	}
	res.Product = blended
	fl.Product += blend
	fl.Feed += blend

	tailsAssay, err := res.Tails.Assay()
	if err != nil {
		return err
	}
	fl.SWU = fl.Product*ValueFunction(targetAssay) +
		fl.Tails*ValueFunction(tailsAssay) -
		fl.Feed*ValueFunction(feedAssay)
	return nil
}
