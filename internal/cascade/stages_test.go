package cascade

import (
	"math"
	"testing"

	"github.com/nfcsim/gocascade/internal/nuclide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func naturalFeed(t *testing.T) nuclide.Composition {
	t.Helper()
	feed, err := nuclide.Composition{nuclide.U235: 0.00711, nuclide.U238: 0.99289}.Normalize()
	require.NoError(t, err)
	return feed
}

func centrifugeFactors(t *testing.T, gamma float64) *SeparationFactors {
	t.Helper()
	sf, err := NewSeparationFactors(gamma, Centrifuge)
	require.NoError(t, err)
	return sf
}

func TestDecimalStagesHitTargets(t *testing.T) {
	feed := naturalFeed(t)
	sf := centrifugeFactors(t, 1.4)

	n, err := DecimalStages(0.00711, 0.05, 0.0025, sf)
	require.NoError(t, err)
	assert.Greater(t, n.Enriching, 0.0)
	assert.Greater(t, n.Stripping, 0.0)

	// The continuous solution, fed back through the cascade algebra,
	// reproduces the targets exactly for a two-component feed.
	product, tails, err := Concentrations(feed, sf, n)
	require.NoError(t, err)
	xp, err := product.Assay()
	require.NoError(t, err)
	xt, err := tails.Assay()
	require.NoError(t, err)
	assert.InDelta(t, 0.05, xp, 1e-9)
	assert.InDelta(t, 0.0025, xt, 1e-9)
}

func TestDecimalStagesOrdering(t *testing.T) {
	sf := centrifugeFactors(t, 1.4)

	_, err := DecimalStages(0.00711, 0.0025, 0.05, sf)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = DecimalStages(0.06, 0.05, 0.0025, sf)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = DecimalStages(0.002, 0.05, 0.0025, sf)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConcentrationsNormalized(t *testing.T) {
	feed, err := nuclide.ReprocessedU().Normalize()
	require.NoError(t, err)
	sf := centrifugeFactors(t, 1.4)

	product, tails, err := Concentrations(feed, sf, StageCount{Enriching: 20, Stripping: 10})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, product.Sum(), EpsComposition)
	assert.InDelta(t, 1.0, tails.Sum(), EpsComposition)

	// Minor light isotopes concentrate into the product.
	assert.Greater(t, product[nuclide.U234], feed[nuclide.U234])
	assert.Less(t, tails[nuclide.U234], feed[nuclide.U234])
}

func TestDecimalStagesFractionalEnriching(t *testing.T) {
	feed := naturalFeed(t)
	sf := centrifugeFactors(t, 1.4)

	// A product target barely above the feed assay needs less than one
	// enriching stage; the continuous solution stays valid there.
	n, err := DecimalStages(0.00711, 0.0075, 0.0025, sf)
	require.NoError(t, err)
	assert.Greater(t, n.Enriching, 0.0)
	assert.Less(t, n.Enriching, 1.0)

	product, tails, err := Concentrations(feed, sf, n)
	require.NoError(t, err)
	xp, err := product.Assay()
	require.NoError(t, err)
	xt, err := tails.Assay()
	require.NoError(t, err)
	assert.InDelta(t, 0.0075, xp, 1e-9)
	assert.InDelta(t, 0.0025, xt, 1e-9)
}

func TestConcentrationsInvalidStaging(t *testing.T) {
	feed := naturalFeed(t)
	sf := centrifugeFactors(t, 1.4)

	_, _, err := Concentrations(feed, sf, StageCount{Enriching: 0, Stripping: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = Concentrations(feed, sf, StageCount{Enriching: 10, Stripping: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIntegerStagesNoUndershoot(t *testing.T) {
	feed := naturalFeed(t)
	sf := centrifugeFactors(t, 1.4)

	n, err := IntegerStages(feed, 0.05, 0.0025, sf,
		StageCount{Enriching: -1, Stripping: -1}, NelderMead{})
	require.NoError(t, err)

	assert.Equal(t, n.Enriching, math.Trunc(n.Enriching), "enriching stages must be integral")
	assert.Equal(t, n.Stripping, math.Trunc(n.Stripping), "stripping stages must be integral")

	product, tails, err := Concentrations(feed, sf, n)
	require.NoError(t, err)
	xp, err := product.Assay()
	require.NoError(t, err)
	xt, err := tails.Assay()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, xp, 0.05-1e-9, "product may not undershoot")
	assert.LessOrEqual(t, xt, 0.0025+1e-9, "tails may not overshoot")

	// Smallest qualifying pair: one fewer stage in either section must
	// break its target.
	fewer, _, err := Concentrations(feed, sf, StageCount{Enriching: n.Enriching - 1, Stripping: n.Stripping})
	require.NoError(t, err)
	xpFewer, err := fewer.Assay()
	require.NoError(t, err)
	assert.Less(t, xpFewer, 0.05)
}

func TestIntegerStagesCallerSeed(t *testing.T) {
	feed := naturalFeed(t)
	sf := centrifugeFactors(t, 1.4)

	cont, err := DecimalStages(0.00711, 0.05, 0.0025, sf)
	require.NoError(t, err)

	n, err := IntegerStages(feed, 0.05, 0.0025, sf,
		StageCount{Enriching: cont.Enriching + 1, Stripping: cont.Stripping + 1}, NelderMead{})
	require.NoError(t, err)

	product, tails, err := Concentrations(feed, sf, n)
	require.NoError(t, err)
	xp, err := product.Assay()
	require.NoError(t, err)
	xt, err := tails.Assay()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, xp, 0.05-1e-9)
	assert.LessOrEqual(t, xt, 0.0025+1e-9)
}

func TestIntegerStagesDiffusion(t *testing.T) {
	feed := naturalFeed(t)
	sf, err := NewSeparationFactors(1.004, Diffusion)
	require.NoError(t, err)

	// At diffusion-scale separation the cascade needs thousands of
	// stages, far past the centrifuge section limit.
	cont, err := DecimalStages(0.00711, 0.05, 0.0025, sf)
	require.NoError(t, err)
	assert.Greater(t, cont.Enriching, 1000.0)

	// Seed short of the continuous solution so no rounding corner
	// qualifies and the bounded fallback search runs.
	n, err := IntegerStages(feed, 0.05, 0.0025, sf,
		StageCount{Enriching: cont.Enriching - 10, Stripping: cont.Stripping - 10}, NelderMead{})
	require.NoError(t, err)

	assert.Equal(t, n.Enriching, math.Trunc(n.Enriching))
	assert.Equal(t, n.Stripping, math.Trunc(n.Stripping))
	assert.Greater(t, n.Enriching, 200.0)

	product, tails, err := Concentrations(feed, sf, n)
	require.NoError(t, err)
	xp, err := product.Assay()
	require.NoError(t, err)
	xt, err := tails.Assay()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, xp, 0.05-1e-9)
	assert.LessOrEqual(t, xt, 0.0025+1e-9)
}

func TestIntegerStagesUnreachableAssay(t *testing.T) {
	// Reprocessed uranium carries enough U-236 that very high product
	// assays are asymptotically unreachable.
	feed, err := nuclide.ReprocessedU().Normalize()
	require.NoError(t, err)
	sf := centrifugeFactors(t, 1.4)

	_, err = IntegerStages(feed, 0.97, 0.0025, sf,
		StageCount{Enriching: -1, Stripping: -1}, NelderMead{})
	assert.ErrorIs(t, err, ErrCapacityInfeasible)
}

func TestMaximalAssay(t *testing.T) {
	feed, err := nuclide.ReprocessedU().Normalize()
	require.NoError(t, err)
	sf := centrifugeFactors(t, 1.4)

	maximal, err := MaximalAssay(feed, sf, 12)
	require.NoError(t, err)
	assert.Greater(t, maximal, 0.5)
	assert.Less(t, maximal, 1.0)

	// The cascade never exceeds the asymptote.
	product, _, err := Concentrations(feed, sf, StageCount{Enriching: 150, Stripping: 12})
	require.NoError(t, err)
	xp, err := product.Assay()
	require.NoError(t, err)
	assert.LessOrEqual(t, xp, maximal+1e-9)
}

func TestAssayProfile(t *testing.T) {
	sf := centrifugeFactors(t, 1.4)
	n := StageCount{Enriching: 24, Stripping: 12}

	profile := AssayProfile(0.00711, sf, n)
	require.Len(t, profile, 24+12+2)

	// Monotone from tails end to product end, passing the feed assay.
	for i := 1; i < len(profile); i++ {
		assert.Greater(t, profile[i], profile[i-1])
	}
	assert.InDelta(t, 0.00711, profile[13], 1e-12)
}
