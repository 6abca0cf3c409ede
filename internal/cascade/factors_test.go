package cascade

import (
	"math"
	"testing"

	"github.com/nfcsim/gocascade/internal/nuclide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeparationFactors(t *testing.T) {
	sf, err := NewSeparationFactors(1.4, Centrifuge)
	require.NoError(t, err)

	alpha235 := math.Sqrt(1.4)
	assert.InDelta(t, alpha235, sf.Alpha[nuclide.U235], 1e-12)
	assert.InDelta(t, 1.0, sf.Alpha[nuclide.U238], 1e-12)

	// Linear extrapolation in mass difference from U-238.
	assert.InDelta(t, 1+6*(alpha235-1)/3, sf.Alpha[nuclide.U232], 1e-12)
	assert.InDelta(t, 1+2*(alpha235-1)/3, sf.Alpha[nuclide.U236], 1e-12)

	// Cascade factors are the ideal factors rescaled by sqrt(alpha_235).
	assert.InDelta(t, math.Sqrt(alpha235), sf.AlphaStar[nuclide.U235], 1e-12)
	assert.InDelta(t, 1/math.Sqrt(alpha235), sf.AlphaStar[nuclide.U238], 1e-12)

	// Lighter isotopes separate more strongly.
	prev := 0.0
	for _, id := range nuclide.Isotopes() {
		cur := sf.Alpha[id]
		if prev != 0 {
			assert.Less(t, cur, prev, "alpha must decrease with mass")
		}
		prev = cur
	}
}

func TestNewSeparationFactorsDiffusion(t *testing.T) {
	// Gaseous diffusion works at much weaker per-stage separation; the
	// factor algebra itself is process-independent.
	sf, err := NewSeparationFactors(1.004, Diffusion)
	require.NoError(t, err)
	assert.Equal(t, Diffusion, sf.Process)

	alpha235 := math.Sqrt(1.004)
	assert.InDelta(t, alpha235, sf.Alpha[nuclide.U235], 1e-12)
	assert.InDelta(t, 1+4*(alpha235-1)/3, sf.Alpha[nuclide.U234], 1e-12)
	assert.InDelta(t, math.Sqrt(alpha235), sf.AlphaStar[nuclide.U235], 1e-12)
	assert.InDelta(t, 1/math.Sqrt(alpha235), sf.AlphaStar[nuclide.U238], 1e-12)
}

func TestNewSeparationFactorsInvalid(t *testing.T) {
	_, err := NewSeparationFactors(1.0, Centrifuge)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewSeparationFactors(0.9, Centrifuge)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewSeparationFactors(1.4, Process("laser"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAchievedFactorBinaryFeed(t *testing.T) {
	// With a two-component feed the achieved per-stage factor equals
	// the ideal U-235 stage factor: the fixed point settles immediately.
	feed, err := nuclide.NaturalU().Normalize()
	require.NoError(t, err)
	sf, err := NewSeparationFactors(1.4, Centrifuge)
	require.NoError(t, err)

	feedAssay, err := feed.Assay()
	require.NoError(t, err)
	n, err := DecimalStages(feedAssay, 0.05, 0.0025, sf)
	require.NoError(t, err)

	achieved, err := AchievedFactor(feed, sf, n)
	require.NoError(t, err)
	assert.InDelta(t, sf.Alpha235(), achieved, 1e-6)
}

func TestAchievedFactorMultiIsotope(t *testing.T) {
	feed, err := nuclide.ReprocessedU().Normalize()
	require.NoError(t, err)
	sf, err := NewSeparationFactors(1.4, Centrifuge)
	require.NoError(t, err)

	feedAssay, err := feed.Assay()
	require.NoError(t, err)
	n, err := DecimalStages(feedAssay, 0.05, 0.0025, sf)
	require.NoError(t, err)

	achieved, err := AchievedFactor(feed, sf, n)
	require.NoError(t, err)

	// Minor isotopes shift the realized factor, but not far from ideal.
	assert.InDelta(t, sf.Alpha235(), achieved, 0.05)
	assert.Greater(t, achieved, 1.0)
}
