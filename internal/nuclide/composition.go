package nuclide

import "fmt"

// Composition maps tracked nuclides to their non-negative fraction of
// the stream (atom or mass basis, depending on the caller's convention).
// Unset nuclides are implicitly zero. Non-uranium elements are not
// represented; in an enrichment cascade they are sent directly to the
// tails.
type Composition map[ID]float64

// Sum returns the total uranium content over the tracked isotopes.
func (c Composition) Sum() float64 {
	var tot float64
	for _, id := range Isotopes() {
		tot += c[id]
	}
	return tot
}

// Clone returns an independent copy of the composition.
func (c Composition) Clone() Composition {
	out := make(Composition, len(c))
	for id, frac := range c {
		out[id] = frac
	}
	return out
}

// Frac returns the fraction of nuclide id relative to the total uranium
// content of the composition.
func (c Composition) Frac(id ID) (float64, error) {
	tot := c.Sum()
	if tot < 1e-12 {
		return 0, fmt.Errorf("%w: cannot compute fraction of nuclide %d", ErrArithmetic, int(id))
	}
	return c[id] / tot, nil
}

// Assay returns the U-235 fraction relative to total uranium content.
func (c Composition) Assay() (float64, error) {
	return c.Frac(U235)
}

// Normalize returns a copy of the composition scaled so the tracked
// fractions sum to one. Nuclides outside the tracked set are dropped.
func (c Composition) Normalize() (Composition, error) {
	tot := c.Sum()
	if tot < 1e-12 {
		return nil, fmt.Errorf("%w: cannot normalize composition", ErrArithmetic)
	}
	out := make(Composition, len(c))
	for _, id := range Isotopes() {
		if frac, ok := c[id]; ok {
			out[id] = frac / tot
		}
	}
	return out, nil
}

// Reference uranium vectors, in atom fractions. Values are normalized
// on use, so they may be given in percent here.

// NaturalU returns the composition of natural uranium.
func NaturalU() Composition {
	return Composition{U235: 0.711, U238: 99.289}
}

// DepletedU returns a typical enrichment-tails composition.
func DepletedU() Composition {
	return Composition{U235: 0.3, U238: 99.7}
}

// ReprocessedU returns a typical reprocessed uranium composition with
// the minor isotopes built up during irradiation.
func ReprocessedU() Composition {
	return Composition{
		U232: 1e-7,
		U233: 2e-7,
		U234: 0.02,
		U235: 0.83,
		U236: 0.40,
		U238: 98.75,
	}
}

// WeaponGradeU returns a highly enriched uranium composition.
func WeaponGradeU() Composition {
	return Composition{U234: 1.0, U235: 93.0, U236: 0.5, U238: 5.5}
}
