package nuclide

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIsotope is returned for isotopes outside the tracked
	// uranium set {232, 233, 234, 235, 236, 238}.
	ErrInvalidIsotope = errors.New("invalid (non-uranium) isotope")

	// ErrArithmetic is returned when a fraction query would divide by a
	// vanishing total uranium content.
	ErrArithmetic = errors.New("total uranium content is zero")
)

// ID identifies a nuclide in ZZZAAAMMMM form, e.g. 922350000 for U-235.
type ID int

// The tracked uranium isotopes, in increasing mass order.
const (
	U232 ID = 922320000
	U233 ID = 922330000
	U234 ID = 922340000
	U235 ID = 922350000
	U236 ID = 922360000
	U238 ID = 922380000
)

var isotopes = []int{232, 233, 234, 235, 236, 238}

// A returns the mass number of a nuclide.
func (id ID) A() int {
	return (int(id) / 10000) % 1000
}

// Z returns the atomic number of a nuclide.
func (id ID) Z() int {
	return int(id) / 10000000
}

// Isotopes returns the fixed ordered set of tracked uranium nuclides.
func Isotopes() []ID {
	ids := make([]ID, len(isotopes))
	for i, a := range isotopes {
		ids[i] = ID((92*1000 + a) * 10000)
	}
	return ids
}

// FromIsotope converts a bare mass number to the full nuclide id.
func FromIsotope(isotope int) (ID, error) {
	for _, a := range isotopes {
		if a == isotope {
			return ID((92*1000 + isotope) * 10000), nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidIsotope, isotope)
}

// Isotope converts a nuclide id back to its bare mass number.
func (id ID) Isotope() (int, error) {
	for _, tracked := range Isotopes() {
		if tracked == id {
			return int(id)/10000 - 92*1000, nil
		}
	}
	return 0, fmt.Errorf("%w: nuclide id %d", ErrInvalidIsotope, int(id))
}
