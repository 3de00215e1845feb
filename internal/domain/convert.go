package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is a weight unit of measure.
type Unit string

// Supported units. Kilograms is the canonical storage unit.
const (
	Kilograms Unit = "kg"
	Pounds    Unit = "lbs"
)

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	return u == Kilograms || u == Pounds
}

// kgPerLb is the avoirdupois pound.
const kgPerLb = 0.45359237

// KgFromLbs converts pounds to kilograms.
func KgFromLbs(lbs float64) float64 {
	return lbs * kgPerLb
}

// LbsFromKg converts kilograms to pounds.
func LbsFromKg(kg float64) float64 {
	return kg / kgPerLb
}

// ToKg converts v, expressed in unit, to kilograms.
func ToKg(v float64, unit Unit) float64 {
	if unit == Pounds {
		return KgFromLbs(v)
	}
	return v
}

// FromKg converts a canonical value to unit.
func FromKg(kg float64, unit Unit) float64 {
	if unit == Pounds {
		return LbsFromKg(kg)
	}
	return kg
}

// ParseUnit accepts "kg", "lb" and "lbs" in any case.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg":
		return Kilograms, nil
	case "lb", "lbs":
		return Pounds, nil
	}
	return "", ErrUnknownUnit
}

// ParseWeight parses user input into a finite number.
func ParseWeight(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumericInput, s)
	}
	return v, nil
}

// FormatWeight renders a canonical value in unit with one decimal place.
func FormatWeight(kg float64, unit Unit) string {
	return fmt.Sprintf("%.1f %s", FromKg(kg, unit), unit)
}
