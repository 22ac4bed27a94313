package catalog

import (
	"github.com/shopspring/decimal"

	"petstore-verify/internal/domain/entity"
)

// Comparator reports whether an actual attribute value matches the expected one.
type Comparator func(expected, actual any) bool

// Accessor reads one attribute value from a pet.
type Accessor func(entity.Pet) any

// ComparatorFor returns the comparator used for attributes of kind k.
func ComparatorFor(k entity.Kind) Comparator {
	switch k {
	case entity.KindDecimal:
		return EqualDecimal
	case entity.KindBool:
		return EqualBool
	case entity.KindInt:
		return EqualInt
	default:
		return EqualString
	}
}

// EqualDecimal compares two decimals by exact value. No rounding is applied,
// so 199.99 and 199.990 match while 199.99 and 199.9900001 do not.
func EqualDecimal(expected, actual any) bool {
	e, ok := expected.(decimal.Decimal)
	if !ok {
		return false
	}
	a, ok := actual.(decimal.Decimal)
	if !ok {
		return false
	}
	return e.Equal(a)
}

// EqualString compares strings and enum symbols by exact match.
func EqualString(expected, actual any) bool {
	e, ok := expected.(string)
	if !ok {
		return false
	}
	a, ok := actual.(string)
	return ok && e == a
}

// EqualBool compares two booleans.
func EqualBool(expected, actual any) bool {
	e, ok := expected.(bool)
	if !ok {
		return false
	}
	a, ok := actual.(bool)
	return ok && e == a
}

// EqualInt compares two int64 values.
func EqualInt(expected, actual any) bool {
	e, ok := expected.(int64)
	if !ok {
		return false
	}
	a, ok := actual.(int64)
	return ok && e == a
}
