package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
)

// Wire names of the base attributes.
const (
	AttrPetID      = "petId"
	AttrPetType    = "petType"
	AttrAnimalType = "animalType"
	AttrSkinType   = "skinType"
	AttrGender     = "gender"
	AttrPrice      = "price"
)

// Kind is the value shape of an attribute.
type Kind int

const (
	KindString Kind = iota
	KindEnum
	KindDecimal
	KindBool
	KindInt
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindDecimal:
		return "decimal"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field describes one extended attribute of a pet type.
// Values lists the allowed symbols of a KindEnum field.
type Field struct {
	Name   string
	Kind   Kind
	Values []string
}

// Schema supplies the extended fields registered for a pet type.
// Fields returns an error wrapping ErrUnknownDiscriminator when t is not registered.
type Schema interface {
	Fields(t PetType) ([]Field, error)
}

// Parse converts a raw decoded value into the canonical value for f.
//
// Canonical values are string (KindString, KindEnum), decimal.Decimal (KindDecimal),
// bool (KindBool) and int64 (KindInt).
func (f Field) Parse(raw any) (any, error) {
	switch f.Kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		return s, nil
	case KindEnum:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected enum symbol, got %T", raw)
		}
		if !slices.Contains(f.Values, s) {
			return nil, fmt.Errorf("unknown value %q (allowed: %v)", s, f.Values)
		}
		return s, nil
	case KindDecimal:
		return ParseDecimal(raw)
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", raw)
		}
		return b, nil
	case KindInt:
		return ParseInt(raw)
	default:
		return nil, fmt.Errorf("unsupported kind %s", f.Kind)
	}
}

// ParseDecimal converts a decoded number or numeric string into an exact decimal.
// json.Number and strings are parsed digit by digit, so no binary rounding occurs.
func ParseDecimal(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return decimal.Decimal{}, fmt.Errorf("value %d out of range", v)
		}
		return decimal.NewFromInt(int64(v)), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("expected decimal, got %T", raw)
	}
}

// ParseInt converts a decoded number or numeric string into an int64.
// Floats are accepted only when they hold an integral value.
func ParseInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("value %d out of range", v)
		}
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(v, 10, 64)
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, fmt.Errorf("expected integer, got %v", v)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", raw)
	}
}
