// Package entity defines the pet domain model used by the verification engine.
// A Pet carries a discriminator (its PetType), a fixed set of base attributes shared
// by every pet, and a set of extended attributes whose names and shapes depend on
// the PetType and are supplied by a Schema.
package entity

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PetType is the discriminator identifying a pet's concrete subtype.
type PetType string

// Pet types registered by the default catalog.
const (
	PetTypeDog  PetType = "DOG"
	PetTypeCat  PetType = "CAT"
	PetTypeBird PetType = "BIRD"
)

// AnimalType distinguishes domestic from wild animals.
type AnimalType string

const (
	AnimalTypeDomestic AnimalType = "DOMESTIC"
	AnimalTypeWild     AnimalType = "WILD"
)

// Valid reports whether a is a known AnimalType.
func (a AnimalType) Valid() bool {
	return a == AnimalTypeDomestic || a == AnimalTypeWild
}

// Skin is the body covering of a pet.
type Skin string

const (
	SkinFur      Skin = "FUR"
	SkinHair     Skin = "HAIR"
	SkinFeathers Skin = "FEATHERS"
	SkinScales   Skin = "SCALES"
)

// Valid reports whether s is a known Skin.
func (s Skin) Valid() bool {
	switch s {
	case SkinFur, SkinHair, SkinFeathers, SkinScales:
		return true
	}
	return false
}

// Gender of a pet.
type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderUnknown Gender = "UNKNOWN"
)

// Valid reports whether g is a known Gender.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

// BaseAttributes holds the attributes every pet has regardless of its type.
type BaseAttributes struct {
	AnimalType AnimalType
	SkinType   Skin
	Gender     Gender
	Price      decimal.Decimal
}

// Pet is a single inventory entity.
//
// A Pet is never mutated after construction. Extended holds the subtype-specific
// attributes keyed by name; its values are canonical (string for string and enum
// attributes, decimal.Decimal, bool or int64). Use NewPet or one of the decoders
// to build a Pet so the extended key set is checked against a Schema.
type Pet struct {
	ID         int64
	Type       PetType
	AnimalType AnimalType
	SkinType   Skin
	Gender     Gender
	Price      decimal.Decimal
	Extended   map[string]any
}

// NewPet builds a Pet and validates it against schema.
// The extended map must contain exactly the fields schema registers for petType.
func NewPet(id int64, petType PetType, base BaseAttributes, extended map[string]any, schema Schema) (Pet, error) {
	if err := validateBase(base); err != nil {
		return Pet{}, err
	}

	fields, err := schema.Fields(petType)
	if err != nil {
		return Pet{}, malformed(AttrPetType, "discriminator not registered: "+string(petType), err)
	}

	parsed, err := parseExtended(fields, extended)
	if err != nil {
		return Pet{}, err
	}

	return Pet{
		ID:         id,
		Type:       petType,
		AnimalType: base.AnimalType,
		SkinType:   base.SkinType,
		Gender:     base.Gender,
		Price:      base.Price,
		Extended:   parsed,
	}, nil
}

// Base returns the base attributes of p.
func (p Pet) Base() BaseAttributes {
	return BaseAttributes{
		AnimalType: p.AnimalType,
		SkinType:   p.SkinType,
		Gender:     p.Gender,
		Price:      p.Price,
	}
}

// Attribute returns the extended attribute name.
func (p Pet) Attribute(name string) (any, bool) {
	v, ok := p.Extended[name]
	return v, ok
}

// Clone returns a deep copy of p.
func (p Pet) Clone() Pet {
	c := p
	if p.Extended != nil {
		c.Extended = make(map[string]any, len(p.Extended))
		for k, v := range p.Extended {
			c.Extended[k] = v
		}
	}
	return c
}

// WithID returns a copy of p carrying id.
func (p Pet) WithID(id int64) Pet {
	c := p.Clone()
	c.ID = id
	return c
}

// SortByID returns deep copies of pets ordered by ascending ID.
// The input slice is left untouched.
func SortByID(pets []Pet) []Pet {
	out := CloneAll(pets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// CloneAll deep-copies every pet in pets.
func CloneAll(pets []Pet) []Pet {
	out := make([]Pet, len(pets))
	for i, p := range pets {
		out[i] = p.Clone()
	}
	return out
}

func validateBase(base BaseAttributes) error {
	if !base.AnimalType.Valid() {
		return malformed(AttrAnimalType, "unknown value "+quote(string(base.AnimalType)), nil)
	}
	if !base.SkinType.Valid() {
		return malformed(AttrSkinType, "unknown value "+quote(string(base.SkinType)), nil)
	}
	if !base.Gender.Valid() {
		return malformed(AttrGender, "unknown value "+quote(string(base.Gender)), nil)
	}
	return nil
}

func parseExtended(fields []Field, extended map[string]any) (map[string]any, error) {
	known := make(map[string]struct{}, len(fields))
	parsed := make(map[string]any, len(fields))
	for _, f := range fields {
		known[f.Name] = struct{}{}
		raw, ok := extended[f.Name]
		if !ok || raw == nil {
			return nil, malformed(f.Name, "required attribute missing", nil)
		}
		v, err := f.Parse(raw)
		if err != nil {
			return nil, malformed(f.Name, "wrong shape", err)
		}
		parsed[f.Name] = v
	}

	// Report unknown keys in a stable order.
	var unknown []string
	for name := range extended {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, malformed(unknown[0], "attribute not defined for this pet type", nil)
	}
	return parsed, nil
}

func quote(s string) string {
	return "'" + s + "'"
}
