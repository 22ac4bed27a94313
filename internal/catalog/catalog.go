// Package catalog enumerates the attributes compared for each pet type.
//
// Every pet shares the same base attributes. Subtype-specific (extended)
// attributes are registered per PetType; adding a new pet type is a single
// Register call and needs no change to the comparison engine. A Catalog also
// acts as the entity.Schema used when decoding pets, so the set of extended
// keys accepted by the decoder and the set of attributes compared are always
// the same.
//
// A Catalog is populated during setup and read-only afterwards; it is safe
// for concurrent readers once registration is complete.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"petstore-verify/internal/domain/entity"
)

// Registration errors.
var (
	// ErrDuplicateAttribute indicates an attribute name already used by the base
	// set or by another field of the same registration.
	ErrDuplicateAttribute = errors.New("duplicate attribute name")

	// ErrAlreadyRegistered indicates a second registration for the same pet type.
	ErrAlreadyRegistered = errors.New("pet type already registered")

	// ErrInvalidField indicates a field definition that cannot be compared.
	ErrInvalidField = errors.New("invalid field definition")
)

// AttributeSpec is a named attribute descriptor with an accessor and a comparator.
type AttributeSpec struct {
	Name       string
	Kind       entity.Kind
	Accessor   Accessor
	Comparator Comparator
}

// Catalog maps pet types to their attribute specs.
type Catalog struct {
	base     []AttributeSpec
	fields   map[entity.PetType][]entity.Field
	extended map[entity.PetType][]AttributeSpec
}

// New returns a catalog holding only the base attributes.
func New() *Catalog {
	return &Catalog{
		base:     baseSpecs(),
		fields:   make(map[entity.PetType][]entity.Field),
		extended: make(map[entity.PetType][]AttributeSpec),
	}
}

// Default returns a catalog with the DOG, CAT and BIRD subtypes registered.
func Default() *Catalog {
	c := New()
	for _, reg := range defaultRegistrations() {
		if err := c.Register(reg.petType, reg.fields...); err != nil {
			panic(fmt.Sprintf("catalog: default registration for %s: %v", reg.petType, err))
		}
	}
	return c
}

// Register adds the extended fields of petType.
// Names must be unique across the base attributes and the given fields.
func (c *Catalog) Register(petType entity.PetType, fields ...entity.Field) error {
	if petType == "" {
		return fmt.Errorf("%w: empty pet type", ErrInvalidField)
	}
	if _, ok := c.fields[petType]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, petType)
	}

	seen := make(map[string]struct{}, len(c.base)+len(fields))
	for _, s := range c.base {
		seen[s.Name] = struct{}{}
	}

	specs := make([]AttributeSpec, 0, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("%w: %s: empty attribute name", ErrInvalidField, petType)
		}
		if f.Kind == entity.KindEnum && len(f.Values) == 0 {
			return fmt.Errorf("%w: %s.%s: enum without values", ErrInvalidField, petType, f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateAttribute, petType, f.Name)
		}
		seen[f.Name] = struct{}{}
		specs = append(specs, extendedSpec(f))
	}

	c.fields[petType] = cloneFields(fields)
	c.extended[petType] = specs
	return nil
}

// Base returns the attributes shared by every pet type.
func (c *Catalog) Base() []AttributeSpec {
	return append([]AttributeSpec(nil), c.base...)
}

// Extended returns the subtype-specific attributes of petType.
func (c *Catalog) Extended(petType entity.PetType) ([]AttributeSpec, error) {
	specs, ok := c.extended[petType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownDiscriminator, petType)
	}
	return append([]AttributeSpec(nil), specs...), nil
}

// Attributes returns the base attributes followed by the extended attributes of petType.
func (c *Catalog) Attributes(petType entity.PetType) ([]AttributeSpec, error) {
	ext, err := c.Extended(petType)
	if err != nil {
		return nil, err
	}
	return append(c.Base(), ext...), nil
}

// Fields implements entity.Schema.
func (c *Catalog) Fields(petType entity.PetType) ([]entity.Field, error) {
	fields, ok := c.fields[petType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownDiscriminator, petType)
	}
	return cloneFields(fields), nil
}

// Types returns the registered pet types in sorted order.
func (c *Catalog) Types() []entity.PetType {
	types := make([]entity.PetType, 0, len(c.fields))
	for t := range c.fields {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func baseSpecs() []AttributeSpec {
	return []AttributeSpec{
		{
			Name:       entity.AttrPetID,
			Kind:       entity.KindInt,
			Accessor:   func(p entity.Pet) any { return p.ID },
			Comparator: EqualInt,
		},
		{
			Name:       entity.AttrAnimalType,
			Kind:       entity.KindEnum,
			Accessor:   func(p entity.Pet) any { return string(p.AnimalType) },
			Comparator: EqualString,
		},
		{
			Name:       entity.AttrSkinType,
			Kind:       entity.KindEnum,
			Accessor:   func(p entity.Pet) any { return string(p.SkinType) },
			Comparator: EqualString,
		},
		{
			Name:       entity.AttrGender,
			Kind:       entity.KindEnum,
			Accessor:   func(p entity.Pet) any { return string(p.Gender) },
			Comparator: EqualString,
		},
		{
			Name:       entity.AttrPrice,
			Kind:       entity.KindDecimal,
			Accessor:   func(p entity.Pet) any { return p.Price },
			Comparator: EqualDecimal,
		},
	}
}

func extendedSpec(f entity.Field) AttributeSpec {
	name := f.Name
	return AttributeSpec{
		Name: name,
		Kind: f.Kind,
		Accessor: func(p entity.Pet) any {
			v, _ := p.Attribute(name)
			return v
		},
		Comparator: ComparatorFor(f.Kind),
	}
}

func cloneFields(fields []entity.Field) []entity.Field {
	out := make([]entity.Field, len(fields))
	for i, f := range fields {
		f.Values = append([]string(nil), f.Values...)
		out[i] = f
	}
	return out
}
