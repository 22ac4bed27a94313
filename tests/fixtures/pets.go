// Package fixtures provides reusable pet builders for tests.
// Every builder validates through the default catalog, so a pet built here
// decodes and compares exactly like one read from a fixture file.
package fixtures

import (
	"fmt"

	"github.com/shopspring/decimal"

	"petstore-verify/internal/catalog"
	"petstore-verify/internal/domain/entity"
)

// Schema is the default catalog shared by the builders.
var Schema = catalog.Default()

// Option modifies the base attributes of a built pet.
type Option func(*entity.BaseAttributes)

// WithGender sets the gender.
func WithGender(g entity.Gender) Option {
	return func(b *entity.BaseAttributes) { b.Gender = g }
}

// WithAnimalType sets the animal type.
func WithAnimalType(a entity.AnimalType) Option {
	return func(b *entity.BaseAttributes) { b.AnimalType = a }
}

// Dog builds a domestic, furred, female dog.
func Dog(id int64, breed, price string, opts ...Option) entity.Pet {
	return build(id, entity.PetTypeDog, entity.SkinFur, price, map[string]any{
		catalog.AttrBreed: breed,
	}, opts)
}

// Cat builds a domestic, haired, female cat.
func Cat(id int64, breed, coatLength, price string, opts ...Option) entity.Pet {
	return build(id, entity.PetTypeCat, entity.SkinHair, price, map[string]any{
		catalog.AttrBreed:      breed,
		catalog.AttrCoatLength: coatLength,
	}, opts)
}

// Bird builds a domestic, feathered bird of unknown gender.
func Bird(id int64, breed, wingSpan string, canTalk bool, price string, opts ...Option) entity.Pet {
	opts = append([]Option{WithGender(entity.GenderUnknown)}, opts...)
	return build(id, entity.PetTypeBird, entity.SkinFeathers, price, map[string]any{
		catalog.AttrBreed:    breed,
		catalog.AttrWingSpan: wingSpan,
		catalog.AttrCanTalk:  canTalk,
	}, opts)
}

// Inventory returns the pets of testdata/pets.json in file order.
func Inventory() []entity.Pet {
	return []entity.Pet{
		Cat(3, catalog.BreedSiamese, "SHORT", "149.50"),
		Dog(1, catalog.BreedGreyHound, "199.99"),
		Dog(2, catalog.BreedPoodle, "250.00", WithGender(entity.GenderMale)),
		Cat(4, catalog.BreedSphynx, "HAIRLESS", "320.00", WithGender(entity.GenderMale)),
		Bird(5, catalog.BreedParakeet, "0.30", true, "45.25"),
	}
}

func build(id int64, t entity.PetType, skin entity.Skin, price string, ext map[string]any, opts []Option) entity.Pet {
	base := entity.BaseAttributes{
		AnimalType: entity.AnimalTypeDomestic,
		SkinType:   skin,
		Gender:     entity.GenderFemale,
		Price:      decimal.RequireFromString(price),
	}
	for _, opt := range opts {
		opt(&base)
	}
	p, err := entity.NewPet(id, t, base, ext, Schema)
	if err != nil {
		panic(fmt.Sprintf("fixtures: build %s %d: %v", t, id, err))
	}
	return p
}
