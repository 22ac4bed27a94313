package catalog

import "petstore-verify/internal/domain/entity"

// Extended attribute names of the default pet types.
const (
	AttrBreed      = "breed"
	AttrCoatLength = "coatLength"
	AttrWingSpan   = "wingSpan"
	AttrCanTalk    = "canTalk"
)

// Breeds of the default pet types.
const (
	BreedGreyHound      = "GREY_HOUND"
	BreedPoodle         = "POODLE"
	BreedGermanShepherd = "GERMAN_SHEPHERD"
	BreedLabrador       = "LABRADOR"
	BreedBeagle         = "BEAGLE"

	BreedSiamese   = "SIAMESE"
	BreedPersian   = "PERSIAN"
	BreedSphynx    = "SPHYNX"
	BreedMaineCoon = "MAINE_COON"

	BreedParakeet  = "PARAKEET"
	BreedCockatiel = "COCKATIEL"
	BreedCanary    = "CANARY"
)

type registration struct {
	petType entity.PetType
	fields  []entity.Field
}

func defaultRegistrations() []registration {
	return []registration{
		{
			petType: entity.PetTypeDog,
			fields: []entity.Field{
				{Name: AttrBreed, Kind: entity.KindEnum, Values: []string{
					BreedGreyHound, BreedPoodle, BreedGermanShepherd, BreedLabrador, BreedBeagle,
				}},
			},
		},
		{
			petType: entity.PetTypeCat,
			fields: []entity.Field{
				{Name: AttrBreed, Kind: entity.KindEnum, Values: []string{
					BreedSiamese, BreedPersian, BreedSphynx, BreedMaineCoon,
				}},
				{Name: AttrCoatLength, Kind: entity.KindEnum, Values: []string{"HAIRLESS", "SHORT", "LONG"}},
			},
		},
		{
			petType: entity.PetTypeBird,
			fields: []entity.Field{
				{Name: AttrBreed, Kind: entity.KindEnum, Values: []string{
					BreedParakeet, BreedCockatiel, BreedCanary,
				}},
				{Name: AttrWingSpan, Kind: entity.KindDecimal},
				{Name: AttrCanTalk, Kind: entity.KindBool},
			},
		},
	}
}
