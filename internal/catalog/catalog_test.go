package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstore-verify/internal/domain/entity"
)

func specNames(specs []AttributeSpec) []string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	return names
}

func TestDefault_Attributes(t *testing.T) {
	c := Default()

	tests := []struct {
		petType entity.PetType
		want    []string
	}{
		{entity.PetTypeDog, []string{"petId", "animalType", "skinType", "gender", "price", "breed"}},
		{entity.PetTypeCat, []string{"petId", "animalType", "skinType", "gender", "price", "breed", "coatLength"}},
		{entity.PetTypeBird, []string{"petId", "animalType", "skinType", "gender", "price", "breed", "wingSpan", "canTalk"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.petType), func(t *testing.T) {
			specs, err := c.Attributes(tt.petType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, specNames(specs))
		})
	}

	assert.Equal(t, []entity.PetType{entity.PetTypeBird, entity.PetTypeCat, entity.PetTypeDog}, c.Types())
}

func TestCatalog_UnknownDiscriminator(t *testing.T) {
	c := Default()

	_, err := c.Extended("FISH")
	assert.True(t, errors.Is(err, entity.ErrUnknownDiscriminator))

	_, err = c.Attributes("FISH")
	assert.ErrorIs(t, err, entity.ErrUnknownDiscriminator)

	_, err = c.Fields("FISH")
	assert.ErrorIs(t, err, entity.ErrUnknownDiscriminator)
}

func TestCatalog_Register(t *testing.T) {
	tests := []struct {
		name    string
		petType entity.PetType
		fields  []entity.Field
		wantErr error
	}{
		{
			name:    "new pet type",
			petType: "FISH",
			fields:  []entity.Field{{Name: "finCount", Kind: entity.KindInt}, {Name: "saltwater", Kind: entity.KindBool}},
		},
		{
			name:    "no extended fields",
			petType: "HAMSTER",
		},
		{
			name:    "shadows a base attribute",
			petType: "FISH",
			fields:  []entity.Field{{Name: entity.AttrPrice, Kind: entity.KindDecimal}},
			wantErr: ErrDuplicateAttribute,
		},
		{
			name:    "duplicate within registration",
			petType: "FISH",
			fields:  []entity.Field{{Name: "fin", Kind: entity.KindInt}, {Name: "fin", Kind: entity.KindBool}},
			wantErr: ErrDuplicateAttribute,
		},
		{
			name:    "enum without values",
			petType: "FISH",
			fields:  []entity.Field{{Name: "water", Kind: entity.KindEnum}},
			wantErr: ErrInvalidField,
		},
		{
			name:    "empty name",
			petType: "FISH",
			fields:  []entity.Field{{Kind: entity.KindString}},
			wantErr: ErrInvalidField,
		},
		{
			name:    "empty pet type",
			petType: "",
			wantErr: ErrInvalidField,
		},
		{
			name:    "already registered",
			petType: entity.PetTypeDog,
			wantErr: ErrAlreadyRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			err := c.Register(tt.petType, tt.fields...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				_, lookupErr := c.Fields(tt.petType)
				if tt.petType != entity.PetTypeDog {
					assert.Error(t, lookupErr, "failed registration leaves no trace")
				}
				return
			}
			require.NoError(t, err)
			specs, err := c.Extended(tt.petType)
			require.NoError(t, err)
			assert.Len(t, specs, len(tt.fields))
		})
	}
}

func TestCatalog_RegisteredTypeDecodes(t *testing.T) {
	c := Default()
	require.NoError(t, c.Register("FISH", entity.Field{Name: "finCount", Kind: entity.KindInt}))

	p, err := entity.DecodeJSON([]byte(`{"petId":9,"petType":"FISH","animalType":"WILD","skinType":"SCALES","gender":"UNKNOWN","price":3.5,"finCount":4}`), c)
	require.NoError(t, err)

	specs, err := c.Attributes("FISH")
	require.NoError(t, err)
	fin := specs[len(specs)-1]
	assert.Equal(t, "finCount", fin.Name)
	assert.Equal(t, int64(4), fin.Accessor(p))
	assert.True(t, fin.Comparator(int64(4), fin.Accessor(p)))
}

func TestCatalog_FieldsReturnsCopy(t *testing.T) {
	c := Default()
	fields, err := c.Fields(entity.PetTypeCat)
	require.NoError(t, err)
	fields[0].Values[0] = "TIGER"

	again, err := c.Fields(entity.PetTypeCat)
	require.NoError(t, err)
	assert.Equal(t, BreedSiamese, again[0].Values[0])
}

func TestBaseAccessors(t *testing.T) {
	c := Default()
	p, err := entity.NewPet(1, entity.PetTypeDog, entity.BaseAttributes{
		AnimalType: entity.AnimalTypeDomestic,
		SkinType:   entity.SkinFur,
		Gender:     entity.GenderMale,
		Price:      decimal.RequireFromString("299.99"),
	}, map[string]any{AttrBreed: BreedGreyHound}, c)
	require.NoError(t, err)

	got := make(map[string]any)
	specs, err := c.Attributes(entity.PetTypeDog)
	require.NoError(t, err)
	for _, s := range specs {
		got[s.Name] = s.Accessor(p)
	}

	assert.Equal(t, int64(1), got[entity.AttrPetID])
	assert.Equal(t, "DOMESTIC", got[entity.AttrAnimalType])
	assert.Equal(t, "FUR", got[entity.AttrSkinType])
	assert.Equal(t, "MALE", got[entity.AttrGender])
	assert.Equal(t, "299.99", got[entity.AttrPrice].(decimal.Decimal).String())
	assert.Equal(t, BreedGreyHound, got[AttrBreed])
}
