package fixture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstore-verify/internal/catalog"
	"petstore-verify/internal/domain/entity"
)

func loadTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load(filepath.Join("testdata", "pets.json"), catalog.Default())
	require.NoError(t, err)
	return s
}

func petIDs(pets []entity.Pet) []int64 {
	ids := make([]int64, len(pets))
	for i, p := range pets {
		ids[i] = p.ID
	}
	return ids
}

func TestLoad_JSON(t *testing.T) {
	s := loadTestStore(t)

	assert.Equal(t, 5, s.Len())
	assert.Equal(t, []int64{3, 1, 2, 4, 5}, petIDs(s.LoadAll()), "LoadAll keeps file order")

	dog, ok := s.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, entity.PetTypeDog, dog.Type)
	assert.True(t, dog.Price.Equal(decimal.RequireFromString("199.99")))
	assert.Equal(t, catalog.BreedGreyHound, dog.Extended[catalog.AttrBreed])
}

func TestLoad_YAML(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "pets.yaml"), catalog.Default())
	require.NoError(t, err)

	bird, ok := s.FindByID(5)
	require.True(t, ok)
	assert.True(t, bird.Price.Equal(decimal.RequireFromString("45.25")))
	assert.True(t, bird.Extended[catalog.AttrWingSpan].(decimal.Decimal).Equal(decimal.RequireFromString("0.3")))
	assert.Equal(t, true, bird.Extended[catalog.AttrCanTalk])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), catalog.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedPet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.json")
	data := `[{"petId": 1, "petType": "DOG", "animalType": "DOMESTIC", "skinType": "FUR", "gender": "MALE", "price": "cheap", "breed": "POODLE"}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	_, err := Load(path, catalog.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrMalformedEntity)

	var me *entity.MalformedEntityError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, entity.AttrPrice, me.Field)
	assert.NotEmpty(t, me.Raw, "offending payload should be attached")
}

func TestStore_FilterByDiscriminator(t *testing.T) {
	s := loadTestStore(t)

	tests := []struct {
		name     string
		petType  entity.PetType
		expected []int64
	}{
		{name: "dogs", petType: entity.PetTypeDog, expected: []int64{1, 2}},
		{name: "cats", petType: entity.PetTypeCat, expected: []int64{3, 4}},
		{name: "birds", petType: entity.PetTypeBird, expected: []int64{5}},
		{name: "unknown type", petType: "FISH", expected: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.FilterByDiscriminator(tt.petType)
			assert.Equal(t, tt.expected, petIDs(got))
			for _, p := range got {
				assert.Equal(t, tt.petType, p.Type)
			}
		})
	}
}

func TestStore_SortedByID(t *testing.T) {
	s := loadTestStore(t)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, petIDs(s.SortedByID()))
	assert.Equal(t, []int64{3, 1, 2, 4, 5}, petIDs(s.LoadAll()), "sorting must not reorder the store")
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := loadTestStore(t)

	first := s.LoadAll()
	first[1].Extended[catalog.AttrBreed] = catalog.BreedBeagle
	first[1].Price = decimal.NewFromInt(1)

	dog, ok := s.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, catalog.BreedGreyHound, dog.Extended[catalog.AttrBreed])
	assert.True(t, dog.Price.Equal(decimal.RequireFromString("199.99")))

	dogs := s.FilterByDiscriminator(entity.PetTypeDog)
	dogs[0].Extended[catalog.AttrBreed] = catalog.BreedLabrador
	again, _ := s.FindByID(1)
	assert.Equal(t, catalog.BreedGreyHound, again.Extended[catalog.AttrBreed])
}

func TestNewStore_CopiesInput(t *testing.T) {
	pets := loadTestStore(t).SortedByID()
	s := NewStore(pets)

	pets[0].Extended[catalog.AttrBreed] = catalog.BreedBeagle

	dog, _ := s.FindByID(1)
	assert.Equal(t, catalog.BreedGreyHound, dog.Extended[catalog.AttrBreed])
}
