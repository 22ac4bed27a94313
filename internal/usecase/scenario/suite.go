package scenario

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"petstore-verify/internal/assertion"
	"petstore-verify/internal/catalog"
	"petstore-verify/internal/domain/entity"
	"petstore-verify/internal/infra/probe"
	"petstore-verify/internal/verify"
)

// Ids and prices used by the built-in cases.
const (
	nonExistentID = 99999
	invalidID     = "invalid"
	updatedPrice  = "299.99"
)

// DefaultSuite returns the built-in cases in reporting order.
func DefaultSuite() []Case {
	return []Case{
		{Name: "GetPetByID", Run: getPetByID},
		{Name: "GetNonExistentPet", Run: getNonExistentPet},
		{Name: "GetInvalidPetID", Run: getInvalidPetID},
		{Name: "GetDogByIDWithType", Run: getDogByIDWithType},
		{Name: "UpdateExistingDog", Mutating: true, Run: updateExistingDog},
		{Name: "CreateNewPet", Mutating: true, Run: createNewPet},
		{Name: "UpdateWithValidData", Mutating: true, Run: updateWithValidData},
	}
}

// getPetByID fetches the pet with the lowest id and compares it with the fixture.
func getPetByID(ctx context.Context, env Env, s *probe.Session) (*assertion.Node, error) {
	pets := env.Store.SortedByID()
	if len(pets) == 0 {
		return nil, ErrNoExpectedPet
	}
	return fetchAndCompare(ctx, env, s, "GetPetByID", pets[0])
}

func getDogByIDWithType(ctx context.Context, env Env, s *probe.Session) (*assertion.Node, error) {
	dog, err := firstDog(env)
	if err != nil {
		return nil, err
	}
	return fetchAndCompare(ctx, env, s, "GetDogByIDWithType", dog)
}

func fetchAndCompare(ctx context.Context, env Env, s *probe.Session, label string, expected entity.Pet) (*assertion.Node, error) {
	resp, err := s.FetchEntity(ctx, probe.ParamsFor(expected))
	if err != nil {
		return nil, err
	}
	return expectPet(env, label, resp, expected)
}

func getNonExistentPet(ctx context.Context, env Env, s *probe.Session) (*assertion.Node, error) {
	resp, err := s.FetchEntity(ctx, probe.Params{PetType: entity.PetTypeDog, PetID: fmt.Sprint(nonExistentID)})
	if err != nil {
		return nil, err
	}
	return expectError("GetNonExistentPet", resp, verify.ErrorExpectation{
		Message:    fmt.Sprintf("0 results found for search criteria for pet id[%d] petType[%s] Please try again!!", nonExistentID, entity.PetTypeDog),
		Path:       searchPath,
		StatusCode: http.StatusBadRequest,
	}), nil
}

func getInvalidPetID(ctx context.Context, env Env, s *probe.Session) (*assertion.Node, error) {
	resp, err := s.FetchEntity(ctx, probe.Params{PetType: entity.PetTypeDog, PetID: invalidID})
	if err != nil {
		return nil, err
	}
	return expectError("GetInvalidPetID", resp, verify.ErrorExpectation{
		ErrorType:  "Bad Request",
		Message:    fmt.Sprintf("Failed to convert value of type 'java.lang.String' to required type 'int'; For input string: %q", invalidID),
		Path:       searchPath,
		StatusCode: http.StatusBadRequest,
	}), nil
}

// updateExistingDog changes gender, breed and price of the first dog.
func updateExistingDog(ctx context.Context, env Env, s *probe.Session) (*assertion.Node, error) {
	dog, err := firstDog(env)
	if err != nil {
		return nil, err
	}
	updated, err := greyHound(env.Schema, dog.ID)
	if err != nil {
		return nil, err
	}
	return updateAndCompare(ctx, env, s, "UpdateExistingDog", updated)
}

// createNewPet upserts a dog under an id the fixture does not use.
func createNewPet(ctx context.Context, env Env, s *probe.Session) (*assertion.Node, error) {
	created, err := greyHound(env.Schema, nonExistentID)
	if err != nil {
		return nil, err
	}
	return updateAndCompare(ctx, env, s, "CreateNewPet", created)
}

func updateWithValidData(ctx context.Context, env Env, s *probe.Session) (*assertion.Node, error) {
	valid, err := greyHound(env.Schema, 1)
	if err != nil {
		return nil, err
	}
	return updateAndCompare(ctx, env, s, "UpdateWithValidData", valid)
}

func updateAndCompare(ctx context.Context, env Env, s *probe.Session, label string, p entity.Pet) (*assertion.Node, error) {
	resp, err := s.UpdateEntity(ctx, probe.ParamsFor(p), p)
	if err != nil {
		return nil, err
	}
	return expectPet(env, label, resp, p)
}

func firstDog(env Env) (entity.Pet, error) {
	dogs := entity.SortByID(env.Store.FilterByDiscriminator(entity.PetTypeDog))
	if len(dogs) == 0 {
		return entity.Pet{}, fmt.Errorf("%w: %s", ErrNoExpectedPet, entity.PetTypeDog)
	}
	return dogs[0], nil
}

// greyHound is the male GREY_HOUND priced 299.99 sent by the update cases.
func greyHound(schema entity.Schema, id int64) (entity.Pet, error) {
	return entity.NewPet(id, entity.PetTypeDog, entity.BaseAttributes{
		AnimalType: entity.AnimalTypeDomestic,
		SkinType:   entity.SkinFur,
		Gender:     entity.GenderMale,
		Price:      decimal.RequireFromString(updatedPrice),
	}, map[string]any{catalog.AttrBreed: catalog.BreedGreyHound}, schema)
}
