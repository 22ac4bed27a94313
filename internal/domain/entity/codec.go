package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// baseKeys are the wire keys consumed by FromRaw before extended attributes are considered.
var baseKeys = []string{AttrPetID, AttrPetType, AttrAnimalType, AttrSkinType, AttrGender, AttrPrice}

// FromRaw builds a Pet from a mapping of raw field values, as produced by a JSON or YAML decoder.
// Base attributes are read from their wire keys; every other key is treated as an
// extended attribute and checked against the fields schema registers for the pet type.
func FromRaw(raw map[string]any, schema Schema) (Pet, error) {
	p, err := fromRaw(raw, schema)
	if err != nil {
		var me *MalformedEntityError
		if errors.As(err, &me) && me.Raw == nil {
			if data, mErr := json.Marshal(raw); mErr == nil {
				me.Raw = data
			}
		}
		return Pet{}, err
	}
	return p, nil
}

func fromRaw(raw map[string]any, schema Schema) (Pet, error) {
	if raw == nil {
		return Pet{}, malformed(AttrPetID, "payload is empty", nil)
	}

	idRaw, err := required(raw, AttrPetID)
	if err != nil {
		return Pet{}, err
	}
	id, err := ParseInt(idRaw)
	if err != nil {
		return Pet{}, malformed(AttrPetID, "not an integer", err)
	}

	petType, err := requiredString(raw, AttrPetType)
	if err != nil {
		return Pet{}, err
	}
	animalType, err := requiredString(raw, AttrAnimalType)
	if err != nil {
		return Pet{}, err
	}
	skinType, err := requiredString(raw, AttrSkinType)
	if err != nil {
		return Pet{}, err
	}
	gender, err := requiredString(raw, AttrGender)
	if err != nil {
		return Pet{}, err
	}

	priceRaw, err := required(raw, AttrPrice)
	if err != nil {
		return Pet{}, err
	}
	price, err := ParseDecimal(priceRaw)
	if err != nil {
		return Pet{}, malformed(AttrPrice, "not parseable as decimal", err)
	}

	extended := make(map[string]any, len(raw))
	for k, v := range raw {
		if !isBaseKey(k) {
			extended[k] = v
		}
	}

	return NewPet(id, PetType(petType), BaseAttributes{
		AnimalType: AnimalType(animalType),
		SkinType:   Skin(skinType),
		Gender:     Gender(gender),
		Price:      price,
	}, extended, schema)
}

// DecodeJSON decodes a single pet JSON object.
// Numbers are kept as json.Number so prices keep every digit.
func DecodeJSON(data []byte, schema Schema) (Pet, error) {
	var raw map[string]any
	if err := unmarshalNumbers(data, &raw); err != nil {
		return Pet{}, &MalformedEntityError{Reason: "invalid JSON object", Raw: data, Err: err}
	}
	p, err := fromRaw(raw, schema)
	if err != nil {
		var me *MalformedEntityError
		if errors.As(err, &me) {
			me.Raw = data
		}
		return Pet{}, err
	}
	return p, nil
}

// DecodeJSONList decodes a JSON array of pet objects.
func DecodeJSONList(data []byte, schema Schema) ([]Pet, error) {
	var raws []map[string]any
	if err := unmarshalNumbers(data, &raws); err != nil {
		return nil, &MalformedEntityError{Reason: "invalid JSON array", Raw: data, Err: err}
	}
	return FromRawList(raws, schema)
}

// FromRawList converts every element of raws, failing on the first malformed one.
func FromRawList(raws []map[string]any, schema Schema) ([]Pet, error) {
	pets := make([]Pet, 0, len(raws))
	for i, raw := range raws {
		p, err := FromRaw(raw, schema)
		if err != nil {
			return nil, fmt.Errorf("pet at index %d: %w", i, err)
		}
		pets = append(pets, p)
	}
	return pets, nil
}

// MarshalJSON encodes p in its flat wire form.
// Decimals are written as JSON numbers without passing through float64.
func (p Pet) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(baseKeys)+len(p.Extended))
	for k, v := range p.Extended {
		if d, ok := v.(decimal.Decimal); ok {
			out[k] = json.Number(d.String())
			continue
		}
		out[k] = v
	}
	out[AttrPetID] = p.ID
	out[AttrPetType] = p.Type
	out[AttrAnimalType] = p.AnimalType
	out[AttrSkinType] = p.SkinType
	out[AttrGender] = p.Gender
	out[AttrPrice] = json.Number(p.Price.String())
	return json.Marshal(out)
}

func unmarshalNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON value")
	}
	return nil
}

func required(raw map[string]any, key string) (any, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, malformed(key, "required attribute missing", nil)
	}
	return v, nil
}

func requiredString(raw map[string]any, key string) (string, error) {
	v, err := required(raw, key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", malformed(key, fmt.Sprintf("expected string, got %T", v), nil)
	}
	return s, nil
}

func isBaseKey(k string) bool {
	for _, b := range baseKeys {
		if k == b {
			return true
		}
	}
	return false
}
