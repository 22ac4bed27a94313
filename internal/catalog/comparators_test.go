package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"petstore-verify/internal/domain/entity"
)

func TestEqualDecimal(t *testing.T) {
	d := decimal.RequireFromString

	assert.True(t, EqualDecimal(d("199.99"), d("199.990")))
	assert.False(t, EqualDecimal(d("199.99"), d("299.99")))
	assert.False(t, EqualDecimal(d("199.99"), d("199.9900001")))
	assert.False(t, EqualDecimal(d("1"), nil))
	assert.False(t, EqualDecimal(1.0, d("1")))
}

func TestEqualScalars(t *testing.T) {
	assert.True(t, EqualString("MALE", "MALE"))
	assert.False(t, EqualString("MALE", "male"))
	assert.False(t, EqualString("1", 1))

	assert.True(t, EqualBool(true, true))
	assert.False(t, EqualBool(true, false))
	assert.False(t, EqualBool(true, nil))

	assert.True(t, EqualInt(int64(5), int64(5)))
	assert.False(t, EqualInt(int64(5), 5))
}

func TestComparatorFor(t *testing.T) {
	d := decimal.RequireFromString
	assert.True(t, ComparatorFor(entity.KindDecimal)(d("0.3"), d("0.30")))
	assert.True(t, ComparatorFor(entity.KindBool)(false, false))
	assert.True(t, ComparatorFor(entity.KindInt)(int64(2), int64(2)))
	assert.True(t, ComparatorFor(entity.KindEnum)("SHORT", "SHORT"))
	assert.True(t, ComparatorFor(entity.KindString)("x", "x"))
}
