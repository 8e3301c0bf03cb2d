package catalog

import (
	"testing"

	"github.com/eezystore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	p, err := NewProduct("Widget", "A fine widget", valueobject.NewMoneyUSDFromFloat(19.99), "https://cdn.example.com/widget.png")
	require.NoError(t, err)
	return p
}

func TestNewProduct_Success(t *testing.T) {
	p := createTestProduct(t)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "Widget", p.Name)
	assert.True(t, p.Active)
	assert.True(t, p.Price.Equal(decimal.NewFromFloat(19.99)))
	assert.True(t, p.RatingAvg.IsZero())
	assert.Equal(t, 0, p.RatingCount)
}

func TestNewProduct_Validation(t *testing.T) {
	_, err := NewProduct("", "desc", valueobject.NewMoneyUSDFromFloat(1), "")
	assert.Error(t, err)

	_, err = NewProduct("Widget", "desc", valueobject.NewMoneyUSD(decimal.NewFromInt(-1)), "")
	assert.Error(t, err)

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'x'
	}
	_, err = NewProduct(string(long), "desc", valueobject.NewMoneyUSDFromFloat(1), "")
	assert.Error(t, err)
}

func TestProduct_UpdateDetails(t *testing.T) {
	p := createTestProduct(t)

	require.NoError(t, p.UpdateDetails("Gadget", "better", "https://cdn.example.com/gadget.png"))
	assert.Equal(t, "Gadget", p.Name)

	assert.Error(t, p.UpdateDetails("", "desc", ""))
}

func TestProduct_UpdatePrice(t *testing.T) {
	p := createTestProduct(t)

	require.NoError(t, p.UpdatePrice(valueobject.NewMoneyUSDFromFloat(25.00)))
	assert.True(t, p.Price.Equal(decimal.NewFromFloat(25.00)))

	assert.Error(t, p.UpdatePrice(valueobject.NewMoneyUSD(decimal.NewFromInt(-5))))
}

func TestProduct_ActivateDeactivate(t *testing.T) {
	p := createTestProduct(t)

	p.Deactivate()
	assert.False(t, p.Active)

	p.Activate()
	assert.True(t, p.Active)
}

func TestProduct_ApplyRating(t *testing.T) {
	p := createTestProduct(t)

	require.NoError(t, p.ApplyRating(5))
	assert.Equal(t, 1, p.RatingCount)
	assert.True(t, p.RatingAvg.Equal(decimal.NewFromInt(5)))

	require.NoError(t, p.ApplyRating(2))
	assert.Equal(t, 2, p.RatingCount)
	assert.True(t, p.RatingAvg.Equal(decimal.NewFromFloat(3.5)))

	require.NoError(t, p.ApplyRating(3))
	assert.Equal(t, 3, p.RatingCount)
	// (5 + 2 + 3) / 3 rounded to 2 places
	assert.True(t, p.RatingAvg.Equal(decimal.NewFromFloat(3.33)), "got %s", p.RatingAvg)
}

func TestProduct_ApplyRating_OutOfRange(t *testing.T) {
	p := createTestProduct(t)

	for _, stars := range []int{0, -1, 6} {
		assert.Error(t, p.ApplyRating(stars))
	}
	assert.Equal(t, 0, p.RatingCount)
}
