package storefront

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress_Success(t *testing.T) {
	customerID := uuid.New()
	addr, err := NewAddress(customerID, "Jane Doe", "+1-555-0100", "1 Main St", "Springfield", "IL", "62701", "US", true)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, addr.ID)
	assert.Equal(t, customerID, addr.CustomerID)
	assert.Equal(t, "1 Main St", addr.Street)
	assert.True(t, addr.IsDefault)
}

func TestNewAddress_Validation(t *testing.T) {
	customerID := uuid.New()
	tests := []struct {
		name    string
		street  string
		city    string
		country string
		phone   string
	}{
		{"missing street", "", "Springfield", "US", "+1-555-0100"},
		{"missing city", "1 Main St", "", "US", "+1-555-0100"},
		{"missing country", "1 Main St", "Springfield", "", "+1-555-0100"},
		{"missing phone", "1 Main St", "Springfield", "US", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAddress(customerID, "Jane", tt.phone, tt.street, tt.city, "IL", "62701", tt.country, false)
			assert.Error(t, err)
		})
	}

	_, err := NewAddress(uuid.Nil, "Jane", "+1-555-0100", "1 Main St", "Springfield", "IL", "62701", "US", false)
	assert.Error(t, err)
}

func TestAddress_DefaultFlag(t *testing.T) {
	addr, err := NewAddress(uuid.New(), "Jane", "+1-555-0100", "1 Main St", "Springfield", "IL", "62701", "US", false)
	require.NoError(t, err)

	addr.MarkDefault()
	assert.True(t, addr.IsDefault)

	addr.ClearDefault()
	assert.False(t, addr.IsDefault)
}

func TestAddress_BelongsTo(t *testing.T) {
	customerID := uuid.New()
	addr, err := NewAddress(customerID, "Jane", "+1-555-0100", "1 Main St", "Springfield", "IL", "62701", "US", false)
	require.NoError(t, err)

	assert.True(t, addr.BelongsTo(customerID))
	assert.False(t, addr.BelongsTo(uuid.New()))
}
