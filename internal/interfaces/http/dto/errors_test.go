package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{"SOMETHING_NEW", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetHTTPStatus(tt.code), "code %s", tt.code)
	}
}

func TestGetDomainHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ILLEGAL_TRANSITION", http.StatusConflict},
		{"ALREADY_RATED", http.StatusConflict},
		{"ADDRESS_IN_USE", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"EMPTY_CART", http.StatusUnprocessableEntity},
		{"QUANTITY_OUT_OF_RANGE", http.StatusUnprocessableEntity},
		{"ORDER_NOT_DELIVERED", http.StatusUnprocessableEntity},
		{"PRODUCT_UNAVAILABLE", http.StatusUnprocessableEntity},
		// Unknown business codes stay 422, the request itself was well formed
		{"SOME_FUTURE_RULE", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetDomainHTTPStatus(tt.code), "code %s", tt.code)
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2}, 5, 1, 2)

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, int64(5), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
