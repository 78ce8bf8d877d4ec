package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-dashboard/internal/domain"
)

func entry(id int, price float64, qty int) domain.CartEntry {
	return domain.CartEntry{Dish: domain.Dish{ID: id, Name: "d", Price: price}, Quantity: qty}
}

func validRequest() CheckoutRequest {
	return CheckoutRequest{TableNumber: 3, EstimatedTime: 15, Notes: "no onions"}
}

func TestComposer_EmptyCartRefused(t *testing.T) {
	composer := NewComposer()

	_, err := composer.Compose(nil, validRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = composer.Compose([]domain.CartEntry{}, validRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestComposer_TotalPrice(t *testing.T) {
	composer := NewComposer()

	order, err := composer.Compose([]domain.CartEntry{
		entry(1, 10, 2),
		entry(2, 5, 1),
	}, validRequest())

	require.NoError(t, err)
	assert.Equal(t, 25.0, order.TotalPrice)
	assert.Equal(t, 3, order.TableID)
	assert.Equal(t, 15, order.EstimatedTime)
	assert.Equal(t, "no onions", order.Notes)
	assert.Len(t, order.Dishes, 2)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestComposer_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     CheckoutRequest
		wantErr bool
	}{
		{"table too low", CheckoutRequest{TableNumber: 0, EstimatedTime: 15}, true},
		{"table too high", CheckoutRequest{TableNumber: 21, EstimatedTime: 15}, true},
		{"time too low", CheckoutRequest{TableNumber: 1, EstimatedTime: 4}, true},
		{"time too high", CheckoutRequest{TableNumber: 1, EstimatedTime: 201}, true},
		{"lower bounds", CheckoutRequest{TableNumber: 1, EstimatedTime: 5}, false},
		{"upper bounds", CheckoutRequest{TableNumber: 20, EstimatedTime: 200}, false},
	}

	composer := NewComposer()
	entries := []domain.CartEntry{entry(1, 10, 1)}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := composer.Compose(entries, testCase.req)
			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestComposer_SnapshotIsDetached(t *testing.T) {
	composer := NewComposer()
	entries := []domain.CartEntry{entry(1, 10, 1)}

	order, err := composer.Compose(entries, validRequest())
	require.NoError(t, err)

	entries[0].Quantity = 99
	assert.Equal(t, 1, order.Dishes[0].Quantity)
}
