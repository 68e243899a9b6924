package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/config"
)

func TestFinalPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{name: "no discount", price: 100, discount: 0, want: 100},
		{name: "ten percent", price: 100, discount: 10, want: 90},
		{name: "full discount", price: 49.99, discount: 100, want: 0},
		{name: "fractional price", price: 19.99, discount: 25, want: 14.9925},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, FinalPrice(tt.price, tt.discount), 1e-9)
		})
	}
}

func TestCart_Normalize_RecomputesAggregates(t *testing.T) {
	t.Parallel()

	c := NewCart(primitive.NewObjectID())
	c.Merge(primitive.NewObjectID(), 2, 100, 10, config.PricingReprice)
	c.Merge(primitive.NewObjectID(), 1, 50, 0, config.PricingReprice)
	c.Normalize()

	assert.Equal(t, 2, c.TotalItems)
	// 2 * 90 + 1 * 50
	assert.InDelta(t, 230, c.TotalPrice, 1e-9)
}

func TestCart_Normalize_DerivesMissingFinalPrice(t *testing.T) {
	t.Parallel()

	c := NewCart(primitive.NewObjectID())
	c.Items = append(c.Items, CartItem{
		Product:  primitive.NewObjectID(),
		Quantity: 3,
		Price:    20,
		Discount: 50,
		// FinalPrice left at zero, as a legacy document would have it
	})
	c.Normalize()

	require.Len(t, c.Items, 1)
	assert.InDelta(t, 10, c.Items[0].FinalPrice, 1e-9)
	assert.InDelta(t, 30, c.TotalPrice, 1e-9)
	assert.Equal(t, 1, c.TotalItems)
}

func TestCart_Normalize_TotalItemsCountsLines_NotQuantity(t *testing.T) {
	t.Parallel()

	c := NewCart(primitive.NewObjectID())
	c.Merge(primitive.NewObjectID(), 5, 10, 0, config.PricingReprice)
	c.Normalize()

	assert.Equal(t, 1, c.TotalItems)
}

func TestCart_Merge_RepriceRefreshesExistingLine(t *testing.T) {
	t.Parallel()

	productID := primitive.NewObjectID()
	c := NewCart(primitive.NewObjectID())

	c.Merge(productID, 1, 100, 0, config.PricingReprice)
	c.Merge(productID, 1, 80, 25, config.PricingReprice)
	c.Normalize()

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.InDelta(t, 80, c.Items[0].Price, 1e-9)
	assert.InDelta(t, 25, c.Items[0].Discount, 1e-9)
	assert.InDelta(t, 60, c.Items[0].FinalPrice, 1e-9)
	assert.InDelta(t, 120, c.TotalPrice, 1e-9)
}

func TestCart_Merge_SnapshotKeepsOriginalPrice(t *testing.T) {
	t.Parallel()

	productID := primitive.NewObjectID()
	c := NewCart(primitive.NewObjectID())

	c.Merge(productID, 1, 100, 10, config.PricingSnapshot)
	c.Merge(productID, 2, 80, 25, config.PricingSnapshot)
	c.Normalize()

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.InDelta(t, 100, c.Items[0].Price, 1e-9)
	assert.InDelta(t, 10, c.Items[0].Discount, 1e-9)
	assert.InDelta(t, 90, c.Items[0].FinalPrice, 1e-9)
}

func TestCart_Merge_NewProductAppendsLine(t *testing.T) {
	t.Parallel()

	c := NewCart(primitive.NewObjectID())
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	c.Merge(first, 1, 10, 0, config.PricingSnapshot)
	c.Merge(second, 1, 20, 50, config.PricingSnapshot)

	require.Len(t, c.Items, 2)
	assert.Equal(t, second, c.Items[1].Product)
	assert.InDelta(t, 10, c.Items[1].FinalPrice, 1e-9)
}

func TestCart_Remove(t *testing.T) {
	t.Parallel()

	productID := primitive.NewObjectID()
	c := NewCart(primitive.NewObjectID())
	c.Merge(productID, 2, 100, 0, config.PricingReprice)
	c.Normalize()

	require.True(t, c.Remove(productID))
	c.Normalize()

	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems)
	assert.Zero(t, c.TotalPrice)

	assert.False(t, c.Remove(productID), "removing twice should report not found")
}

func TestCart_Clear(t *testing.T) {
	t.Parallel()

	c := NewCart(primitive.NewObjectID())
	c.Merge(primitive.NewObjectID(), 1, 10, 0, config.PricingReprice)
	c.Merge(primitive.NewObjectID(), 4, 25, 20, config.PricingReprice)
	c.Normalize()

	c.Clear()
	c.Normalize()

	assert.NotNil(t, c.Items)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems)
	assert.Zero(t, c.TotalPrice)
}

func TestCart_DistinctItemCount(t *testing.T) {
	t.Parallel()

	c := NewCart(primitive.NewObjectID())
	assert.Equal(t, 0, c.DistinctItemCount())

	productID := primitive.NewObjectID()
	c.Merge(productID, 1, 10, 0, config.PricingReprice)
	c.Merge(productID, 3, 10, 0, config.PricingReprice)
	c.Merge(primitive.NewObjectID(), 1, 5, 0, config.PricingReprice)

	assert.Equal(t, 2, c.DistinctItemCount())
}
