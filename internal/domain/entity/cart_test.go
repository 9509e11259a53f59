package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_IsEmpty(t *testing.T) {
	var nilCart *Cart
	assert.True(t, nilCart.IsEmpty())
	assert.True(t, (&Cart{}).IsEmpty())
	assert.False(t, (&Cart{Lines: []CartLine{{ProductID: uuid.New(), Quantity: 1}}}).IsEmpty())
}

func TestPartitionByVendor_GroupsAndOrder(t *testing.T) {
	vendorA := uuid.New()
	vendorB := uuid.New()
	vendorC := uuid.New()

	lines := []ResolvedLine{
		{ProductID: uuid.New(), VendorID: vendorB, Quantity: 1},
		{ProductID: uuid.New(), VendorID: vendorA, Quantity: 2},
		{ProductID: uuid.New(), VendorID: vendorB, Quantity: 3},
		{ProductID: uuid.New(), VendorID: vendorC, Quantity: 1},
		{ProductID: uuid.New(), VendorID: vendorA, Quantity: 1},
	}

	groups := PartitionByVendor(lines)

	require.Len(t, groups, 3)

	// Groups appear in first-occurrence order.
	assert.Equal(t, vendorB, groups[0].VendorID)
	assert.Equal(t, vendorA, groups[1].VendorID)
	assert.Equal(t, vendorC, groups[2].VendorID)

	assert.Len(t, groups[0].Lines, 2)
	assert.Len(t, groups[1].Lines, 2)
	assert.Len(t, groups[2].Lines, 1)

	// Every line lands in its own vendor's group.
	for _, group := range groups {
		for _, line := range group.Lines {
			assert.Equal(t, group.VendorID, line.VendorID)
		}
	}
}

func TestPartitionByVendor_SingleVendor(t *testing.T) {
	vendor := uuid.New()
	lines := []ResolvedLine{
		{ProductID: uuid.New(), VendorID: vendor, Quantity: 1},
		{ProductID: uuid.New(), VendorID: vendor, Quantity: 2},
	}

	groups := PartitionByVendor(lines)

	require.Len(t, groups, 1)
	assert.Equal(t, vendor, groups[0].VendorID)
	assert.Len(t, groups[0].Lines, 2)
}

func TestPartitionByVendor_Empty(t *testing.T) {
	assert.Empty(t, PartitionByVendor(nil))
}

func TestResolvedLine_OrderItem(t *testing.T) {
	line := ResolvedLine{
		ProductID:    uuid.New(),
		ProductName:  "Handwoven Basket",
		ProductPrice: 89900,
		ProductImage: "https://cdn.example.com/basket.jpg",
		VendorID:     uuid.New(),
		Quantity:     2,
	}

	item := line.OrderItem()

	assert.Equal(t, line.ProductID, item.ProductID)
	assert.Equal(t, line.ProductName, item.ProductName)
	assert.Equal(t, line.ProductPrice, item.ProductPrice)
	assert.Equal(t, line.ProductImage, item.ProductImage)
	assert.Equal(t, line.Quantity, item.Quantity)
}
