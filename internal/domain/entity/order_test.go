package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []OrderItem {
	return []OrderItem{
		{ProductID: uuid.New(), ProductName: "Clay Teapot", ProductPrice: 45000, Quantity: 2},
		{ProductID: uuid.New(), ProductName: "Brass Diya", ProductPrice: 12500, Quantity: 1},
	}
}

func TestNewOrder_ComputesTotals(t *testing.T) {
	now := time.Now()
	order, err := NewOrder(uuid.New(), uuid.New(), testItems(), ShippingAddress{}, PaymentMethodCOD, now)

	require.NoError(t, err)
	assert.Equal(t, int64(45000*2+12500), order.Subtotal)
	assert.Equal(t, FlatShippingFee, order.ShippingFee)
	assert.Equal(t, order.Subtotal+FlatShippingFee, order.TotalAmount)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
}

func TestNewOrder_SynthesizesFirstHistoryEntry(t *testing.T) {
	now := time.Now()
	order, err := NewOrder(uuid.New(), uuid.New(), testItems(), ShippingAddress{}, PaymentMethodCOD, now)

	require.NoError(t, err)
	require.Len(t, order.StatusHistory, 1)
	first := order.StatusHistory[0]
	assert.Equal(t, OrderStatusCreated, first.PreviousStatus)
	assert.Equal(t, OrderStatusPending, first.NewStatus)
	assert.Equal(t, PaymentStatusCreated, first.PreviousPaymentStatus)
	assert.Equal(t, PaymentStatusPending, first.NewPaymentStatus)
	assert.Equal(t, "Order placed successfully", first.Note)
	assert.Equal(t, now, first.ChangedAt)
}

func TestNewOrder_EmptyItems(t *testing.T) {
	_, err := NewOrder(uuid.New(), uuid.New(), nil, ShippingAddress{}, PaymentMethodCOD, time.Now())
	assert.ErrorIs(t, err, ErrOrderItemsEmpty)
}

func TestNewOrder_Defaults(t *testing.T) {
	order, err := NewOrder(uuid.New(), uuid.New(), testItems(), ShippingAddress{}, "", time.Now())

	require.NoError(t, err)
	assert.Equal(t, PaymentMethodCOD, order.PaymentMethod)
	assert.Equal(t, DefaultCountry, order.ShippingAddress.Country)
}

func TestApplyTransition_StatusOnly(t *testing.T) {
	order, err := NewOrder(uuid.New(), uuid.New(), testItems(), ShippingAddress{}, PaymentMethodCOD, time.Now())
	require.NoError(t, err)

	confirmed := OrderStatusConfirmed
	at := time.Now()
	err = order.ApplyTransition(TransitionRequest{
		Status: &confirmed,
		Note:   "Accepted, will pack today",
		By:     ChangedByVendor,
		At:     at,
	})

	require.NoError(t, err)
	assert.Equal(t, OrderStatusConfirmed, order.Status)
	assert.Equal(t, PaymentStatusPending, order.PaymentStatus)

	require.Len(t, order.StatusHistory, 2)
	entry := order.StatusHistory[1]
	assert.Equal(t, OrderStatusPending, entry.PreviousStatus)
	assert.Equal(t, OrderStatusConfirmed, entry.NewStatus)
	assert.Equal(t, PaymentStatusPending, entry.PreviousPaymentStatus)
	assert.Equal(t, PaymentStatusPending, entry.NewPaymentStatus)
	assert.Equal(t, ChangedByVendor, entry.ChangedBy)
	assert.Equal(t, at, entry.ChangedAt)
}

func TestApplyTransition_BothFields(t *testing.T) {
	order, err := NewOrder(uuid.New(), uuid.New(), testItems(), ShippingAddress{}, PaymentMethodCOD, time.Now())
	require.NoError(t, err)

	delivered := OrderStatusDelivered
	paid := PaymentStatusPaid
	err = order.ApplyTransition(TransitionRequest{
		Status:        &delivered,
		PaymentStatus: &paid,
		Note:          "Delivered and collected cash",
		By:            ChangedByVendor,
		At:            time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, OrderStatusDelivered, order.Status)
	assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
	require.Len(t, order.StatusHistory, 2)
	assert.Equal(t, PaymentStatusPending, order.StatusHistory[1].PreviousPaymentStatus)
	assert.Equal(t, PaymentStatusPaid, order.StatusHistory[1].NewPaymentStatus)
}

func TestApplyTransition_NoteMandatory(t *testing.T) {
	order, err := NewOrder(uuid.New(), uuid.New(), testItems(), ShippingAddress{}, PaymentMethodCOD, time.Now())
	require.NoError(t, err)

	confirmed := OrderStatusConfirmed

	tests := []struct {
		name string
		note string
	}{
		{"empty", ""},
		{"whitespace only", "   \t "},
		{"too short after trim", " ab "},
		{"two runes, many bytes", "好的"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := order.ApplyTransition(TransitionRequest{
				Status: &confirmed,
				Note:   tt.note,
				By:     ChangedByVendor,
				At:     time.Now(),
			})
			assert.ErrorIs(t, err, ErrNoteRequired)
		})
	}

	// Nothing applied, nothing appended.
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Len(t, order.StatusHistory, 1)
}

func TestApplyTransition_InvalidValues(t *testing.T) {
	order, err := NewOrder(uuid.New(), uuid.New(), testItems(), ShippingAddress{}, PaymentMethodCOD, time.Now())
	require.NoError(t, err)

	bogus := OrderStatus("teleported")
	err = order.ApplyTransition(TransitionRequest{
		Status: &bogus,
		Note:   "does not matter",
		By:     ChangedByAdmin,
		At:     time.Now(),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// "created" is a history-only value, never settable.
	created := OrderStatusCreated
	err = order.ApplyTransition(TransitionRequest{
		Status: &created,
		Note:   "trying to reset",
		By:     ChangedByAdmin,
		At:     time.Now(),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	badPayment := PaymentStatus("ious")
	err = order.ApplyTransition(TransitionRequest{
		PaymentStatus: &badPayment,
		Note:          "does not matter",
		By:            ChangedByAdmin,
		At:            time.Now(),
	})
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)

	assert.Len(t, order.StatusHistory, 1)
}

func TestApplyTransition_NoFields(t *testing.T) {
	order, err := NewOrder(uuid.New(), uuid.New(), testItems(), ShippingAddress{}, PaymentMethodCOD, time.Now())
	require.NoError(t, err)

	err = order.ApplyTransition(TransitionRequest{
		Note: "changing nothing",
		By:   ChangedByAdmin,
		At:   time.Now(),
	})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

func TestApplyTransition_PermissiveGraph(t *testing.T) {
	order, err := NewOrder(uuid.New(), uuid.New(), testItems(), ShippingAddress{}, PaymentMethodCOD, time.Now())
	require.NoError(t, err)

	// Any valid value may follow any other: cancelled back to confirmed is a
	// legitimate manual correction.
	cancelled := OrderStatusCancelled
	require.NoError(t, order.ApplyTransition(TransitionRequest{
		Status: &cancelled, Note: "Customer asked to cancel", By: ChangedByVendor, At: time.Now(),
	}))

	confirmed := OrderStatusConfirmed
	require.NoError(t, order.ApplyTransition(TransitionRequest{
		Status: &confirmed, Note: "Cancelled by mistake, reinstating", By: ChangedByAdmin, At: time.Now(),
	}))

	assert.Equal(t, OrderStatusConfirmed, order.Status)
	require.Len(t, order.StatusHistory, 3)
	assert.Equal(t, OrderStatusCancelled, order.StatusHistory[2].PreviousStatus)
}

func TestOrderItem_LineTotal(t *testing.T) {
	item := OrderItem{ProductPrice: 19900, Quantity: 3}
	assert.Equal(t, int64(59700), item.LineTotal())
}
