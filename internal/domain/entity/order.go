// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// OrderStatus represents the fulfillment state of an order.
type OrderStatus string

const (
	// OrderStatusCreated is a synthetic value that only ever appears as the
	// previous status of the first history entry. It is not a settable state.
	OrderStatusCreated OrderStatus = "created"
	// OrderStatusPending is the initial state of every order.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed indicates the vendor has accepted the order.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusShipped indicates the order has been handed to a carrier.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered indicates the order reached the customer.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled indicates the order was cancelled. Orders are
	// never deleted; cancellation is a status value.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a settable value.
// OrderStatusCreated is excluded: it exists only in history entries.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// PaymentStatus represents the payment state of an order, settable
// independently of the fulfillment status.
type PaymentStatus string

const (
	// PaymentStatusCreated is the synthetic previous value of the first
	// history entry, mirroring OrderStatusCreated.
	PaymentStatusCreated PaymentStatus = "created"
	// PaymentStatusPending is the initial payment state.
	PaymentStatusPending PaymentStatus = "pending"
	// PaymentStatusPaid indicates the payment settled.
	PaymentStatusPaid PaymentStatus = "paid"
	// PaymentStatusFailed indicates a failed payment attempt.
	PaymentStatusFailed PaymentStatus = "failed"
	// PaymentStatusRefunded indicates the payment was returned.
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// String returns the string representation of the PaymentStatus.
func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid checks if the PaymentStatus is a settable value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// PaymentMethod represents how an order is to be paid.
type PaymentMethod string

const (
	// PaymentMethodCOD is cash on delivery, the only functional method.
	PaymentMethodCOD PaymentMethod = "cod"
	// PaymentMethodOnline is accepted as a value but has no gateway behind it.
	PaymentMethodOnline PaymentMethod = "online"
)

// IsValid checks if the PaymentMethod is a valid value.
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

// ChangedBy identifies which kind of actor recorded a status change.
type ChangedBy string

const (
	// ChangedByVendor marks a change made through the vendor-scoped path.
	ChangedByVendor ChangedBy = "vendor"
	// ChangedByAdmin marks a change made through the admin path.
	ChangedByAdmin ChangedBy = "admin"
)

// MinNoteLength is the minimum number of non-whitespace-trimmed characters
// a status-change note must carry. Every transition requires justification.
const MinNoteLength = 3

// FlatShippingFee is the hardcoded shipping policy: free shipping for every
// vendor group.
const FlatShippingFee int64 = 0

// creationNote is the note recorded on the synthesized first history entry.
const creationNote = "Order placed successfully"

// Domain errors returned by the order state machine. The delivery layer maps
// them to HTTP responses.
var (
	ErrOrderItemsEmpty      = errStr("order must contain at least one item")
	ErrNoteRequired         = errStr("note is required")
	ErrInvalidStatus        = errStr("invalid status")
	ErrInvalidPaymentStatus = errStr("invalid payment status")
	ErrNoFieldsToUpdate     = errStr("no status fields provided")
)

// errStr is a minimal constant-friendly error type for entity-level sentinels.
type errStr string

func (e errStr) Error() string { return string(e) }

// OrderItem is one line of an order. ProductID is a reference kept for
// traceability only; ProductName, ProductPrice and ProductImage are copies
// taken at checkout time so that later catalog edits never change what a
// placed order records. The two must never be collapsed into one.
type OrderItem struct {
	ProductID    uuid.UUID // Reference into the catalog, for traceability.
	ProductName  string    // Name snapshot at order creation.
	ProductPrice int64     // Unit price snapshot, in minor currency units.
	ProductImage string    // Image URL snapshot.
	Quantity     int       // Units ordered; always positive.
}

// LineTotal returns the snapshot price multiplied by the quantity.
func (i OrderItem) LineTotal() int64 {
	return i.ProductPrice * int64(i.Quantity)
}

// ShippingAddress is the address an order ships to. It is embedded into the
// order as a copy, never a reference: the order must stay reconstructable
// even if the customer later edits or deletes the saved address it came from.
type ShippingAddress struct {
	FullName       string
	Phone          string
	AlternatePhone string
	Email          string
	State          string
	City           string
	Locality       string
	AddressLine1   string
	PostalCode     string
	Latitude       *float64
	Longitude      *float64
	Country        string // Defaults to "India" when left empty.
}

// DefaultCountry is applied to a shipping address without an explicit country.
const DefaultCountry = "India"

// StatusHistoryEntry is one immutable audit record of a status and/or
// payment-status change: who changed it, from what, to what, and why.
// The history list is append-only; entries are never mutated or reordered.
type StatusHistoryEntry struct {
	ChangedBy             ChangedBy
	PreviousStatus        OrderStatus
	NewStatus             OrderStatus
	PreviousPaymentStatus PaymentStatus
	NewPaymentStatus      PaymentStatus
	Note                  string
	ChangedAt             time.Time
}

// Order is the unit of fulfillment: exactly one vendor, one customer, a
// non-empty set of snapshot line items, and a mandatory audit trail of every
// status change since creation.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID // Owning customer; immutable after creation.
	VendorID        uuid.UUID // Exactly one vendor per order; immutable.
	Items           []OrderItem
	Subtotal        int64 // Σ item price × quantity, in minor currency units.
	ShippingFee     int64
	TotalAmount     int64 // Subtotal + ShippingFee.
	PaymentMethod   PaymentMethod
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	StatusHistory   []StatusHistoryEntry
	ShippingAddress ShippingAddress
	Version         int64 // Monotonic counter for optimistic concurrency.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder assembles a vendor-pure order from already-resolved lines.
// Totals are computed once from the snapshot prices, and the first history
// entry is synthesized with "created" as the previous value of both fields.
func NewOrder(userID, vendorID uuid.UUID, items []OrderItem, addr ShippingAddress, method PaymentMethod, now time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrOrderItemsEmpty
	}
	if method == "" {
		method = PaymentMethodCOD
	}
	if addr.Country == "" {
		addr.Country = DefaultCountry
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.LineTotal()
	}

	return &Order{
		UserID:        userID,
		VendorID:      vendorID,
		Items:         items,
		Subtotal:      subtotal,
		ShippingFee:   FlatShippingFee,
		TotalAmount:   subtotal + FlatShippingFee,
		PaymentMethod: method,
		Status:        OrderStatusPending,
		PaymentStatus: PaymentStatusPending,
		StatusHistory: []StatusHistoryEntry{{
			ChangedBy:             ChangedByVendor,
			PreviousStatus:        OrderStatusCreated,
			NewStatus:             OrderStatusPending,
			PreviousPaymentStatus: PaymentStatusCreated,
			NewPaymentStatus:      PaymentStatusPending,
			Note:                  creationNote,
			ChangedAt:             now,
		}},
		ShippingAddress: addr,
	}, nil
}

// TransitionRequest describes one requested status change. Nil fields are
// left unchanged; at least one of Status/PaymentStatus must be set.
type TransitionRequest struct {
	Status        *OrderStatus
	PaymentStatus *PaymentStatus
	Note          string
	By            ChangedBy
	At            time.Time
}

// ApplyTransition validates and applies a status change, appending exactly
// one history entry. The order is untouched on any validation error.
// There is deliberately no transition graph: any valid value may follow any
// other, supporting manual correction workflows. The enforced invariants are
// value validity, the mandatory note, and the append-only history.
func (o *Order) ApplyTransition(req TransitionRequest) error {
	note := strings.TrimSpace(req.Note)
	if utf8.RuneCountInString(note) < MinNoteLength {
		return ErrNoteRequired
	}
	if req.Status == nil && req.PaymentStatus == nil {
		return ErrNoFieldsToUpdate
	}
	if req.Status != nil && !req.Status.IsValid() {
		return ErrInvalidStatus
	}
	if req.PaymentStatus != nil && !req.PaymentStatus.IsValid() {
		return ErrInvalidPaymentStatus
	}

	// Capture previous values before any mutation.
	entry := StatusHistoryEntry{
		ChangedBy:             req.By,
		PreviousStatus:        o.Status,
		NewStatus:             o.Status,
		PreviousPaymentStatus: o.PaymentStatus,
		NewPaymentStatus:      o.PaymentStatus,
		Note:                  note,
		ChangedAt:             req.At,
	}

	if req.Status != nil {
		o.Status = *req.Status
		entry.NewStatus = *req.Status
	}
	if req.PaymentStatus != nil {
		o.PaymentStatus = *req.PaymentStatus
		entry.NewPaymentStatus = *req.PaymentStatus
	}

	o.StatusHistory = append(o.StatusHistory, entry)

	return nil
}
