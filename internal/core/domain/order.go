package domain

import "time"

// OrderStatus is the back-office fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipping  OrderStatus = "shipping"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// AdminOrderAction is a status change an administrator can request.
type AdminOrderAction string

const (
	ActionConfirm AdminOrderAction = "confirm"
	ActionCancel  AdminOrderAction = "cancel"
	ActionShip    AdminOrderAction = "ship"
)

// ResultingStatus is the status the order takes after the action succeeds.
func (a AdminOrderAction) ResultingStatus() (OrderStatus, bool) {
	switch a {
	case ActionConfirm:
		return OrderConfirmed, true
	case ActionCancel:
		return OrderCancelled, true
	case ActionShip:
		return OrderShipping, true
	}
	return "", false
}

// Payment methods accepted at checkout.
const (
	PaymentCOD   = "COD"
	PaymentVNPay = "VNPay"
)

// OrderItem is a single order line.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Product  string  `json:"product"`
}

// ShippingAddress is where the order is delivered.
type ShippingAddress struct {
	FullName string `json:"fullname"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

// Validate requires every field.
func (a ShippingAddress) Validate() error {
	fields := []struct{ name, value string }{
		{"fullname", a.FullName},
		{"phone", a.Phone},
		{"address", a.Address},
		{"city", a.City},
		{"country", a.Country},
	}
	for _, f := range fields {
		if f.value == "" {
			return NewValidationError("shippingAddress."+f.name, "is required")
		}
	}
	return nil
}

// Order mirrors the remote order resource.
type Order struct {
	ID              string          `json:"_id"`
	User            any             `json:"user,omitempty"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	Status          OrderStatus     `json:"status,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Cancellable reports whether the customer may still cancel the order.
func (o Order) Cancellable() bool {
	return !o.IsPaid && !o.IsDelivered
}

// NewOrder is the payload sent to create an order.
type NewOrder struct {
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// Validate checks lines, address and payment method.
func (o NewOrder) Validate() error {
	if len(o.OrderItems) == 0 {
		return NewValidationError("orderItems", "must not be empty")
	}
	for _, it := range o.OrderItems {
		if it.Product == "" {
			return NewValidationError("orderItems.product", "is required")
		}
		if it.Quantity < 1 {
			return NewValidationError("orderItems.quantity", "must be at least 1")
		}
	}
	if o.PaymentMethod != PaymentCOD && o.PaymentMethod != PaymentVNPay {
		return NewValidationError("paymentMethod", "must be COD or VNPay")
	}
	return o.ShippingAddress.Validate()
}
