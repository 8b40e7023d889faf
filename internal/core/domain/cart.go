package domain

import "math"

// CartItem is one product line of the server-side cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the remote cart together with the prices the API computed for it.
type Cart struct {
	Items         []CartItem `json:"cartItems"`
	ItemsPrice    float64    `json:"itemsPrice"`
	ShippingPrice float64    `json:"shippingPrice"`
	TaxPrice      float64    `json:"taxPrice"`
	TotalPrice    float64    `json:"totalPrice"`
}

// ItemCount is the number of units across all lines.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

// PriceSummary is the canonical price breakdown used everywhere in the console:
// TotalPrice = ItemsPrice + ShippingPrice + TaxPrice.
type PriceSummary struct {
	ItemsPrice    float64 `json:"itemsPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TaxPrice      float64 `json:"taxPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// Summarize derives the breakdown from order lines. Shipping and tax are
// taken as given; items and total are always recomputed.
func Summarize(items []OrderItem, shipping, tax float64) PriceSummary {
	var itemsPrice float64
	for _, it := range items {
		itemsPrice += it.Price * float64(it.Quantity)
	}
	return PriceSummary{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shipping,
		TaxPrice:      tax,
		TotalPrice:    itemsPrice + shipping + tax,
	}
}

// Summary returns the canonical breakdown for the cart.
func (c *Cart) Summary() PriceSummary {
	if c == nil {
		return PriceSummary{}
	}
	return Summarize(c.OrderItems(), c.ShippingPrice, c.TaxPrice)
}

// Diverges reports whether the API's totals disagree with the canonical
// formula by more than half a currency unit.
func (c *Cart) Diverges() bool {
	if c == nil {
		return false
	}
	s := c.Summary()
	return math.Abs(s.ItemsPrice-c.ItemsPrice) > 0.5 || math.Abs(s.TotalPrice-c.TotalPrice) > 0.5
}

// OrderItems converts cart lines into order lines.
func (c *Cart) OrderItems() []OrderItem {
	if c == nil {
		return nil
	}
	out := make([]OrderItem, 0, len(c.Items))
	for _, it := range c.Items {
		out = append(out, OrderItem{
			Name:     it.Product.Name,
			Quantity: it.Quantity,
			Image:    it.Product.Image,
			Price:    it.Product.Price,
			Product:  it.Product.ID,
		})
	}
	return out
}
