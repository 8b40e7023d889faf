package domain

import (
	"math"
	"net/url"
	"strconv"
	"time"
)

// Review is a single product rating left by a user.
type Review struct {
	User      string    `json:"user"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Product mirrors the remote product resource.
type Product struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Image        string    `json:"image"`
	Category     string    `json:"category"`
	Rating       float64   `json:"rating"`
	CountInStock int       `json:"countInStock"`
	Description  string    `json:"description"`
	NumReviews   int       `json:"numReviews"`
	Reviews      []Review  `json:"reviews,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Category groups products.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// SortOrder is a recognised sortBy value of the product search endpoint.
type SortOrder string

const (
	SortLatest       SortOrder = "latest"
	SortPriceLowHigh SortOrder = "priceLowHigh"
	SortPriceHighLow SortOrder = "priceHighLow"
	SortBestSelling  SortOrder = "bestSelling"
)

// Valid reports whether s is empty or one of the recognised orders.
func (s SortOrder) Valid() bool {
	switch s {
	case "", SortLatest, SortPriceLowHigh, SortPriceHighLow, SortBestSelling:
		return true
	}
	return false
}

// ProductSearchParams enumerates every filter the search endpoint understands.
// Nil pointers and empty strings are not sent.
type ProductSearchParams struct {
	Keyword  string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Rating   *int
	SortBy   SortOrder
}

// Validate checks ranges before the request is issued.
func (p ProductSearchParams) Validate() error {
	if p.MinPrice != nil && !finite(*p.MinPrice) {
		return NewValidationError("minPrice", "must be a finite number")
	}
	if p.MaxPrice != nil && !finite(*p.MaxPrice) {
		return NewValidationError("maxPrice", "must be a finite number")
	}
	if p.MinPrice != nil && *p.MinPrice < 0 {
		return NewValidationError("minPrice", "must not be negative")
	}
	if p.MaxPrice != nil && *p.MaxPrice < 0 {
		return NewValidationError("maxPrice", "must not be negative")
	}
	if p.MinPrice != nil && p.MaxPrice != nil && *p.MinPrice > *p.MaxPrice {
		return NewValidationError("minPrice", "must not exceed maxPrice")
	}
	if p.Rating != nil && (*p.Rating < 1 || *p.Rating > 5) {
		return NewValidationError("rating", "must be between 1 and 5")
	}
	if !p.SortBy.Valid() {
		return NewValidationError("sortBy", "must be one of latest, priceLowHigh, priceHighLow, bestSelling")
	}
	return nil
}

// Values encodes the non-empty filters as query parameters.
func (p ProductSearchParams) Values() url.Values {
	v := url.Values{}
	if p.Keyword != "" {
		v.Set("keyword", p.Keyword)
	}
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if p.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*p.MinPrice, 'f', -1, 64))
	}
	if p.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64))
	}
	if p.Rating != nil {
		v.Set("rating", strconv.Itoa(*p.Rating))
	}
	if p.SortBy != "" {
		v.Set("sortBy", string(p.SortBy))
	}
	return v
}

// ParseProductSearchParams reads filters from a query string. Blank values
// are treated as absent; malformed numbers are validation errors.
func ParseProductSearchParams(q url.Values) (ProductSearchParams, error) {
	p := ProductSearchParams{
		Keyword:  q.Get("keyword"),
		Category: q.Get("category"),
		SortBy:   SortOrder(q.Get("sortBy")),
	}

	var err error
	if p.MinPrice, err = parseFloatParam(q, "minPrice"); err != nil {
		return p, err
	}
	if p.MaxPrice, err = parseFloatParam(q, "maxPrice"); err != nil {
		return p, err
	}
	if raw := q.Get("rating"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return p, NewValidationError("rating", "must be an integer")
		}
		p.Rating = &n
	}
	return p, p.Validate()
}

func parseFloatParam(q url.Values, key string) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || !finite(f) {
		return nil, NewValidationError(key, "must be a number")
	}
	return &f, nil
}

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"countInStock"`
	Category     string  `json:"category"`
	Rating       float64 `json:"rating,omitempty"`
	Image        string  `json:"image,omitempty"`
}

// Validate rejects empty names and negative amounts.
func (p ProductInput) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", "is required")
	}
	if p.Category == "" {
		return NewValidationError("category", "is required")
	}
	if p.Price < 0 {
		return NewValidationError("price", "must not be negative")
	}
	if p.CountInStock < 0 {
		return NewValidationError("countInStock", "must not be negative")
	}
	return nil
}

// ImageUpload is a file attached to a multipart request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
