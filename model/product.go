package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Price is a NUMERIC(10,2) product price. It always marshals with two
// fractional digits ("1.50"), which is what the API has returned since the
// column was created, and accepts either a JSON number or string on input.
type Price struct {
	decimal.Decimal
}

func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d}
}

func PriceFromString(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return Price{Decimal: d}, nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.StringFixed(2) + `"`), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		p.Decimal = decimal.Decimal{}
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", s, err)
	}
	p.Decimal = d
	return nil
}

// ProductEntity represents a row of the products table
type ProductEntity struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Price     Price     `db:"price" json:"price"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreateProductRequest requires all three fields; a zero price counts as
// missing, same as an empty string would on the other two.
type CreateProductRequest struct {
	Name     string `json:"name" validate:"required"`
	Price    Price  `json:"price"`
	ImageURL string `json:"image_url" validate:"required"`
}

// UpdateProductRequest replaces all three mutable fields wholesale. Updates
// deliberately perform no field validation; whatever the body carries is
// written through.
type UpdateProductRequest struct {
	Name     string `json:"name"`
	Price    Price  `json:"price"`
	ImageURL string `json:"image_url"`
}

// SuccessResponse is the envelope for every 2xx API response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the envelope for every failed API response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// GateDenial is the body returned by the protective gate; it predates the
// success/message envelope and keeps its own shape.
type GateDenial struct {
	Error string `json:"error"`
}
