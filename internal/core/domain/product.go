package domain

import (
	"errors"
	"net/url"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

const (
	maxProductNameLength     = 200
	maxProductCategoryLength = 100
)

// Product is a catalog item owned by the external store. This system only
// reads and searches products.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"image_url"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     Timestamp       `json:"created_at"`
	UpdatedAt     Timestamp       `json:"updated_at"`
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// Validate applies the write-side product schema. No endpoint writes products
// yet; the rules are kept next to the type so a future write path gets them.
func (p *Product) Validate() *ValidationError {
	verr := &ValidationError{}

	switch {
	case p.Name == "":
		verr.Add("name", "This field is required.")
	case len([]rune(p.Name)) > maxProductNameLength:
		verr.Add("name", "Ensure this field has no more than 200 characters.")
	}
	if !p.Price.IsPositive() {
		verr.Add("price", "Price must be greater than 0.")
	}
	switch {
	case p.Category == "":
		verr.Add("category", "This field is required.")
	case len([]rune(p.Category)) > maxProductCategoryLength:
		verr.Add("category", "Ensure this field has no more than 100 characters.")
	}
	if p.ImageURL != "" && !isHTTPURL(p.ImageURL) {
		verr.Add("image_url", "Enter a valid URL.")
	}
	if p.StockQuantity < 0 {
		verr.Add("stock_quantity", "Ensure this value is greater than or equal to 0.")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
