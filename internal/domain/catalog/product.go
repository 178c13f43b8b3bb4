package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"giftshop/internal/domain/cart"
)

// Product is the one canonical shape every catalog source is
// normalized into. Internal logic never branches on the field-name
// variants the raw JSON files use.
type Product struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	SalePrice float64 `json:"sale_price,omitempty"`
	ImageURL  string  `json:"image_link,omitempty"`
	Category  string  `json:"category"`
}

// EffectivePrice applies the sale-price precedence rule: a positive
// sale price wins over the list price.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice > 0 {
		return p.SalePrice
	}
	if p.Price < 0 {
		return 0
	}
	return p.Price
}

// CartLine converts a product into a cart line with quantity 1.
func (p Product) CartLine() cart.Line {
	return cart.Line{
		ID:        p.ID,
		Title:     p.Title,
		UnitPrice: p.EffectivePrice(),
		ImageURL:  p.ImageURL,
		Quantity:  1,
		Category:  p.Category,
	}
}

// ParseProducts decodes a JSON array of loosely shaped product records.
// Field names vary across sources (image vs image_link vs imageUrl,
// title vs name), prices arrive as numbers or strings, and missing
// fields resolve to documented defaults. Records without any usable id
// are dropped rather than inserted as broken entries.
func ParseProducts(data []byte) ([]Product, error) {
	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog json: %w", err)
	}

	products := make([]Product, 0, len(raw))
	for _, entry := range raw {
		p, ok := normalize(entry)
		if !ok {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func normalize(entry map[string]interface{}) (Product, bool) {
	id := pickString(entry, "id", "product_id", "sku")
	if id == "" {
		return Product{}, false
	}

	p := Product{
		ID:        id,
		Title:     pickString(entry, "title", "name", "product_name"),
		Price:     pickNumber(entry, "price", "list_price", "regular_price"),
		SalePrice: pickNumber(entry, "sale_price", "salePrice", "discount_price"),
		ImageURL:  pickString(entry, "image", "image_link", "imageUrl", "image_url"),
		Category:  pickString(entry, "category", "type", "product_type"),
	}

	if p.Title == "" {
		p.Title = cart.DefaultTitle
	}
	if p.Category == "" {
		p.Category = cart.DefaultCategory
	}
	if p.Price < 0 {
		p.Price = 0
	}
	if p.SalePrice < 0 {
		p.SalePrice = 0
	}
	return p, true
}

func pickString(entry map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		v, ok := entry[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		}
	}
	return ""
}

// pickNumber accepts JSON numbers and numeric strings such as
// "325" or "325.00 AED"; anything unparsable contributes 0.
func pickNumber(entry map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		v, ok := entry[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case string:
			trimmed := strings.TrimSpace(n)
			if i := strings.IndexFunc(trimmed, func(r rune) bool {
				return (r < '0' || r > '9') && r != '.' && r != '-'
			}); i > 0 {
				trimmed = trimmed[:i]
			}
			if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return f
			}
		}
	}
	return 0
}
