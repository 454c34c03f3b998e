package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxImages es la cantidad máxima de URLs de imagen por producto
const MaxImages = 5

// Product representa un producto del catálogo.
// Quantity es el stock autoritativo: solo el ledger lo muta.
type Product struct {
	ID       string          `json:"-"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Images   []string        `json:"images,omitempty"`
}

// NewProduct crea un producto validando sus campos requeridos.
// Las URLs de imagen en blanco se descartan y se conservan a lo sumo
// las primeras MaxImages, en orden.
func NewProduct(name string, price decimal.Decimal, quantity int, imageURLs []string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrProductNameRequired
	}
	if price.LessThan(decimal.Zero) {
		return nil, ErrInvalidPrice
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	var images []string
	for _, url := range imageURLs {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		images = append(images, url)
		if len(images) == MaxImages {
			break
		}
	}

	return &Product{
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Images:   images,
	}, nil
}

// Value retorna el valor de inventario del producto (precio × stock)
func (p *Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
