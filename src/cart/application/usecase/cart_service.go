package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"shop/src/cart/application/response"
	"shop/src/cart/domain/entity"
	catalogentity "shop/src/catalog/domain/entity"
	catalogport "shop/src/catalog/domain/port"

	"github.com/shopspring/decimal"
)

// CartService caso de uso para mutar y consultar carritos.
// Cada mutación que sube una cantidad valida contra el stock del ledger
// en ese momento; el chequeo es consultivo (el snapshot puede quedar
// viejo) y el checkout vuelve a validar de forma autoritativa.
type CartService struct {
	ledger catalogport.StockLedger
}

// NewCartService crea una nueva instancia del servicio
func NewCartService(ledger catalogport.StockLedger) *CartService {
	return &CartService{
		ledger: ledger,
	}
}

// checkStock valida que el total deseado no supere el stock visible
func (s *CartService) checkStock(ctx context.Context, productID string, desired int) error {
	product, err := s.ledger.Get(ctx, productID)
	if err != nil {
		return err
	}
	if product.Quantity < desired {
		return &catalogentity.InsufficientStockError{
			ProductID: productID,
			Available: product.Quantity,
		}
	}
	return nil
}

// Add suma qty unidades a la línea del producto.
// En rechazo el carrito original queda intacto.
func (s *CartService) Add(ctx context.Context, cart entity.Cart, productID string, qty int) (entity.Cart, error) {
	if qty <= 0 {
		return cart, catalogentity.ErrInvalidQuantity
	}

	desired := cart.Quantity(productID) + qty
	if err := s.checkStock(ctx, productID, desired); err != nil {
		return cart, err
	}
	return cart.With(productID, desired), nil
}

// SetQuantity fija la línea del producto en qty. Cero equivale a Remove.
func (s *CartService) SetQuantity(ctx context.Context, cart entity.Cart, productID string, qty int) (entity.Cart, error) {
	if qty < 0 {
		return cart, catalogentity.ErrInvalidQuantity
	}
	if qty == 0 {
		return s.Remove(cart, productID), nil
	}

	if err := s.checkStock(ctx, productID, qty); err != nil {
		return cart, err
	}
	return cart.With(productID, qty), nil
}

// Remove elimina la línea del producto
func (s *CartService) Remove(cart entity.Cart, productID string) entity.Cart {
	return cart.With(productID, 0)
}

// Clear vacía el carrito
func (s *CartService) Clear(cart entity.Cart) entity.Cart {
	return entity.NewCart()
}

// Items retorna el contenido del carrito
func (s *CartService) Items(cart entity.Cart) map[string]int {
	return cart.Lines()
}

// Summary resuelve el carrito contra el catálogo: nombre, precio e
// imagen actuales, total por línea y total general. Las líneas cuyo
// producto desapareció del catálogo se omiten de la vista.
func (s *CartService) Summary(ctx context.Context, cart entity.Cart) (*response.CartSummaryResponse, error) {
	items := make([]response.CartLineResponse, 0, len(cart))
	total := decimal.Zero

	for pid, qty := range cart.Lines() {
		product, err := s.ledger.Get(ctx, pid)
		if errors.Is(err, catalogentity.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error resolving cart line %s: %w", pid, err)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}

		items = append(items, response.CartLineResponse{
			ProductID: pid,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  qty,
			LineTotal: lineTotal,
			Image:     image,
		})
		total = total.Add(lineTotal)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	return &response.CartSummaryResponse{
		Items:     items,
		ItemCount: len(items),
		CartTotal: total,
	}, nil
}
