package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPaymentMethod se usa cuando el caller no indica medio de pago
const DefaultPaymentMethod = "cash"

// Customer son los datos opcionales del cliente de una venta online
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// NewCustomer valida los datos del cliente; el checkout online los
// exige completos
func NewCustomer(name, phone, address string) (*Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	address = strings.TrimSpace(address)
	if name == "" || phone == "" || address == "" {
		return nil, ErrCustomerDetailsRequired
	}
	return &Customer{Name: name, Phone: phone, Address: address}, nil
}

// SaleRecord representa una venta comprometida. Es inmutable una vez
// agregada al log: ningún componente la muta ni la reordena.
// Total se calcula siempre de los precios autoritativos del catálogo
// al momento del commit, nunca de un total enviado por el cliente.
type SaleRecord struct {
	ID            string          `json:"-"`
	Timestamp     time.Time       `json:"timestamp"`
	Items         map[string]int  `json:"products"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Cashier       string          `json:"cashier"`
	Customer      *Customer       `json:"customer,omitempty"`
}

// NewSaleRecord crea un registro de venta validado.
// El medio de pago se normaliza a minúsculas.
func NewSaleRecord(
	timestamp time.Time,
	items map[string]int,
	total decimal.Decimal,
	paymentMethod string,
	cashier string,
	customer *Customer,
) (*SaleRecord, error) {
	if len(items) == 0 {
		return nil, ErrSaleMustHaveItems
	}
	for _, qty := range items {
		if qty <= 0 {
			return nil, ErrSaleMustHaveItems
		}
	}
	if total.LessThan(decimal.Zero) {
		return nil, ErrInvalidTotal
	}

	paymentMethod = strings.ToLower(strings.TrimSpace(paymentMethod))
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	lines := make(map[string]int, len(items))
	for pid, qty := range items {
		lines[pid] = qty
	}

	return &SaleRecord{
		Timestamp:     timestamp,
		Items:         lines,
		Total:         total,
		PaymentMethod: paymentMethod,
		Cashier:       cashier,
		Customer:      customer,
	}, nil
}
