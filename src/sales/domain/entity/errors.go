package entity

import "errors"

var (
	ErrSaleNotFound            = errors.New("sale not found")
	ErrEmptyCheckout           = errors.New("checkout has no items")
	ErrSaleMustHaveItems       = errors.New("sale must have at least one item with positive quantity")
	ErrInvalidTotal            = errors.New("total must be greater than or equal to 0")
	ErrCustomerDetailsRequired = errors.New("customer name, phone and address are required")
)
