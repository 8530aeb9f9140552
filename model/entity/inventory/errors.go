package inventory

import "errors"

var (
	// ErrInsufficientStock means the adjustment would drive available below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrCapacityExceeded means the adjustment would push available above total stock.
	ErrCapacityExceeded = errors.New("total stock capacity exceeded")
	// ErrNotFound means no record exists for the (product, location) pair.
	ErrNotFound = errors.New("inventory record not found")
)
