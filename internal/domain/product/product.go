package product

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("product: not found")
	ErrInvalidQuantity   = errors.New("product: quantity must be greater than zero")
	ErrInsufficientStock = errors.New("product: insufficient stock")
	ErrNegativeThreshold = errors.New("product: minimum stock must not be negative")
)

// Product is the inventory subject. Stock and MinimumStock are mutated by
// the inventory service; the notification hub only reads the post-mutation
// value.
type Product struct {
	ID           string
	Name         string
	Stock        int
	MinimumStock int
	UpdatedAt    time.Time
}

func New(id, name string, stock, minimumStock int) (*Product, error) {
	if stock < 0 {
		return nil, ErrInvalidQuantity
	}
	if minimumStock < 0 {
		return nil, ErrNegativeThreshold
	}
	return &Product{
		ID:           id,
		Name:         name,
		Stock:        stock,
		MinimumStock: minimumStock,
		UpdatedAt:    time.Now().UTC(),
	}, nil
}

// NeedsReplenishment holds exactly when the current stock has reached or
// fallen below the configured minimum.
func (p *Product) NeedsReplenishment() bool {
	return p.Stock <= p.MinimumStock
}

func (p *Product) Reduce(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > p.Stock {
		return ErrInsufficientStock
	}
	p.Stock -= quantity
	p.touch()
	return nil
}

func (p *Product) Increase(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p.Stock += quantity
	p.touch()
	return nil
}

func (p *Product) SetMinimumStock(minimum int) error {
	if minimum < 0 {
		return ErrNegativeThreshold
	}
	p.MinimumStock = minimum
	p.touch()
	return nil
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now().UTC()
}
