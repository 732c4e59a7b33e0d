package product

import "context"

type Repository interface {
	Get(ctx context.Context, id string) (*Product, error)
	Save(ctx context.Context, p *Product) error
	List(ctx context.Context) ([]*Product, error)
}
