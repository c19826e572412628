package drug

import "context"

// Repository abstracts drug persistence. Lookups return (nil, nil) when
// no row matches; writes report rows affected.
type Repository interface {
	List(ctx context.Context) ([]*Drug, error)
	GetByID(ctx context.Context, id int64) (*Drug, error)
	GetByName(ctx context.Context, name string) (*Drug, error)
	Insert(ctx context.Context, d *Drug) (int64, error)
	Update(ctx context.Context, d *Drug) (int64, error)
	AdjustStock(ctx context.Context, id int64, delta int) (int64, error)
	UpdateStock(ctx context.Context, id int64, stock int) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status int) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
