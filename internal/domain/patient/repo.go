package patient

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Patient, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]*Patient, error)
	GetByID(ctx context.Context, id int64) (*Patient, error)
	SearchByName(ctx context.Context, name string) ([]*Patient, error)
	Insert(ctx context.Context, p *Patient) (int64, error)
	Update(ctx context.Context, p *Patient) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
