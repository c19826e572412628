package prescription

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Prescription, error)
	GetByID(ctx context.Context, id int64) (*Prescription, error)
	ListByCase(ctx context.Context, caseID int64) ([]*Prescription, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]*Prescription, error)
	Insert(ctx context.Context, p *Prescription) (int64, error)
	Update(ctx context.Context, p *Prescription) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
