package prescriptionitem

import "context"

type Repository interface {
	List(ctx context.Context) ([]*PrescriptionItem, error)
	GetByID(ctx context.Context, id int64) (*PrescriptionItem, error)
	ListByPrescription(ctx context.Context, prescriptionID int64) ([]*PrescriptionItem, error)
	Insert(ctx context.Context, item *PrescriptionItem) (int64, error)
	Update(ctx context.Context, item *PrescriptionItem) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	DeleteByPrescription(ctx context.Context, prescriptionID int64) (int64, error)
}
