package medicalcase

import "context"

type Repository interface {
	List(ctx context.Context) ([]*MedicalCase, error)
	GetByID(ctx context.Context, id int64) (*MedicalCase, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*MedicalCase, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]*MedicalCase, error)
	ListByStatus(ctx context.Context, status string) ([]*MedicalCase, error)
	Insert(ctx context.Context, mc *MedicalCase) (int64, error)
	Update(ctx context.Context, mc *MedicalCase) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
