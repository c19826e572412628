package prescriptionitem

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/apperr"
)

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("component", "prescription-item-service").Logger()}
}

func (s *Service) List(ctx context.Context) ([]*PrescriptionItem, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*PrescriptionItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPrescription(ctx context.Context, prescriptionID int64) ([]*PrescriptionItem, error) {
	return s.repo.ListByPrescription(ctx, prescriptionID)
}

func (s *Service) Add(ctx context.Context, item *PrescriptionItem) (int64, error) {
	if item.PrescriptionID == 0 {
		return 0, apperr.Validation("处方ID不能为空")
	}
	if item.DrugID == 0 {
		return 0, apperr.Validation("药品ID不能为空")
	}
	if item.Quantity <= 0 {
		return 0, apperr.Validation("数量必须大于0")
	}
	return s.repo.Insert(ctx, item)
}

func (s *Service) Update(ctx context.Context, item *PrescriptionItem) (int64, error) {
	if item.ItemID == 0 {
		return 0, apperr.Validation("明细ID不能为空")
	}
	if item.Quantity < 0 {
		return 0, apperr.Validation("数量必须大于0")
	}
	return s.repo.Update(ctx, item)
}

func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, nil
	}
	return s.repo.Delete(ctx, id)
}

// DeleteByPrescription clears all lines of a prescription in one go,
// used when a doctor rewrites it.
func (s *Service) DeleteByPrescription(ctx context.Context, prescriptionID int64) (int64, error) {
	return s.repo.DeleteByPrescription(ctx, prescriptionID)
}
