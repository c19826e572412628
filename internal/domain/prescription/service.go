package prescription

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
	return &Service{repo: repo, log: log.With().Str("component", "prescription-service").Logger()}
}

func (s *Service) List(ctx context.Context) ([]*Prescription, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Prescription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByCase(ctx context.Context, caseID int64) ([]*Prescription, error) {
	return s.repo.ListByCase(ctx, caseID)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]*Prescription, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) Add(ctx context.Context, p *Prescription) (int64, error) {
	if p.CaseID == 0 {
		return 0, apperr.Validation("病例ID不能为空")
	}
	if p.DoctorID == 0 {
		return 0, apperr.Validation("医生ID不能为空")
	}
	if p.TotalAmount < 0 {
		return 0, apperr.Validation("处方金额不能为负数")
	}
	return s.repo.Insert(ctx, p)
}

func (s *Service) Update(ctx context.Context, p *Prescription) (int64, error) {
	if p.PrescriptionID == 0 {
		return 0, apperr.Validation("处方ID不能为空")
	}
	if p.TotalAmount < 0 {
		return 0, apperr.Validation("处方金额不能为负数")
	}
	return s.repo.Update(ctx, p)
}

// Delete removes the prescription; its items cascade in the database.
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
