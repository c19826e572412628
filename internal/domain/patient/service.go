package patient

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/apperr"
)

// Service holds patient business rules. Patient data is not cached:
// doctors expect their registrations to be visible immediately.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("component", "patient-service").Logger()}
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]*Patient, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) SearchByName(ctx context.Context, name string) ([]*Patient, error) {
	if name == "" {
		return s.repo.List(ctx)
	}
	return s.repo.SearchByName(ctx, name)
}

func (s *Service) Add(ctx context.Context, p *Patient) (int64, error) {
	if p.PatientName == "" {
		return 0, apperr.Validation("患者姓名不能为空")
	}
	if p.DoctorID == 0 {
		return 0, apperr.Validation("患者必须关联医生")
	}
	if p.Age < 0 {
		return 0, apperr.Validation("患者年龄不合法")
	}
	return s.repo.Insert(ctx, p)
}

func (s *Service) Update(ctx context.Context, p *Patient) (int64, error) {
	if p.PatientID == 0 {
		return 0, apperr.Validation("患者ID不能为空")
	}
	if p.Age < 0 {
		return 0, apperr.Validation("患者年龄不合法")
	}
	return s.repo.Update(ctx, p)
}

// Delete removes the patient; case and prescription rows cascade in
// the database.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	return s.repo.Delete(ctx, id)
}
