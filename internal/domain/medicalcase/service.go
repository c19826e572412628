package medicalcase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/apperr"
)

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("component", "case-service").Logger()}
}

func (s *Service) List(ctx context.Context) ([]*MedicalCase, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*MedicalCase, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*MedicalCase, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]*MedicalCase, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) ListByStatus(ctx context.Context, status string) ([]*MedicalCase, error) {
	status = strings.ToUpper(status)
	if !ValidStatus(status) {
		return nil, apperr.Validation("病例状态不合法")
	}
	return s.repo.ListByStatus(ctx, status)
}

func (s *Service) Add(ctx context.Context, mc *MedicalCase) (int64, error) {
	if mc.PatientID == 0 {
		return 0, apperr.Validation("患者ID不能为空")
	}
	if mc.DoctorID == 0 {
		return 0, apperr.Validation("医生ID不能为空")
	}
	if mc.CaseStatus == "" {
		mc.CaseStatus = StatusNew
	}
	mc.CaseStatus = strings.ToUpper(mc.CaseStatus)
	if !ValidStatus(mc.CaseStatus) {
		return 0, apperr.Validation("病例状态不合法")
	}
	return s.repo.Insert(ctx, mc)
}

func (s *Service) Update(ctx context.Context, mc *MedicalCase) (int64, error) {
	if mc.CaseID == 0 {
		return 0, apperr.Validation("病例ID不能为空")
	}
	if mc.CaseStatus != "" {
		mc.CaseStatus = strings.ToUpper(mc.CaseStatus)
		if !ValidStatus(mc.CaseStatus) {
			return 0, apperr.Validation("病例状态不合法")
		}
	}
	return s.repo.Update(ctx, mc)
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
