package medicalcase

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/apperr"
)

type mockCaseRepo struct {
	cases  map[int64]*MedicalCase
	nextID int64
}

func newMockCaseRepo() *mockCaseRepo {
	return &mockCaseRepo{cases: make(map[int64]*MedicalCase), nextID: 1}
}

func (m *mockCaseRepo) List(_ context.Context) ([]*MedicalCase, error) {
	var result []*MedicalCase
	for _, mc := range m.cases {
		result = append(result, mc)
	}
	return result, nil
}

func (m *mockCaseRepo) GetByID(_ context.Context, id int64) (*MedicalCase, error) {
	mc, ok := m.cases[id]
	if !ok {
		return nil, nil
	}
	return mc, nil
}

func (m *mockCaseRepo) ListByPatient(_ context.Context, patientID int64) ([]*MedicalCase, error) {
	var result []*MedicalCase
	for _, mc := range m.cases {
		if mc.PatientID == patientID {
			result = append(result, mc)
		}
	}
	return result, nil
}

func (m *mockCaseRepo) ListByDoctor(_ context.Context, doctorID int64) ([]*MedicalCase, error) {
	var result []*MedicalCase
	for _, mc := range m.cases {
		if mc.DoctorID == doctorID {
			result = append(result, mc)
		}
	}
	return result, nil
}

func (m *mockCaseRepo) ListByStatus(_ context.Context, status string) ([]*MedicalCase, error) {
	var result []*MedicalCase
	for _, mc := range m.cases {
		if mc.CaseStatus == status {
			result = append(result, mc)
		}
	}
	return result, nil
}

func (m *mockCaseRepo) Insert(_ context.Context, mc *MedicalCase) (int64, error) {
	mc.CaseID = m.nextID
	m.nextID++
	m.cases[mc.CaseID] = mc
	return 1, nil
}

func (m *mockCaseRepo) Update(_ context.Context, mc *MedicalCase) (int64, error) {
	existing, ok := m.cases[mc.CaseID]
	if !ok {
		return 0, nil
	}
	if mc.CaseStatus != "" {
		existing.CaseStatus = mc.CaseStatus
	}
	if mc.Diagnosis != "" {
		existing.Diagnosis = mc.Diagnosis
	}
	return 1, nil
}

func (m *mockCaseRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := m.cases[id]; !ok {
		return 0, nil
	}
	delete(m.cases, id)
	return 1, nil
}

func TestAddCaseDefaultsStatusNew(t *testing.T) {
	repo := newMockCaseRepo()
	svc := NewService(repo, zerolog.Nop())

	rows, err := svc.Add(context.Background(), &MedicalCase{PatientID: 1, DoctorID: 2})
	if err != nil || rows != 1 {
		t.Fatalf("Add: rows=%d err=%v", rows, err)
	}
	if repo.cases[1].CaseStatus != StatusNew {
		t.Fatalf("expected default status NEW, got %s", repo.cases[1].CaseStatus)
	}
}

func TestAddCaseRequiresPatientAndDoctor(t *testing.T) {
	svc := NewService(newMockCaseRepo(), zerolog.Nop())

	_, err := svc.Add(context.Background(), &MedicalCase{DoctorID: 2})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for missing patient, got %v", err)
	}
	_, err = svc.Add(context.Background(), &MedicalCase{PatientID: 1})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for missing doctor, got %v", err)
	}
}

func TestUpdateCaseRejectsUnknownStatus(t *testing.T) {
	repo := newMockCaseRepo()
	svc := NewService(repo, zerolog.Nop())

	svc.Add(context.Background(), &MedicalCase{PatientID: 1, DoctorID: 2})

	_, err := svc.Update(context.Background(), &MedicalCase{CaseID: 1, CaseStatus: "ARCHIVED"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	rows, err := svc.Update(context.Background(), &MedicalCase{CaseID: 1, CaseStatus: "treating"})
	if err != nil || rows != 1 {
		t.Fatalf("Update: rows=%d err=%v", rows, err)
	}
	if repo.cases[1].CaseStatus != StatusTreating {
		t.Fatalf("expected TREATING, got %s", repo.cases[1].CaseStatus)
	}
}

func TestListByStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newMockCaseRepo(), zerolog.Nop())

	_, err := svc.ListByStatus(context.Background(), "UNKNOWN")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteMissingCaseReportsZeroRows(t *testing.T) {
	svc := NewService(newMockCaseRepo(), zerolog.Nop())

	rows, err := svc.Delete(context.Background(), 42)
	if err != nil || rows != 0 {
		t.Fatalf("expected 0 rows, got %d (%v)", rows, err)
	}
}
