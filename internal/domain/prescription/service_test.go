package prescription

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/apperr"
)

type mockPrescriptionRepo struct {
	prescriptions map[int64]*Prescription
	nextID        int64
}

func newMockPrescriptionRepo() *mockPrescriptionRepo {
	return &mockPrescriptionRepo{prescriptions: make(map[int64]*Prescription), nextID: 1}
}

func (m *mockPrescriptionRepo) List(_ context.Context) ([]*Prescription, error) {
	var result []*Prescription
	for _, p := range m.prescriptions {
		result = append(result, p)
	}
	return result, nil
}

func (m *mockPrescriptionRepo) GetByID(_ context.Context, id int64) (*Prescription, error) {
	p, ok := m.prescriptions[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (m *mockPrescriptionRepo) ListByCase(_ context.Context, caseID int64) ([]*Prescription, error) {
	var result []*Prescription
	for _, p := range m.prescriptions {
		if p.CaseID == caseID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockPrescriptionRepo) ListByDoctor(_ context.Context, doctorID int64) ([]*Prescription, error) {
	var result []*Prescription
	for _, p := range m.prescriptions {
		if p.DoctorID == doctorID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockPrescriptionRepo) Insert(_ context.Context, p *Prescription) (int64, error) {
	p.PrescriptionID = m.nextID
	m.nextID++
	m.prescriptions[p.PrescriptionID] = p
	return 1, nil
}

func (m *mockPrescriptionRepo) Update(_ context.Context, p *Prescription) (int64, error) {
	if _, ok := m.prescriptions[p.PrescriptionID]; !ok {
		return 0, nil
	}
	m.prescriptions[p.PrescriptionID] = p
	return 1, nil
}

func (m *mockPrescriptionRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := m.prescriptions[id]; !ok {
		return 0, nil
	}
	delete(m.prescriptions, id)
	return 1, nil
}

func TestAddPrescriptionValidation(t *testing.T) {
	svc := NewService(newMockPrescriptionRepo(), zerolog.Nop())

	cases := []Prescription{
		{DoctorID: 2, TotalAmount: 10},            // missing case
		{CaseID: 1, TotalAmount: 10},              // missing doctor
		{CaseID: 1, DoctorID: 2, TotalAmount: -1}, // negative amount
	}
	for i := range cases {
		if _, err := svc.Add(context.Background(), &cases[i]); !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}

	rows, err := svc.Add(context.Background(), &Prescription{CaseID: 1, DoctorID: 2})
	if err != nil || rows != 1 {
		t.Fatalf("expected successful add, got rows=%d err=%v", rows, err)
	}
}

func TestUpdatePrescriptionRequiresID(t *testing.T) {
	svc := NewService(newMockPrescriptionRepo(), zerolog.Nop())

	if _, err := svc.Update(context.Background(), &Prescription{TotalAmount: 5}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListByDoctorFiltersOthers(t *testing.T) {
	repo := newMockPrescriptionRepo()
	svc := NewService(repo, zerolog.Nop())

	svc.Add(context.Background(), &Prescription{CaseID: 1, DoctorID: 2, TotalAmount: 30})
	svc.Add(context.Background(), &Prescription{CaseID: 2, DoctorID: 2, TotalAmount: 45})
	svc.Add(context.Background(), &Prescription{CaseID: 3, DoctorID: 9, TotalAmount: 12})

	mine, err := svc.ListByDoctor(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListByDoctor: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 prescriptions for doctor 2, got %d", len(mine))
	}
}

func TestDeleteMissingPrescriptionReportsZeroRows(t *testing.T) {
	svc := NewService(newMockPrescriptionRepo(), zerolog.Nop())

	rows, err := svc.Delete(context.Background(), 42)
	if err != nil || rows != 0 {
		t.Fatalf("expected 0 rows, got %d (%v)", rows, err)
	}
}
