package prescriptionitem

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/apperr"
)

type mockItemRepo struct {
	items  map[int64]*PrescriptionItem
	nextID int64
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[int64]*PrescriptionItem), nextID: 1}
}

func (m *mockItemRepo) List(_ context.Context) ([]*PrescriptionItem, error) {
	var result []*PrescriptionItem
	for _, item := range m.items {
		result = append(result, item)
	}
	return result, nil
}

func (m *mockItemRepo) GetByID(_ context.Context, id int64) (*PrescriptionItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (m *mockItemRepo) ListByPrescription(_ context.Context, prescriptionID int64) ([]*PrescriptionItem, error) {
	var result []*PrescriptionItem
	for _, item := range m.items {
		if item.PrescriptionID == prescriptionID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *mockItemRepo) Insert(_ context.Context, item *PrescriptionItem) (int64, error) {
	item.ItemID = m.nextID
	m.nextID++
	m.items[item.ItemID] = item
	return 1, nil
}

func (m *mockItemRepo) Update(_ context.Context, item *PrescriptionItem) (int64, error) {
	if _, ok := m.items[item.ItemID]; !ok {
		return 0, nil
	}
	m.items[item.ItemID] = item
	return 1, nil
}

func (m *mockItemRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := m.items[id]; !ok {
		return 0, nil
	}
	delete(m.items, id)
	return 1, nil
}

func (m *mockItemRepo) DeleteByPrescription(_ context.Context, prescriptionID int64) (int64, error) {
	var count int64
	for id, item := range m.items {
		if item.PrescriptionID == prescriptionID {
			delete(m.items, id)
			count++
		}
	}
	return count, nil
}

func TestAddItemValidation(t *testing.T) {
	svc := NewService(newMockItemRepo(), zerolog.Nop())

	cases := []PrescriptionItem{
		{DrugID: 1, Quantity: 2},           // missing prescription
		{PrescriptionID: 1, Quantity: 2},   // missing drug
		{PrescriptionID: 1, DrugID: 1},     // zero quantity
		{PrescriptionID: 1, DrugID: 1, Quantity: -3},
	}
	for i := range cases {
		if _, err := svc.Add(context.Background(), &cases[i]); !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}

	rows, err := svc.Add(context.Background(), &PrescriptionItem{PrescriptionID: 1, DrugID: 1, Quantity: 2})
	if err != nil || rows != 1 {
		t.Fatalf("expected successful add, got rows=%d err=%v", rows, err)
	}
}

func TestDeleteByPrescriptionClearsAllLines(t *testing.T) {
	repo := newMockItemRepo()
	svc := NewService(repo, zerolog.Nop())

	svc.Add(context.Background(), &PrescriptionItem{PrescriptionID: 7, DrugID: 1, Quantity: 1})
	svc.Add(context.Background(), &PrescriptionItem{PrescriptionID: 7, DrugID: 2, Quantity: 2})
	svc.Add(context.Background(), &PrescriptionItem{PrescriptionID: 8, DrugID: 3, Quantity: 3})

	rows, err := svc.DeleteByPrescription(context.Background(), 7)
	if err != nil {
		t.Fatalf("DeleteByPrescription: %v", err)
	}
	if rows != 2 {
		t.Fatalf("expected 2 rows removed, got %d", rows)
	}
	left, _ := svc.ListByPrescription(context.Background(), 8)
	if len(left) != 1 {
		t.Fatalf("expected prescription 8 untouched, got %d items", len(left))
	}
}

func TestDeleteMissingItemReportsZeroRows(t *testing.T) {
	svc := NewService(newMockItemRepo(), zerolog.Nop())

	rows, err := svc.Delete(context.Background(), 99)
	if err != nil || rows != 0 {
		t.Fatalf("expected 0 rows, got %d (%v)", rows, err)
	}
}
