package drug

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/apperr"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/cache"
)

// -- Mock Repository --

type mockDrugRepo struct {
	drugs  map[int64]*Drug
	nextID int64
	loads  int
}

func newMockDrugRepo() *mockDrugRepo {
	return &mockDrugRepo{drugs: make(map[int64]*Drug), nextID: 1}
}

func (m *mockDrugRepo) List(_ context.Context) ([]*Drug, error) {
	m.loads++
	var result []*Drug
	for _, d := range m.drugs {
		result = append(result, d)
	}
	return result, nil
}

func (m *mockDrugRepo) GetByID(_ context.Context, id int64) (*Drug, error) {
	d, ok := m.drugs[id]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

func (m *mockDrugRepo) GetByName(_ context.Context, name string) (*Drug, error) {
	for _, d := range m.drugs {
		if d.DrugName == name {
			return d, nil
		}
	}
	return nil, nil
}

func (m *mockDrugRepo) Insert(_ context.Context, d *Drug) (int64, error) {
	d.DrugID = m.nextID
	m.nextID++
	d.CreateTime = time.Now()
	d.UpdateTime = time.Now()
	m.drugs[d.DrugID] = d
	return 1, nil
}

func (m *mockDrugRepo) Update(_ context.Context, d *Drug) (int64, error) {
	existing, ok := m.drugs[d.DrugID]
	if !ok {
		return 0, nil
	}
	if d.DrugName != "" {
		existing.DrugName = d.DrugName
	}
	existing.Price = d.Price
	existing.Stock = d.Stock
	return 1, nil
}

func (m *mockDrugRepo) AdjustStock(_ context.Context, id int64, delta int) (int64, error) {
	d, ok := m.drugs[id]
	if !ok || d.Stock+delta < 0 {
		return 0, nil
	}
	d.Stock += delta
	return 1, nil
}

func (m *mockDrugRepo) UpdateStock(_ context.Context, id int64, stock int) (int64, error) {
	d, ok := m.drugs[id]
	if !ok {
		return 0, nil
	}
	d.Stock = stock
	return 1, nil
}

func (m *mockDrugRepo) UpdateStatus(_ context.Context, id int64, status int) (int64, error) {
	d, ok := m.drugs[id]
	if !ok {
		return 0, nil
	}
	d.Status = statusPtr(status)
	return 1, nil
}

func (m *mockDrugRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := m.drugs[id]; !ok {
		return 0, nil
	}
	delete(m.drugs, id)
	return 1, nil
}

func newTestService(repo Repository) *Service {
	accessor := cache.NewAccessor(cache.NewMemoryStore(), time.Hour, zerolog.Nop())
	return NewService(repo, accessor, zerolog.Nop())
}

// -- Tests --

func TestAddDrugInvalidatesListCache(t *testing.T) {
	repo := newMockDrugRepo()
	svc := newTestService(repo)

	svc.Add(context.Background(), &Drug{DrugName: "阿莫西林", Specification: "0.25g*24"})

	first, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first) != 1 || repo.loads != 1 {
		t.Fatalf("expected 1 drug loaded once, got %d drugs, %d loads", len(first), repo.loads)
	}

	// Cached: no extra repository load.
	svc.List(context.Background())
	if repo.loads != 1 {
		t.Fatalf("expected cached list, got %d loads", repo.loads)
	}

	svc.Add(context.Background(), &Drug{DrugName: "布洛芬", Specification: "0.3g*20"})
	fresh, _ := svc.List(context.Background())
	if len(fresh) != 2 || repo.loads != 2 {
		t.Fatalf("expected reload after add, got %d drugs, %d loads", len(fresh), repo.loads)
	}
}

func TestAddDrugRejectsDuplicateName(t *testing.T) {
	svc := newTestService(newMockDrugRepo())

	if _, err := svc.Add(context.Background(), &Drug{DrugName: "头孢", Specification: "x"}); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	_, err := svc.Add(context.Background(), &Drug{DrugName: "头孢", Specification: "y"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestGetDrugByIDStaysCachedAfterUpdate(t *testing.T) {
	repo := newMockDrugRepo()
	svc := newTestService(repo)

	svc.Add(context.Background(), &Drug{DrugName: "维C", Specification: "100mg", Price: 5})
	d, _ := repo.GetByName(context.Background(), "维C")

	got, err := svc.Get(context.Background(), d.DrugID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Price != 5 {
		t.Fatalf("expected price 5, got %v", got.Price)
	}

	// Update invalidates the list entry only. The per-id entry keeps
	// serving the old version until its TTL expires.
	svc.Update(context.Background(), &Drug{DrugID: d.DrugID, Price: 8, Stock: d.Stock})
	stale, _ := svc.Get(context.Background(), d.DrugID)
	if stale.Price != 5 {
		t.Fatalf("expected stale cached price 5, got %v", stale.Price)
	}
}

func TestDispenseRefusesOverdraw(t *testing.T) {
	repo := newMockDrugRepo()
	svc := newTestService(repo)

	svc.Add(context.Background(), &Drug{DrugName: "青霉素", Specification: "80万单位", Stock: 3})
	d, _ := repo.GetByName(context.Background(), "青霉素")

	if _, err := svc.Dispense(context.Background(), d.DrugID, 2); err != nil {
		t.Fatalf("Dispense: %v", err)
	}
	_, err := svc.Dispense(context.Background(), d.DrugID, 5)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on overdraw, got %v", err)
	}
	if repo.drugs[d.DrugID].Stock != 1 {
		t.Fatalf("expected stock 1, got %d", repo.drugs[d.DrugID].Stock)
	}
}

func TestDeleteDrugPullsOffShelf(t *testing.T) {
	repo := newMockDrugRepo()
	svc := newTestService(repo)

	svc.Add(context.Background(), &Drug{DrugName: "藿香正气水", Specification: "10ml*10"})
	d, _ := repo.GetByName(context.Background(), "藿香正气水")

	rows, err := svc.Delete(context.Background(), d.DrugID)
	if err != nil || rows != 1 {
		t.Fatalf("Delete: rows=%d err=%v", rows, err)
	}
	if got := repo.drugs[d.DrugID]; got == nil || got.Status == nil || *got.Status != StatusOffSale {
		t.Fatalf("expected drug kept with off-sale status, got %+v", got)
	}

	rows, err = svc.HardDelete(context.Background(), d.DrugID)
	if err != nil || rows != 1 {
		t.Fatalf("HardDelete: rows=%d err=%v", rows, err)
	}
	if _, ok := repo.drugs[d.DrugID]; ok {
		t.Fatal("expected drug row removed")
	}
}

func TestUpdateDrugRejectsNegativePrice(t *testing.T) {
	svc := newTestService(newMockDrugRepo())

	_, err := svc.Update(context.Background(), &Drug{DrugID: 1, Price: -1})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
