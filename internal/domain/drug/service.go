package drug

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/apperr"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/cache"
)

const cacheKeyDrugList = "drugList"

func cacheKeyDrug(id int64) string { return fmt.Sprintf("drug:%d", id) }

// Service holds drug business rules. Both the full list and individual
// drugs are read through the cache accessor. Mutations invalidate the
// list key only; a per-id entry is left to age out on its TTL, so a
// read by id can briefly return the previous version after an update.
type Service struct {
	repo  Repository
	cache *cache.Accessor
	log   zerolog.Logger
}

func NewService(repo Repository, accessor *cache.Accessor, log zerolog.Logger) *Service {
	return &Service{repo: repo, cache: accessor, log: log.With().Str("component", "drug-service").Logger()}
}

func (s *Service) List(ctx context.Context) ([]*Drug, error) {
	return cache.GetOrLoad(ctx, s.cache, cacheKeyDrugList, func(ctx context.Context) ([]*Drug, error) {
		return s.repo.List(ctx)
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*Drug, error) {
	return cache.GetOrLoad(ctx, s.cache, cacheKeyDrug(id), func(ctx context.Context) (*Drug, error) {
		return s.repo.GetByID(ctx, id)
	})
}

// GetByName goes straight to the store; name lookups are not cached.
func (s *Service) GetByName(ctx context.Context, name string) (*Drug, error) {
	if name == "" {
		return nil, apperr.Validation("药品名称不能为空")
	}
	return s.repo.GetByName(ctx, name)
}

func (s *Service) Add(ctx context.Context, d *Drug) (int64, error) {
	if d.DrugName == "" {
		return 0, apperr.Validation("药品名称不能为空")
	}
	if d.Price < 0 {
		return 0, apperr.Validation("药品价格不能为负数")
	}
	if d.Stock < 0 {
		return 0, apperr.Validation("药品库存不能为负数")
	}
	existing, err := s.repo.GetByName(ctx, d.DrugName)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, apperr.Conflict("药品名称已存在")
	}
	if d.Status == nil {
		d.Status = statusPtr(StatusOnSale)
	}
	rows, err := s.repo.Insert(ctx, d)
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		s.cache.Invalidate(ctx, cacheKeyDrugList)
	}
	return rows, nil
}

func (s *Service) Update(ctx context.Context, d *Drug) (int64, error) {
	if d.DrugID == 0 {
		return 0, apperr.Validation("药品ID不能为空")
	}
	if d.Price < 0 {
		return 0, apperr.Validation("药品价格不能为负数")
	}
	if d.DrugName != "" {
		existing, err := s.repo.GetByName(ctx, d.DrugName)
		if err != nil {
			return 0, err
		}
		if existing != nil && existing.DrugID != d.DrugID {
			return 0, apperr.Conflict("药品名称已被使用")
		}
	}
	rows, err := s.repo.Update(ctx, d)
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		s.cache.Invalidate(ctx, cacheKeyDrugList)
	}
	return rows, nil
}

// Dispense reduces stock when a prescription is filled.
func (s *Service) Dispense(ctx context.Context, id int64, quantity int) (int64, error) {
	if quantity <= 0 {
		return 0, apperr.Validation("发药数量必须大于0")
	}
	rows, err := s.repo.AdjustStock(ctx, id, -quantity)
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, apperr.Conflict("药品库存不足")
	}
	s.cache.Invalidate(ctx, cacheKeyDrugList)
	return rows, nil
}

// SetStock overwrites the stock level, used for inventory corrections.
func (s *Service) SetStock(ctx context.Context, id int64, stock int) (int64, error) {
	if stock < 0 {
		return 0, apperr.Validation("药品库存不能为负数")
	}
	rows, err := s.repo.UpdateStock(ctx, id, stock)
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		s.cache.Invalidate(ctx, cacheKeyDrugList)
	}
	return rows, nil
}

// Delete pulls the drug off the shelf; the row stays so past
// prescription items keep their reference.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, nil
	}
	rows, err := s.repo.UpdateStatus(ctx, id, StatusOffSale)
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		s.cache.Invalidate(ctx, cacheKeyDrugList)
	}
	return rows, nil
}

// HardDelete removes the row entirely.
func (s *Service) HardDelete(ctx context.Context, id int64) (int64, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, nil
	}
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		s.cache.Invalidate(ctx, cacheKeyDrugList)
	}
	return rows, nil
}
