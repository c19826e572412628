package prescriptionitem

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository returns a Repository backed by PostgreSQL.
func NewPgRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const itemSelect = `
SELECT i.item_id, i.prescription_id, i.drug_id, i.quantity, i.usage_method, i.price,
       d.drug_name, d.specification, d.status
  FROM prescription_item i
  JOIN drug d ON d.drug_id = i.drug_id`

func scanItem(row pgx.Row) (*PrescriptionItem, error) {
	var item PrescriptionItem
	err := row.Scan(&item.ItemID, &item.PrescriptionID, &item.DrugID,
		&item.Quantity, &item.UsageMethod, &item.Price,
		&item.DrugName, &item.Specification, &item.DrugStatus)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func collect(rows pgx.Rows, err error, op string) ([]*PrescriptionItem, error) {
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []*PrescriptionItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *pgRepository) List(ctx context.Context) ([]*PrescriptionItem, error) {
	rows, err := r.pool.Query(ctx, itemSelect+` ORDER BY i.item_id`)
	return collect(rows, err, "list items")
}

func (r *pgRepository) GetByID(ctx context.Context, id int64) (*PrescriptionItem, error) {
	item, err := scanItem(r.pool.QueryRow(ctx, itemSelect+` WHERE i.item_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	return item, nil
}

func (r *pgRepository) ListByPrescription(ctx context.Context, prescriptionID int64) ([]*PrescriptionItem, error) {
	rows, err := r.pool.Query(ctx,
		itemSelect+` WHERE i.prescription_id = $1 ORDER BY i.item_id`, prescriptionID)
	return collect(rows, err, "list items by prescription")
}

func (r *pgRepository) Insert(ctx context.Context, item *PrescriptionItem) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO prescription_item (prescription_id, drug_id, quantity, usage_method, price)
		 VALUES ($1, $2, $3, $4, $5)`,
		item.PrescriptionID, item.DrugID, item.Quantity, item.UsageMethod, item.Price)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) Update(ctx context.Context, item *PrescriptionItem) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE prescription_item SET
		   quantity     = CASE WHEN $2 > 0 THEN $2 ELSE quantity END,
		   usage_method = COALESCE(NULLIF($3, ''), usage_method),
		   price        = $4
		 WHERE item_id = $1`,
		item.ItemID, item.Quantity, item.UsageMethod, item.Price)
	if err != nil {
		return 0, fmt.Errorf("update item %d: %w", item.ItemID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM prescription_item WHERE item_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete item %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) DeleteByPrescription(ctx context.Context, prescriptionID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM prescription_item WHERE prescription_id = $1`, prescriptionID)
	if err != nil {
		return 0, fmt.Errorf("delete items of prescription %d: %w", prescriptionID, err)
	}
	return tag.RowsAffected(), nil
}
