package drug

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

const drugColumns = `drug_id, drug_name, specification, price, stock, status, create_time, update_time`

func scanDrug(row pgx.Row) (*Drug, error) {
	var d Drug
	err := row.Scan(&d.DrugID, &d.DrugName, &d.Specification, &d.Price,
		&d.Stock, &d.Status, &d.CreateTime, &d.UpdateTime)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *pgRepository) List(ctx context.Context) ([]*Drug, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+drugColumns+` FROM drug ORDER BY drug_id`)
	if err != nil {
		return nil, fmt.Errorf("list drugs: %w", err)
	}
	defer rows.Close()

	var drugs []*Drug
	for rows.Next() {
		d, err := scanDrug(rows)
		if err != nil {
			return nil, fmt.Errorf("scan drug: %w", err)
		}
		drugs = append(drugs, d)
	}
	return drugs, rows.Err()
}

func (r *pgRepository) GetByID(ctx context.Context, id int64) (*Drug, error) {
	d, err := scanDrug(r.pool.QueryRow(ctx,
		`SELECT `+drugColumns+` FROM drug WHERE drug_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get drug %d: %w", id, err)
	}
	return d, nil
}

func (r *pgRepository) GetByName(ctx context.Context, name string) (*Drug, error) {
	d, err := scanDrug(r.pool.QueryRow(ctx,
		`SELECT `+drugColumns+` FROM drug WHERE drug_name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get drug by name: %w", err)
	}
	return d, nil
}

func (r *pgRepository) Insert(ctx context.Context, d *Drug) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO drug (drug_name, specification, price, stock, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		d.DrugName, d.Specification, d.Price, d.Stock, d.Status)
	if err != nil {
		return 0, fmt.Errorf("insert drug: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) Update(ctx context.Context, d *Drug) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE drug SET
		   drug_name     = COALESCE(NULLIF($2, ''), drug_name),
		   specification = COALESCE(NULLIF($3, ''), specification),
		   price         = $4,
		   stock         = $5,
		   status        = COALESCE($6, status),
		   update_time   = now()
		 WHERE drug_id = $1`,
		d.DrugID, d.DrugName, d.Specification, d.Price, d.Stock, d.Status)
	if err != nil {
		return 0, fmt.Errorf("update drug %d: %w", d.DrugID, err)
	}
	return tag.RowsAffected(), nil
}

// AdjustStock applies a relative change and refuses to go negative.
func (r *pgRepository) AdjustStock(ctx context.Context, id int64, delta int) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE drug SET stock = stock + $2, update_time = now()
		 WHERE drug_id = $1 AND stock + $2 >= 0`,
		id, delta)
	if err != nil {
		return 0, fmt.Errorf("adjust drug %d stock: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) UpdateStock(ctx context.Context, id int64, stock int) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE drug SET stock = $2, update_time = now() WHERE drug_id = $1`,
		id, stock)
	if err != nil {
		return 0, fmt.Errorf("update drug %d stock: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) UpdateStatus(ctx context.Context, id int64, status int) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE drug SET status = $2, update_time = now() WHERE drug_id = $1`,
		id, status)
	if err != nil {
		return 0, fmt.Errorf("update drug %d status: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM drug WHERE drug_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete drug %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
