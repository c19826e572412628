package patient

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

const patientColumns = `patient_id, patient_name, gender, age, phone, address, remark, doctor_id, create_time, update_time`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.PatientID, &p.PatientName, &p.Gender, &p.Age,
		&p.Phone, &p.Address, &p.Remark, &p.DoctorID, &p.CreateTime, &p.UpdateTime)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pgRepository) collect(rows pgx.Rows, err error, op string) ([]*Patient, error) {
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

func (r *pgRepository) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+patientColumns+` FROM patient ORDER BY patient_id`)
	return r.collect(rows, err, "list patients")
}

func (r *pgRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+patientColumns+` FROM patient WHERE doctor_id = $1 ORDER BY patient_id`, doctorID)
	return r.collect(rows, err, "list patients by doctor")
}

func (r *pgRepository) GetByID(ctx context.Context, id int64) (*Patient, error) {
	p, err := scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patient WHERE patient_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get patient %d: %w", id, err)
	}
	return p, nil
}

func (r *pgRepository) SearchByName(ctx context.Context, name string) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+patientColumns+` FROM patient WHERE patient_name LIKE '%' || $1 || '%' ORDER BY patient_id`, name)
	return r.collect(rows, err, "search patients")
}

func (r *pgRepository) Insert(ctx context.Context, p *Patient) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO patient (patient_name, gender, age, phone, address, remark, doctor_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.PatientName, p.Gender, p.Age, p.Phone, p.Address, p.Remark, p.DoctorID)
	if err != nil {
		return 0, fmt.Errorf("insert patient: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) Update(ctx context.Context, p *Patient) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE patient SET
		   patient_name = COALESCE(NULLIF($2, ''), patient_name),
		   gender       = COALESCE(NULLIF($3, ''), gender),
		   age          = CASE WHEN $4 > 0 THEN $4 ELSE age END,
		   phone        = COALESCE(NULLIF($5, ''), phone),
		   address      = COALESCE(NULLIF($6, ''), address),
		   remark       = COALESCE(NULLIF($7, ''), remark),
		   update_time  = now()
		 WHERE patient_id = $1`,
		p.PatientID, p.PatientName, p.Gender, p.Age, p.Phone, p.Address, p.Remark)
	if err != nil {
		return 0, fmt.Errorf("update patient %d: %w", p.PatientID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patient WHERE patient_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete patient %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
