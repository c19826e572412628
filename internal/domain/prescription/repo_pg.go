package prescription

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

// Reads join patient and doctor names for display.
const prescriptionSelect = `
SELECT p.prescription_id, p.case_id, pt.patient_name, p.doctor_id,
       COALESCE(u.user_name, u.username), p.total_amount, p.create_time
  FROM prescription p
  JOIN medical_case mc ON mc.case_id = p.case_id
  JOIN patient pt ON pt.patient_id = mc.patient_id
  JOIN sys_user u ON u.user_id = p.doctor_id`

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.PrescriptionID, &p.CaseID, &p.PatientName,
		&p.DoctorID, &p.DoctorName, &p.TotalAmount, &p.CreateTime)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collect(rows pgx.Rows, err error, op string) ([]*Prescription, error) {
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var prescriptions []*Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, rows.Err()
}

func (r *pgRepository) List(ctx context.Context) ([]*Prescription, error) {
	rows, err := r.pool.Query(ctx, prescriptionSelect+` ORDER BY p.prescription_id`)
	return collect(rows, err, "list prescriptions")
}

func (r *pgRepository) GetByID(ctx context.Context, id int64) (*Prescription, error) {
	p, err := scanPrescription(r.pool.QueryRow(ctx,
		prescriptionSelect+` WHERE p.prescription_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get prescription %d: %w", id, err)
	}
	return p, nil
}

func (r *pgRepository) ListByCase(ctx context.Context, caseID int64) ([]*Prescription, error) {
	rows, err := r.pool.Query(ctx,
		prescriptionSelect+` WHERE p.case_id = $1 ORDER BY p.prescription_id`, caseID)
	return collect(rows, err, "list prescriptions by case")
}

func (r *pgRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*Prescription, error) {
	rows, err := r.pool.Query(ctx,
		prescriptionSelect+` WHERE p.doctor_id = $1 ORDER BY p.prescription_id`, doctorID)
	return collect(rows, err, "list prescriptions by doctor")
}

func (r *pgRepository) Insert(ctx context.Context, p *Prescription) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO prescription (case_id, doctor_id, total_amount)
		 VALUES ($1, $2, $3)`,
		p.CaseID, p.DoctorID, p.TotalAmount)
	if err != nil {
		return 0, fmt.Errorf("insert prescription: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) Update(ctx context.Context, p *Prescription) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE prescription SET total_amount = $2 WHERE prescription_id = $1`,
		p.PrescriptionID, p.TotalAmount)
	if err != nil {
		return 0, fmt.Errorf("update prescription %d: %w", p.PrescriptionID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM prescription WHERE prescription_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete prescription %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
