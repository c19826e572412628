package medicalcase

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

const caseColumns = `case_id, patient_id, doctor_id, symptom, diagnosis, case_status, visit_time, create_time, update_time`

func scanCase(row pgx.Row) (*MedicalCase, error) {
	var mc MedicalCase
	err := row.Scan(&mc.CaseID, &mc.PatientID, &mc.DoctorID, &mc.Symptom,
		&mc.Diagnosis, &mc.CaseStatus, &mc.VisitTime, &mc.CreateTime, &mc.UpdateTime)
	if err != nil {
		return nil, err
	}
	return &mc, nil
}

func collect(rows pgx.Rows, err error, op string) ([]*MedicalCase, error) {
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var cases []*MedicalCase
	for rows.Next() {
		mc, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		cases = append(cases, mc)
	}
	return cases, rows.Err()
}

func (r *pgRepository) List(ctx context.Context) ([]*MedicalCase, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+caseColumns+` FROM medical_case ORDER BY case_id`)
	return collect(rows, err, "list cases")
}

func (r *pgRepository) GetByID(ctx context.Context, id int64) (*MedicalCase, error) {
	mc, err := scanCase(r.pool.QueryRow(ctx,
		`SELECT `+caseColumns+` FROM medical_case WHERE case_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get case %d: %w", id, err)
	}
	return mc, nil
}

func (r *pgRepository) ListByPatient(ctx context.Context, patientID int64) ([]*MedicalCase, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+caseColumns+` FROM medical_case WHERE patient_id = $1 ORDER BY case_id`, patientID)
	return collect(rows, err, "list cases by patient")
}

func (r *pgRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*MedicalCase, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+caseColumns+` FROM medical_case WHERE doctor_id = $1 ORDER BY case_id`, doctorID)
	return collect(rows, err, "list cases by doctor")
}

func (r *pgRepository) ListByStatus(ctx context.Context, status string) ([]*MedicalCase, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+caseColumns+` FROM medical_case WHERE case_status = $1 ORDER BY case_id`, status)
	return collect(rows, err, "list cases by status")
}

func (r *pgRepository) Insert(ctx context.Context, mc *MedicalCase) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO medical_case (patient_id, doctor_id, symptom, diagnosis, case_status, visit_time)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		mc.PatientID, mc.DoctorID, mc.Symptom, mc.Diagnosis, mc.CaseStatus, mc.VisitTime)
	if err != nil {
		return 0, fmt.Errorf("insert case: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) Update(ctx context.Context, mc *MedicalCase) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE medical_case SET
		   symptom     = COALESCE(NULLIF($2, ''), symptom),
		   diagnosis   = COALESCE(NULLIF($3, ''), diagnosis),
		   case_status = COALESCE(NULLIF($4, ''), case_status),
		   visit_time  = COALESCE($5, visit_time),
		   update_time = now()
		 WHERE case_id = $1`,
		mc.CaseID, mc.Symptom, mc.Diagnosis, mc.CaseStatus, mc.VisitTime)
	if err != nil {
		return 0, fmt.Errorf("update case %d: %w", mc.CaseID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM medical_case WHERE case_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete case %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
