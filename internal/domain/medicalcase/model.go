package medicalcase

import "time"

// MedicalCase records one course of treatment for a patient. CaseStatus
// moves NEW -> TREATING -> PRESCRIBED -> FINISHED.
type MedicalCase struct {
	CaseID     int64      `db:"case_id" json:"caseId"`
	PatientID  int64      `db:"patient_id" json:"patientId"`
	DoctorID   int64      `db:"doctor_id" json:"doctorId"`
	Symptom    string     `db:"symptom" json:"symptom,omitempty"`
	Diagnosis  string     `db:"diagnosis" json:"diagnosis,omitempty"`
	CaseStatus string     `db:"case_status" json:"caseStatus"`
	VisitTime  *time.Time `db:"visit_time" json:"visitTime,omitempty"`
	CreateTime time.Time  `db:"create_time" json:"createTime"`
	UpdateTime time.Time  `db:"update_time" json:"updateTime"`
}

const (
	StatusNew        = "NEW"
	StatusTreating   = "TREATING"
	StatusPrescribed = "PRESCRIBED"
	StatusFinished   = "FINISHED"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusTreating, StatusPrescribed, StatusFinished:
		return true
	}
	return false
}
