package prescription

import "time"

// Prescription heads a set of prescription items written for a case.
// PatientName and DoctorName are joined in on reads for display.
type Prescription struct {
	PrescriptionID int64     `db:"prescription_id" json:"prescriptionId"`
	CaseID         int64     `db:"case_id" json:"caseId"`
	PatientName    string    `db:"patient_name" json:"patientName,omitempty"`
	DoctorID       int64     `db:"doctor_id" json:"doctorId"`
	DoctorName     string    `db:"doctor_name" json:"doctorName,omitempty"`
	TotalAmount    float64   `db:"total_amount" json:"totalAmount"`
	CreateTime     time.Time `db:"create_time" json:"createTime"`
}
