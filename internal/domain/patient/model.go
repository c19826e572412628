package patient

import "time"

// Patient is a person registered at the clinic, owned by the doctor who
// registered them.
type Patient struct {
	PatientID   int64     `db:"patient_id" json:"patientId"`
	PatientName string    `db:"patient_name" json:"patientName"`
	Gender      string    `db:"gender" json:"gender,omitempty"`
	Age         int       `db:"age" json:"age,omitempty"`
	Phone       string    `db:"phone" json:"phone,omitempty"`
	Address     string    `db:"address" json:"address,omitempty"`
	Remark      string    `db:"remark" json:"remark,omitempty"`
	DoctorID    int64     `db:"doctor_id" json:"doctorId"`
	CreateTime  time.Time `db:"create_time" json:"createTime"`
	UpdateTime  time.Time `db:"update_time" json:"updateTime"`
}
