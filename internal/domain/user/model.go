package user

import "time"

// User maps to the sys_user table: clinic staff accounts (admins and
// doctors). Username is the login identifier; DisplayName is the person's
// name shown in the UI. Status 1 means enabled, 0 disabled.
type User struct {
	UserID      int64     `db:"user_id" json:"userId"`
	Username    string    `db:"username" json:"username"`
	Password    string    `db:"password" json:"password,omitempty"`
	DisplayName string    `db:"user_name" json:"userName,omitempty"`
	Role        string    `db:"role" json:"role"`
	Phone       string    `db:"phone" json:"phone,omitempty"`
	Status      *int      `db:"status" json:"status,omitempty"`
	CreateTime  time.Time `db:"create_time" json:"createTime"`
	UpdateTime  time.Time `db:"update_time" json:"updateTime"`
}

const (
	StatusEnabled  = 1
	StatusDisabled = 0
)

func statusPtr(v int) *int { return &v }
