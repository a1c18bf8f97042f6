package model

import (
	"time"

	"github.com/google/uuid"
)

/* ===================== Constants ===================== */

const (
	AttendanceStatusPresent = "present"
	AttendanceStatusLate    = "late"
)

/* ===================== Model ===================== */

// AttendanceRecordModel: un alumno marcado presente en una sesión. Único por
// (sesión, ref del dispositivo); el segundo marcado del mismo alumno se ignora.
type AttendanceRecordModel struct {
	AttendanceID uuid.UUID `gorm:"column:attendance_id;type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_id"`

	AttendanceSessionCode string `gorm:"column:attendance_session_code;type:varchar(12);not null;uniqueIndex:uq_attendance,priority:1" json:"attendance_session_code"`
	AttendanceStudentRef  string `gorm:"column:attendance_student_ref;type:varchar(64);not null;uniqueIndex:uq_attendance,priority:2" json:"attendance_student_ref"`

	AttendanceStudentName string `gorm:"column:attendance_student_name;type:varchar(60);not null" json:"attendance_student_name"`
	AttendanceStatus      string `gorm:"column:attendance_status;type:varchar(10);default:'present'" json:"attendance_status"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
