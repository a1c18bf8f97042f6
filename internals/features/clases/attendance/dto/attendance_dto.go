package dto

import (
	"github.com/go-playground/validator/v10"
)

/* ===================== DTO ===================== */

type MarkAttendanceRequest struct {
	StudentName string `json:"student_name" validate:"required,min=2,max=60"`
	StudentRef  string `json:"student_ref" validate:"required,max=64"`
}

type AttendanceRowResponse struct {
	StudentName string `json:"student_name"`
	Status      string `json:"status"`
	MarkedAt    string `json:"marked_at"`
}

/* ===================== Validation ===================== */

func (r *MarkAttendanceRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	return v.Struct(r)
}
