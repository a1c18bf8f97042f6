package model

import (
	"time"

	"github.com/google/uuid"
)

// WordSubmissionModel es el log append-only de palabras enviadas por alumnos
// anónimos. Nunca se actualiza; la nube se calcula como reducción pura.
type WordSubmissionModel struct {
	SubmissionID uuid.UUID `gorm:"column:submission_id;type:uuid;default:gen_random_uuid();primaryKey" json:"submission_id"`

	SubmissionSessionCode string `gorm:"column:submission_session_code;type:varchar(12);not null;index" json:"submission_session_code"`

	SubmissionText string `gorm:"column:submission_text;type:varchar(80);not null" json:"submission_text"`

	// Identificador efímero del dispositivo del alumno (no es identidad real)
	SubmissionStudentRef string `gorm:"column:submission_student_ref;type:varchar(64);default:''" json:"submission_student_ref"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (WordSubmissionModel) TableName() string { return "word_submissions" }
