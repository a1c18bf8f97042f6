package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Constants ===================== */

const (
	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

/* ===================== Model ===================== */

// LiveSessionModel es una sesión de clase en vivo. El código corto es lo que
// los alumnos escanean/tipean para entrar; particiona palabras, respuestas y
// asistencia.
type LiveSessionModel struct {
	SessionID   uuid.UUID `gorm:"column:session_id;type:uuid;default:gen_random_uuid();primaryKey" json:"session_id"`
	SessionCode string    `gorm:"column:session_code;type:varchar(12);not null;uniqueIndex" json:"session_code"`

	SessionUserID uuid.UUID `gorm:"column:session_user_id;type:uuid;not null;index" json:"session_user_id"`

	// Snapshot de la clase vigente al abrir (puede venir del resolver o manual)
	SessionSubject string `gorm:"column:session_subject;type:varchar(120);default:''" json:"session_subject"`
	SessionLevel   string `gorm:"column:session_level;type:varchar(60);default:''" json:"session_level"`
	SessionSection string `gorm:"column:session_section;type:varchar(20);default:''" json:"session_section"`
	SessionUnit    string `gorm:"column:session_unit;type:varchar(60);default:''" json:"session_unit"`

	SessionStatus string `gorm:"column:session_status;type:varchar(10);default:'open';index" json:"session_status"`

	SessionOpenedAt time.Time  `gorm:"column:session_opened_at;autoCreateTime" json:"session_opened_at"`
	SessionClosedAt *time.Time `gorm:"column:session_closed_at" json:"session_closed_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (LiveSessionModel) TableName() string { return "live_sessions" }

func (s *LiveSessionModel) IsOpen() bool { return s.SessionStatus == SessionStatusOpen }
