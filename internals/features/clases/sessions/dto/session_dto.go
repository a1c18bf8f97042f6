package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

/* ===================== DTO ===================== */

// OpenSessionRequest: todos los campos son opcionales; si vienen vacíos el
// controller intenta autocompletar desde la clase vigente del horario.
type OpenSessionRequest struct {
	Subject string `json:"subject" validate:"max=120"`
	Level   string `json:"level" validate:"max=60"`
	Section string `json:"section" validate:"max=20"`
	Unit    string `json:"unit" validate:"max=60"`
}

type SessionResponse struct {
	SessionID uuid.UUID  `json:"session_id"`
	Code      string     `json:"code"`
	Subject   string     `json:"subject"`
	Level     string     `json:"level"`
	Section   string     `json:"section"`
	Unit      string     `json:"unit"`
	Status    string     `json:"status"`
	JoinURL   string     `json:"join_url"`
	QRURL     string     `json:"qr_url"`
	OpenedAt  time.Time  `json:"opened_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

// PublicSessionResponse es lo que ve un alumno al escanear el QR.
type PublicSessionResponse struct {
	Code    string `json:"code"`
	Subject string `json:"subject"`
	Level   string `json:"level"`
	Status  string `json:"status"`
}

/* ===================== Validation ===================== */

func (r *OpenSessionRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	return v.Struct(r)
}
