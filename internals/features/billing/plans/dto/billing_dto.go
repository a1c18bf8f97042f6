package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

/* ===================== DTO ===================== */

type CreatePaymentRequest struct {
	Plan   string `json:"plan" validate:"required,oneof=PRO"`
	Email  string `json:"email" validate:"required,email"`
	Months int    `json:"months" validate:"required,min=1,max=24"`
}

type CreatePaymentResponse struct {
	OrderID uuid.UUID `json:"order_id"`
	Token   string    `json:"token"`
	PayURL  string    `json:"pay_url"`
	Amount  int64     `json:"amount"`
}

type ConfirmPaymentRequest struct {
	Token string `json:"token" validate:"required"`
}

type EntitlementResponse struct {
	PlanTier  string     `json:"plan_tier"`
	Active    bool       `json:"active"`
	PeriodEnd *time.Time `json:"period_end,omitempty"`
	Source    string     `json:"source,omitempty"`
}

/* ===================== Validation ===================== */

func (r *CreatePaymentRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	return v.Struct(r)
}

func (r *ConfirmPaymentRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	return v.Struct(r)
}
