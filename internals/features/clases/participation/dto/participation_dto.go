package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

/* ===================== DTO ===================== */

type SubmitWordRequest struct {
	Text       string `json:"text" validate:"required,max=80"`
	StudentRef string `json:"student_ref" validate:"max=64"`
}

type CreateRoundRequest struct {
	RoundKey     string   `json:"round_key" validate:"required,max=40"`
	Question     string   `json:"question" validate:"required"`
	Options      []string `json:"options" validate:"required,min=2,max=6,dive,required,max=120"`
	CorrectIndex int      `json:"correct_index" validate:"gte=0"`
}

type SubmitAnswerRequest struct {
	RoundKey    string `json:"round_key" validate:"required,max=40"`
	OptionIndex int    `json:"option_index" validate:"gte=0"`
	StudentRef  string `json:"student_ref" validate:"required,max=64"`
	StudentName string `json:"student_name" validate:"max=60"`
	LatencyMs   int64  `json:"latency_ms" validate:"gte=0"`
}

type SubmitAnswerResponse struct {
	Accepted  bool `json:"accepted"`
	Duplicate bool `json:"duplicate"`
	Correct   bool `json:"correct"`
}

/* ===================== Validation ===================== */

func (r *SubmitWordRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	return v.Struct(r)
}

func (r *CreateRoundRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(r); err != nil {
		return err
	}
	if r.CorrectIndex >= len(r.Options) {
		return fmt.Errorf("correct_index %d fuera de las %d alternativas", r.CorrectIndex, len(r.Options))
	}
	return nil
}

func (r *SubmitAnswerRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	return v.Struct(r)
}
