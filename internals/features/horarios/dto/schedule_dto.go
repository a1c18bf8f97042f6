package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

/* ===================== DTO ===================== */

type CellInput struct {
	Row       int    `json:"row" validate:"gte=0"`
	Col       int    `json:"col" validate:"gte=0"`
	Subject   string `json:"subject" validate:"max=120"`
	Level     string `json:"level" validate:"max=60"`
	Section   string `json:"section" validate:"max=20"`
	Unit      string `json:"unit" validate:"max=60"`
	Objective string `json:"objective"`
	Skills    string `json:"skills"`
}

// SaveScheduleRequest reemplaza la grilla completa (guardado wholesale).
type SaveScheduleRequest struct {
	Rows        int         `json:"rows" validate:"required,gte=1,lte=20"`
	Cols        int         `json:"cols" validate:"required,gte=1,lte=7"`
	BlockLabels []string    `json:"block_labels" validate:"omitempty,dive,max=80"`
	Cells       []CellInput `json:"cells" validate:"dive"`
}

type CellResponse struct {
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Subject   string `json:"subject"`
	Level     string `json:"level"`
	Section   string `json:"section"`
	Unit      string `json:"unit"`
	Objective string `json:"objective"`
	Skills    string `json:"skills"`
}

type ScheduleResponse struct {
	Rows        int            `json:"rows"`
	Cols        int            `json:"cols"`
	BlockLabels []string       `json:"block_labels"`
	Marks       any            `json:"marks"`
	Cells       []CellResponse `json:"cells"`
}

// CurrentClassResponse es lo que consume la vista de clase en vivo.
type CurrentClassResponse struct {
	Row       int           `json:"row"`
	Col       int           `json:"col"`
	InSession bool          `json:"in_session"` // false cuando estamos fuera de jornada
	Cell      *CellResponse `json:"cell,omitempty"`
}

/* ===================== Validation ===================== */

func (r *SaveScheduleRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(r); err != nil {
		return err
	}
	// celdas dentro de la grilla declarada
	for i, cell := range r.Cells {
		if cell.Row >= r.Rows || cell.Col >= r.Cols {
			return fmt.Errorf("celda %d fuera de la grilla (%d,%d)", i, cell.Row, cell.Col)
		}
	}
	// labels (si vienen) deben calzar con las filas
	if len(r.BlockLabels) > 0 && len(r.BlockLabels) != r.Rows {
		return fmt.Errorf("block_labels debe tener %d entradas, llegaron %d", r.Rows, len(r.BlockLabels))
	}
	return nil
}
