package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Model ===================== */

// ScheduleModel es el horario semanal de un profe: una grilla de
// bloques (filas) x días lunes-viernes (columnas).
type ScheduleModel struct {
	ScheduleID     uuid.UUID `gorm:"column:schedule_id;type:uuid;default:gen_random_uuid();primaryKey" json:"schedule_id"`
	ScheduleUserID uuid.UUID `gorm:"column:schedule_user_id;type:uuid;not null;uniqueIndex" json:"schedule_user_id"`

	ScheduleRows int `gorm:"column:schedule_rows;not null;default:8" json:"schedule_rows"`
	ScheduleCols int `gorm:"column:schedule_cols;not null;default:5" json:"schedule_cols"`

	// Etiquetas de bloque tal como las escribe el profe ("08:00 - 08:45", "Recreo 09:35 - 09:55", ...)
	ScheduleBlockLabels pq.StringArray `gorm:"column:schedule_block_labels;type:text[]" json:"schedule_block_labels"`

	// Cache de los límites horarios derivados de las etiquetas:
	// [{"hour":8,"minute":0}, ...], largo = bloques+1, estrictamente creciente.
	ScheduleMarks datatypes.JSON `gorm:"column:schedule_marks;type:jsonb" json:"schedule_marks"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (ScheduleModel) TableName() string { return "schedules" }

// ScheduleCellModel es una celda (fila, columna) de la grilla. El guardado es
// wholesale: limpiar una celda la deja con campos vacíos, nunca se borra sola.
type ScheduleCellModel struct {
	CellID         uuid.UUID `gorm:"column:cell_id;type:uuid;default:gen_random_uuid();primaryKey" json:"cell_id"`
	CellScheduleID uuid.UUID `gorm:"column:cell_schedule_id;type:uuid;not null;uniqueIndex:uq_cell_slot,priority:1" json:"cell_schedule_id"`

	CellRow int `gorm:"column:cell_row;not null;uniqueIndex:uq_cell_slot,priority:2" json:"cell_row"`
	CellCol int `gorm:"column:cell_col;not null;uniqueIndex:uq_cell_slot,priority:3" json:"cell_col"`

	CellSubject   string `gorm:"column:cell_subject;type:varchar(120);default:''" json:"cell_subject"`
	CellLevel     string `gorm:"column:cell_level;type:varchar(60);default:''" json:"cell_level"`
	CellSection   string `gorm:"column:cell_section;type:varchar(20);default:''" json:"cell_section"`
	CellUnit      string `gorm:"column:cell_unit;type:varchar(60);default:''" json:"cell_unit"`
	CellObjective string `gorm:"column:cell_objective;type:text;default:''" json:"cell_objective"`
	CellSkills    string `gorm:"column:cell_skills;type:text;default:''" json:"cell_skills"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ScheduleCellModel) TableName() string { return "schedule_cells" }

// IsEmpty true cuando la celda es solo placeholder.
func (cell *ScheduleCellModel) IsEmpty() bool {
	return cell.CellSubject == "" && cell.CellLevel == "" && cell.CellSection == "" &&
		cell.CellUnit == "" && cell.CellObjective == "" && cell.CellSkills == ""
}
