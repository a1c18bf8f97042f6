package controller

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pragmaprofe_backend/internals/configs"
	"pragmaprofe_backend/internals/features/horarios/dto"
	"pragmaprofe_backend/internals/features/horarios/model"
	"pragmaprofe_backend/internals/features/horarios/service"
	helper "pragmaprofe_backend/internals/helpers"
	"pragmaprofe_backend/internals/helpers/dbtime"
)

/*
	========================================================
	  Controller
========================================================
*/

type ScheduleController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{DB: db, Validator: validator.New()}
}

/* ===================== GET /api/u/horario ===================== */

func (ctrl *ScheduleController) GetSchedule(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var sched model.ScheduleModel
	if err := ctrl.DB.Where("schedule_user_id = ?", userID).First(&sched).Error; err != nil {
		// sin horario guardado todavía → grilla vacía con defaults, nunca 404
		marks := service.DefaultMarks()
		return helper.JsonOK(c, "OK", dto.ScheduleResponse{
			Rows:        8,
			Cols:        5,
			BlockLabels: []string{},
			Marks:       marks,
			Cells:       []dto.CellResponse{},
		})
	}

	var cells []model.ScheduleCellModel
	if err := ctrl.DB.Where("cell_schedule_id = ?", sched.ScheduleID).
		Order("cell_row, cell_col").Find(&cells).Error; err != nil {
		log.Println("[ERROR] listar celdas:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "No pudimos cargar tu horario")
	}

	return helper.JsonOK(c, "OK", buildScheduleResponse(sched, cells))
}

/* ===================== PUT /api/u/horario ===================== */

// Guardado wholesale: el body trae la grilla completa y reemplaza lo anterior.
func (ctrl *ScheduleController) SaveSchedule(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var body dto.SaveScheduleRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(ctrl.Validator); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// derivar marks desde las etiquetas; si no parsean caemos a la tabla default
	marks, merr := service.ParseBlockLabels(body.BlockLabels)
	if merr != nil {
		log.Println("[WARN] block labels no parsean, usando tabla default:", merr)
		marks = service.DefaultMarks()
	}
	marksJSON, err := service.MarksToJSON(marks)
	if err != nil {
		log.Println("[ERROR] marks json:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}

	var saved model.ScheduleModel
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		sched := model.ScheduleModel{
			ScheduleUserID:      userID,
			ScheduleRows:        body.Rows,
			ScheduleCols:        body.Cols,
			ScheduleBlockLabels: body.BlockLabels,
			ScheduleMarks:       marksJSON,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "schedule_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"schedule_rows", "schedule_cols", "schedule_block_labels", "schedule_marks", "updated_at",
			}),
		}).Create(&sched).Error; err != nil {
			return err
		}
		if err := tx.Where("schedule_user_id = ?", userID).First(&sched).Error; err != nil {
			return err
		}

		// reemplazo total de celdas
		if err := tx.Where("cell_schedule_id = ?", sched.ScheduleID).
			Delete(&model.ScheduleCellModel{}).Error; err != nil {
			return err
		}
		if len(body.Cells) > 0 {
			cells := make([]model.ScheduleCellModel, 0, len(body.Cells))
			for _, in := range body.Cells {
				cells = append(cells, model.ScheduleCellModel{
					CellScheduleID: sched.ScheduleID,
					CellRow:        in.Row,
					CellCol:        in.Col,
					CellSubject:    in.Subject,
					CellLevel:      in.Level,
					CellSection:    in.Section,
					CellUnit:       in.Unit,
					CellObjective:  in.Objective,
					CellSkills:     in.Skills,
				})
			}
			if err := tx.Create(&cells).Error; err != nil {
				return err
			}
		}
		saved = sched
		return nil
	})
	if txErr != nil {
		log.Println("[ERROR] guardar horario:", txErr)
		return fiber.NewError(fiber.StatusInternalServerError, "No pudimos guardar tu horario")
	}

	var cells []model.ScheduleCellModel
	_ = ctrl.DB.Where("cell_schedule_id = ?", saved.ScheduleID).
		Order("cell_row, cell_col").Find(&cells).Error

	return helper.JsonUpdated(c, "Horario guardado", buildScheduleResponse(saved, cells))
}

/* ===================== GET /api/u/horario/actual ===================== */

// Devuelve la clase vigente según el reloj del colegio. Los query params de
// demo (?hora=HH:MM&dia=0..4) solo se respetan fuera de producción.
func (ctrl *ScheduleController) GetCurrentClass(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	now := time.Now().In(service.SchoolLocation())
	minute := now.Hour()*60 + now.Minute()
	col := service.ResolveDayColumn(now.Weekday())

	if !configs.IsProduction() {
		if horaStr := c.Query("hora"); horaStr != "" {
			if tod, perr := dbtime.Parse(horaStr); perr == nil {
				minute = tod.MinuteOfDay()
			}
		}
		if diaStr := c.Query("dia"); diaStr != "" {
			if d := c.QueryInt("dia", -1); d >= 0 && d <= 4 {
				col = d
			}
		}
	}

	var sched model.ScheduleModel
	if err := ctrl.DB.Where("schedule_user_id = ?", userID).First(&sched).Error; err != nil {
		// sin horario → fila 0, sin celda (degradar a vacío, no fallar)
		return helper.JsonOK(c, "OK", dto.CurrentClassResponse{Row: 0, Col: col})
	}

	marks := service.MarksFromJSON(sched.ScheduleMarks)
	row := service.ResolveBlockRow(marks, minute)
	inSession := service.InAnyBlock(marks, minute)

	resp := dto.CurrentClassResponse{Row: row, Col: col, InSession: inSession}

	var cell model.ScheduleCellModel
	if err := ctrl.DB.Where("cell_schedule_id = ? AND cell_row = ? AND cell_col = ?",
		sched.ScheduleID, row, col).First(&cell).Error; err == nil && !cell.IsEmpty() {
		resp.Cell = &dto.CellResponse{
			Row:       cell.CellRow,
			Col:       cell.CellCol,
			Subject:   cell.CellSubject,
			Level:     cell.CellLevel,
			Section:   cell.CellSection,
			Unit:      cell.CellUnit,
			Objective: cell.CellObjective,
			Skills:    cell.CellSkills,
		}
	}

	return helper.JsonOK(c, "OK", resp)
}

/* ===================== Helpers ===================== */

func buildScheduleResponse(sched model.ScheduleModel, cells []model.ScheduleCellModel) dto.ScheduleResponse {
	out := dto.ScheduleResponse{
		Rows:        sched.ScheduleRows,
		Cols:        sched.ScheduleCols,
		BlockLabels: sched.ScheduleBlockLabels,
		Marks:       service.MarksFromJSON(sched.ScheduleMarks),
		Cells:       make([]dto.CellResponse, 0, len(cells)),
	}
	for _, cell := range cells {
		out.Cells = append(out.Cells, dto.CellResponse{
			Row:       cell.CellRow,
			Col:       cell.CellCol,
			Subject:   cell.CellSubject,
			Level:     cell.CellLevel,
			Section:   cell.CellSection,
			Unit:      cell.CellUnit,
			Objective: cell.CellObjective,
			Skills:    cell.CellSkills,
		})
	}
	return out
}
