package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	sessionModel "pragmaprofe_backend/internals/features/clases/sessions/model"
	"pragmaprofe_backend/internals/features/clases/participation/dto"
	"pragmaprofe_backend/internals/features/clases/participation/model"
	"pragmaprofe_backend/internals/features/clases/participation/service"
	helper "pragmaprofe_backend/internals/helpers"
)

/*
	========================================================
	  Controller
========================================================
*/

type ParticipationController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Hub       *service.Hub
}

func NewParticipationController(db *gorm.DB) *ParticipationController {
	return &ParticipationController{DB: db, Validator: validator.New(), Hub: service.LiveHub}
}

/* ===================== Palabras (nube) ===================== */

// POST /api/public/clases/:code/palabras — envío anónimo de un alumno
func (ctrl *ParticipationController) SubmitWord(c *fiber.Ctx) error {
	code := normalizeCode(c.Params("code"))

	var body dto.SubmitWordRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(ctrl.Validator); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if _, ok := service.NormalizeWord(body.Text); !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Esa palabra no sirve para la nube")
	}

	session, err := ctrl.openSession(code)
	if err != nil {
		return err
	}

	sub := model.WordSubmissionModel{
		SubmissionSessionCode: session.SessionCode,
		SubmissionText:        body.Text,
		SubmissionStudentRef:  body.StudentRef,
	}
	if err := ctrl.DB.Create(&sub).Error; err != nil {
		log.Println("[ERROR] guardar palabra:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "No pudimos guardar tu palabra")
	}

	// snapshot fresco a los viewers conectados
	ctrl.Hub.Broadcast(session.SessionCode, fiber.Map{
		"type": "nube",
		"data": ctrl.wordCloudSnapshot(session.SessionCode),
	})

	return helper.JsonCreated(c, "Palabra recibida", nil)
}

// GET /api/public/clases/:code/nube — agregado para proyectar.
// Si el storage falla degradamos a dataset vacío, nunca 5xx en la vista.
func (ctrl *ParticipationController) GetWordCloud(c *fiber.Ctx) error {
	code := normalizeCode(c.Params("code"))
	return helper.JsonOK(c, "OK", ctrl.wordCloudSnapshot(code))
}

func (ctrl *ParticipationController) wordCloudSnapshot(code string) []service.WordEntry {
	var subs []model.WordSubmissionModel
	if err := ctrl.DB.Where("submission_session_code = ?", code).
		Order("created_at").Find(&subs).Error; err != nil {
		log.Println("[WARN] nube degradada a vacío:", err)
		return []service.WordEntry{}
	}
	texts := make([]string, 0, len(subs))
	for _, s := range subs {
		texts = append(texts, s.SubmissionText)
	}
	return service.AggregateWords(texts)
}

/* ===================== Carrera (quiz) ===================== */

// POST /api/u/clases/:code/rondas — el profe publica una ronda
func (ctrl *ParticipationController) CreateRound(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	code := normalizeCode(c.Params("code"))

	var body dto.CreateRoundRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(ctrl.Validator); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var session sessionModel.LiveSessionModel
	if err := ctrl.DB.Where("session_code = ? AND session_user_id = ?", code, userID).
		First(&session).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Sesión no encontrada")
	}

	round := model.QuizRoundModel{
		RoundSessionCode:  session.SessionCode,
		RoundKey:          body.RoundKey,
		RoundQuestion:     body.Question,
		RoundOptions:      body.Options,
		RoundCorrectIndex: body.CorrectIndex,
	}
	if err := ctrl.DB.Create(&round).Error; err != nil {
		log.Println("[ERROR] crear ronda:", err)
		return fiber.NewError(fiber.StatusConflict, "Esa ronda ya existe")
	}

	// avisar a la sala que hay ronda nueva (sin el índice correcto)
	ctrl.Hub.Broadcast(session.SessionCode, fiber.Map{
		"type": "ronda",
		"data": fiber.Map{
			"round_key": round.RoundKey,
			"question":  round.RoundQuestion,
			"options":   round.RoundOptions,
		},
	})

	return helper.JsonCreated(c, "Ronda publicada", round)
}

// POST /api/public/clases/:code/respuestas — respuesta anónima de un alumno.
// La PK determinística hace el dedup: el segundo envío del mismo alumno para
// la misma ronda no cuenta, venga del tab que venga.
func (ctrl *ParticipationController) SubmitAnswer(c *fiber.Ctx) error {
	code := normalizeCode(c.Params("code"))

	var body dto.SubmitAnswerRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(ctrl.Validator); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	session, err := ctrl.openSession(code)
	if err != nil {
		return err
	}

	var round model.QuizRoundModel
	if err := ctrl.DB.Where("round_session_code = ? AND round_key = ?",
		session.SessionCode, body.RoundKey).First(&round).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Esa ronda no existe")
	}
	if body.OptionIndex >= len(round.RoundOptions) {
		return fiber.NewError(fiber.StatusBadRequest, "Alternativa fuera de rango")
	}

	answer := model.QuizAnswerModel{
		AnswerID:          service.AnswerKey(session.SessionCode, body.RoundKey, body.StudentRef),
		AnswerSessionCode: session.SessionCode,
		AnswerRoundKey:    body.RoundKey,
		AnswerStudentRef:  body.StudentRef,
		AnswerStudentName: body.StudentName,
		AnswerOptionIndex: body.OptionIndex,
		AnswerIsCorrect:   body.OptionIndex == round.RoundCorrectIndex,
		AnswerLatencyMs:   body.LatencyMs,
	}

	res := ctrl.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&answer)
	if res.Error != nil {
		log.Println("[ERROR] guardar respuesta:", res.Error)
		return fiber.NewError(fiber.StatusInternalServerError, "No pudimos guardar tu respuesta")
	}

	duplicate := res.RowsAffected == 0
	if !duplicate {
		ctrl.Hub.Broadcast(session.SessionCode, fiber.Map{
			"type": "carrera",
			"data": ctrl.scoreboardSnapshot(session.SessionCode),
		})
	}

	return helper.JsonOK(c, "OK", dto.SubmitAnswerResponse{
		Accepted:  !duplicate,
		Duplicate: duplicate,
		Correct:   answer.AnswerIsCorrect && !duplicate,
	})
}

// GET /api/public/clases/:code/carrera — ranking para proyectar
func (ctrl *ParticipationController) GetScoreboard(c *fiber.Ctx) error {
	code := normalizeCode(c.Params("code"))
	return helper.JsonOK(c, "OK", ctrl.scoreboardSnapshot(code))
}

func (ctrl *ParticipationController) scoreboardSnapshot(code string) []service.ScoreRow {
	var answers []model.QuizAnswerModel
	if err := ctrl.DB.Where("answer_session_code = ?", code).
		Order("created_at").Find(&answers).Error; err != nil {
		log.Println("[WARN] carrera degradada a vacío:", err)
		return []service.ScoreRow{}
	}
	return service.BuildScoreboard(answers)
}

/* ===================== Helpers ===================== */

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (ctrl *ParticipationController) openSession(code string) (*sessionModel.LiveSessionModel, error) {
	var session sessionModel.LiveSessionModel
	if err := ctrl.DB.Where("session_code = ?", code).First(&session).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Esa clase no existe o ya terminó")
	}
	if !session.IsOpen() {
		return nil, fiber.NewError(fiber.StatusGone, "La sesión ya fue cerrada")
	}
	return &session, nil
}
