package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

/* ===================== Constants ===================== */

// Puntaje fijo por respuesta correcta. Sin crédito parcial ni bono por
// velocidad (la latencia se registra igual, para estadística).
const QuizPointsPerCorrect = 10

/* ===================== Models ===================== */

// QuizRoundModel es una ronda de la "carrera": pregunta, alternativas y
// el índice de la correcta.
type QuizRoundModel struct {
	RoundID uuid.UUID `gorm:"column:round_id;type:uuid;default:gen_random_uuid();primaryKey" json:"round_id"`

	RoundSessionCode string `gorm:"column:round_session_code;type:varchar(12);not null;uniqueIndex:uq_round,priority:1" json:"round_session_code"`
	RoundKey         string `gorm:"column:round_key;type:varchar(40);not null;uniqueIndex:uq_round,priority:2" json:"round_key"`

	RoundQuestion     string         `gorm:"column:round_question;type:text;not null" json:"round_question"`
	RoundOptions      pq.StringArray `gorm:"column:round_options;type:text[];not null" json:"round_options"`
	RoundCorrectIndex int            `gorm:"column:round_correct_index;not null" json:"round_correct_index"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (QuizRoundModel) TableName() string { return "quiz_rounds" }

// QuizAnswerModel es append-only. La PK es determinística sobre
// (sesión, ronda, participante): un segundo envío del mismo alumno para la
// misma ronda choca con la PK y se ignora (dedup en el server, no en el
// localStorage del alumno).
type QuizAnswerModel struct {
	AnswerID uuid.UUID `gorm:"column:answer_id;type:uuid;primaryKey" json:"answer_id"`

	AnswerSessionCode string `gorm:"column:answer_session_code;type:varchar(12);not null;index" json:"answer_session_code"`
	AnswerRoundKey    string `gorm:"column:answer_round_key;type:varchar(40);not null" json:"answer_round_key"`

	AnswerStudentRef  string `gorm:"column:answer_student_ref;type:varchar(64);not null" json:"answer_student_ref"`
	AnswerStudentName string `gorm:"column:answer_student_name;type:varchar(60);default:''" json:"answer_student_name"`

	AnswerOptionIndex int   `gorm:"column:answer_option_index;not null" json:"answer_option_index"`
	AnswerIsCorrect   bool  `gorm:"column:answer_is_correct;not null" json:"answer_is_correct"`
	AnswerLatencyMs   int64 `gorm:"column:answer_latency_ms;default:0" json:"answer_latency_ms"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (QuizAnswerModel) TableName() string { return "quiz_answers" }
