package service

import (
	"strings"

	"github.com/google/uuid"
)

// Namespace fijo para las PKs determinísticas de respuestas.
var answerNamespace = uuid.MustParse("7b8a1f9e-4c2d-4e63-9b7a-2f0c5d8e1a44")

// AnswerKey deriva la PK de una respuesta desde (sesión, ronda, participante).
// Dos envíos del mismo alumno para la misma ronda producen el mismo UUID,
// así el dedup lo garantiza la base y no el cliente.
func AnswerKey(sessionCode, roundKey, studentRef string) uuid.UUID {
	seed := strings.ToUpper(strings.TrimSpace(sessionCode)) + "|" +
		strings.TrimSpace(roundKey) + "|" +
		strings.TrimSpace(studentRef)
	return uuid.NewSHA1(answerNamespace, []byte(seed))
}
