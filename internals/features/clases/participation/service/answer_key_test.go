package service

import "testing"

func TestAnswerKeyDeterministic(t *testing.T) {
	a := AnswerKey("ABC123", "r1", "dev-1")
	b := AnswerKey("ABC123", "r1", "dev-1")
	if a != b {
		t.Error("misma (sesión, ronda, participante) debe dar la misma PK")
	}

	// normalización: el código llega en cualquier caja desde el QR/tipeo
	c := AnswerKey(" abc123 ", "r1", "dev-1")
	if a != c {
		t.Error("el código de sesión se normaliza antes de derivar la PK")
	}
}

func TestAnswerKeyDistinct(t *testing.T) {
	base := AnswerKey("ABC123", "r1", "dev-1")
	if base == AnswerKey("ABC123", "r2", "dev-1") {
		t.Error("otra ronda debe dar otra PK")
	}
	if base == AnswerKey("ABC123", "r1", "dev-2") {
		t.Error("otro participante debe dar otra PK")
	}
	if base == AnswerKey("XYZ999", "r1", "dev-1") {
		t.Error("otra sesión debe dar otra PK")
	}
}
