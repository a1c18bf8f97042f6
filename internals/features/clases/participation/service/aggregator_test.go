package service

import (
	"reflect"
	"testing"

	"pragmaprofe_backend/internals/features/clases/participation/model"
)

func TestNormalizeWord(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"  Sol  ", "sol", true},
		{"SOL", "sol", true},
		{"", "", false},
		{"   ", "", false},
		{"12345", "", false}, // puramente numérico se descarta
		{"4x4", "4x4", true},
		{"palabramuylargaquedeberiacortarse", "palabramuylargaquedeberi", true}, // 24 runas
	}
	for _, tc := range cases {
		got, ok := NormalizeWord(tc.in)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("NormalizeWord(%q) = (%q, %v), esperaba (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestAggregateWordsCaseInsensitive(t *testing.T) {
	entries := AggregateWords([]string{"sol", "Sol", "SOL"})
	if len(entries) != 1 {
		t.Fatalf("esperaba 1 clave, salieron %d", len(entries))
	}
	if entries[0].Text != "sol" || entries[0].Weight != 3 {
		t.Errorf("esperaba sol/3, salió %s/%d", entries[0].Text, entries[0].Weight)
	}
}

func TestAggregateWordsCommutative(t *testing.T) {
	a := []string{"sol", "Luna", "sol", "mar", "LUNA", "sol"}
	b := []string{"LUNA", "sol", "mar", "sol", "Luna", "sol"}

	ea := AggregateWords(a)
	eb := AggregateWords(b)

	toMap := func(es []WordEntry) map[string]int {
		m := make(map[string]int)
		for _, e := range es {
			m[e.Text] = e.Weight
		}
		return m
	}
	if !reflect.DeepEqual(toMap(ea), toMap(eb)) {
		t.Errorf("los pesos deben ser independientes del orden: %v vs %v", toMap(ea), toMap(eb))
	}
}

func TestAggregateWordsRenderDeterministic(t *testing.T) {
	words := []string{"sol", "luna", "mar", "sol", "luna", "sol"}
	first := AggregateWords(words)
	second := AggregateWords(words)
	if !reflect.DeepEqual(first, second) {
		t.Error("renders repetidos del mismo agregado deben ser idénticos (color/ángulo incluidos)")
	}
}

func TestAggregateWordsFontScale(t *testing.T) {
	words := []string{"sol", "sol", "sol", "sol", "luna"}
	entries := AggregateWords(words)

	for _, e := range entries {
		if e.FontSize < MinFontSize || e.FontSize > MaxFontSize {
			t.Errorf("%s: font %d fuera de [%d,%d]", e.Text, e.FontSize, MinFontSize, MaxFontSize)
		}
	}
	// el de mayor peso toca el techo de la escala
	if entries[0].Text != "sol" || entries[0].FontSize != MaxFontSize {
		t.Errorf("el más pesado debe llevar la fuente máxima, salió %s/%d", entries[0].Text, entries[0].FontSize)
	}
	if entries[1].FontSize >= entries[0].FontSize {
		t.Error("menor peso no puede tener fuente >= que el mayor")
	}
}

func TestAggregateWordsEmpty(t *testing.T) {
	if got := AggregateWords(nil); len(got) != 0 {
		t.Errorf("log vacío: esperaba nube vacía, salió %v", got)
	}
	if got := AggregateWords([]string{"", "99", "  "}); len(got) != 0 {
		t.Errorf("solo envíos inválidos: esperaba nube vacía, salió %v", got)
	}
}

func answer(round, ref, name string, correct bool) model.QuizAnswerModel {
	return model.QuizAnswerModel{
		AnswerRoundKey:    round,
		AnswerStudentRef:  ref,
		AnswerStudentName: name,
		AnswerIsCorrect:   correct,
	}
}

func TestBuildScoreboard(t *testing.T) {
	t.Run("ranking_por_puntos_desc", func(t *testing.T) {
		rows := BuildScoreboard([]model.QuizAnswerModel{
			answer("r1", "ana", "Ana", true),
			answer("r1", "beto", "Beto", false),
			answer("r2", "ana", "Ana", true),
			answer("r2", "beto", "Beto", true),
		})
		if len(rows) != 2 {
			t.Fatalf("esperaba 2 filas, salieron %d", len(rows))
		}
		if rows[0].StudentRef != "ana" || rows[0].Points != 2*model.QuizPointsPerCorrect {
			t.Errorf("primera fila: esperaba ana con %d pts, salió %s/%d",
				2*model.QuizPointsPerCorrect, rows[0].StudentRef, rows[0].Points)
		}
		if rows[1].StudentRef != "beto" || rows[1].Points != model.QuizPointsPerCorrect {
			t.Errorf("segunda fila: esperaba beto con %d pts, salió %s/%d",
				model.QuizPointsPerCorrect, rows[1].StudentRef, rows[1].Points)
		}
	})

	t.Run("empate_por_orden_de_llegada", func(t *testing.T) {
		rows := BuildScoreboard([]model.QuizAnswerModel{
			answer("r1", "beto", "Beto", true),
			answer("r1", "ana", "Ana", true),
		})
		if rows[0].StudentRef != "beto" {
			t.Errorf("empate: el primero en llegar queda arriba, salió %s", rows[0].StudentRef)
		}
	})

	t.Run("dos_escritores_misma_ronda_no_duplican", func(t *testing.T) {
		// simula dos tabs/dispositivos del mismo alumno escribiendo la misma
		// ronda: el agregado cuenta una sola vez
		rows := BuildScoreboard([]model.QuizAnswerModel{
			answer("r1", "ana", "Ana", true),
			answer("r1", "ana", "Ana", true),
		})
		if len(rows) != 1 {
			t.Fatalf("esperaba 1 fila, salieron %d", len(rows))
		}
		if rows[0].Points != model.QuizPointsPerCorrect || rows[0].Answered != 1 {
			t.Errorf("doble envío no puede contar doble: pts=%d answered=%d",
				rows[0].Points, rows[0].Answered)
		}
	})

	t.Run("sin_respuestas", func(t *testing.T) {
		if rows := BuildScoreboard(nil); len(rows) != 0 {
			t.Errorf("esperaba ranking vacío, salió %v", rows)
		}
	})
}
