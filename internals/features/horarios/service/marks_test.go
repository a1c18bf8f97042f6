package service

import (
	"testing"
)

func TestParseBlockLabels(t *testing.T) {
	t.Run("etiquetas_con_inicio_y_fin", func(t *testing.T) {
		labels := []string{
			"08:00 - 08:45",
			"08:45 - 09:30",
			"Recreo 09:30 - 09:50",
			"09:50 - 10:35",
		}
		marks, err := ParseBlockLabels(labels)
		if err != nil {
			t.Fatalf("no esperaba error: %v", err)
		}
		if len(marks) != len(labels)+1 {
			t.Fatalf("esperaba %d límites, salieron %d", len(labels)+1, len(marks))
		}
		want := []Mark{{8, 0}, {8, 45}, {9, 30}, {9, 50}, {10, 35}}
		for i := range want {
			if marks[i] != want[i] {
				t.Errorf("límite %d: esperaba %v, salió %v", i, want[i], marks[i])
			}
		}
	})

	t.Run("ultimo_bloque_sin_fin_asume_45min", func(t *testing.T) {
		marks, err := ParseBlockLabels([]string{"08:00 - 08:45", "Bloque 2 08:45"})
		if err != nil {
			t.Fatalf("no esperaba error: %v", err)
		}
		last := marks[len(marks)-1]
		if last != (Mark{9, 30}) {
			t.Errorf("esperaba cierre 09:30, salió %v", last)
		}
	})

	t.Run("etiqueta_sin_hora_falla", func(t *testing.T) {
		if _, err := ParseBlockLabels([]string{"08:00 - 08:45", "Recreo"}); err == nil {
			t.Error("esperaba error por etiqueta sin horario")
		}
	})

	t.Run("no_creciente_falla", func(t *testing.T) {
		if _, err := ParseBlockLabels([]string{"09:00 - 08:00"}); err == nil {
			t.Error("esperaba error por límites no crecientes")
		}
	})

	t.Run("vacio_falla", func(t *testing.T) {
		if _, err := ParseBlockLabels(nil); err == nil {
			t.Error("esperaba error con lista vacía")
		}
	})
}

func TestDefaultMarksInvariants(t *testing.T) {
	marks := DefaultMarks()
	if len(marks) < 2 {
		t.Fatal("la tabla por defecto necesita al menos un bloque")
	}
	if !marksAscending(marks) {
		t.Error("la tabla por defecto debe ser estrictamente creciente")
	}
}

func TestMarksJSONRoundtrip(t *testing.T) {
	marks := DefaultMarks()
	raw, err := MarksToJSON(marks)
	if err != nil {
		t.Fatalf("serializar: %v", err)
	}
	back := MarksFromJSON(raw)
	if len(back) != len(marks) {
		t.Fatalf("esperaba %d límites, salieron %d", len(marks), len(back))
	}
	for i := range marks {
		if back[i] != marks[i] {
			t.Errorf("límite %d: %v != %v", i, back[i], marks[i])
		}
	}

	t.Run("json_malformado_devuelve_nil", func(t *testing.T) {
		if got := MarksFromJSON([]byte(`{"not":"an array"}`)); got != nil {
			t.Errorf("esperaba nil, salió %v", got)
		}
	})
}
