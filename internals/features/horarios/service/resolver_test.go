package service

import (
	"testing"
	"time"
)

func testMarks() []Mark {
	// 3 bloques: [08:00,08:45) [08:45,09:30) [09:30,10:15)
	return []Mark{{8, 0}, {8, 45}, {9, 30}, {10, 15}}
}

func TestResolveBlockRow(t *testing.T) {
	marks := testMarks()

	t.Run("dentro_de_cada_bloque", func(t *testing.T) {
		cases := []struct {
			minute int
			want   int
		}{
			{8*60 + 0, 0},   // borde inicial incluido
			{8*60 + 44, 0},  // último minuto del bloque 0
			{8*60 + 45, 1},  // borde = inicio del siguiente
			{9*60 + 0, 1},
			{9*60 + 30, 2},
			{10*60 + 14, 2}, // último minuto del bloque final
		}
		for _, tc := range cases {
			if got := ResolveBlockRow(marks, tc.minute); got != tc.want {
				t.Errorf("minuto %d: esperaba fila %d, salió %d", tc.minute, tc.want, got)
			}
		}
	})

	t.Run("fuera_de_jornada_cae_a_cero", func(t *testing.T) {
		if got := ResolveBlockRow(marks, 7*60); got != 0 {
			t.Errorf("antes del primer bloque: esperaba 0, salió %d", got)
		}
		if got := ResolveBlockRow(marks, 10*60+15); got != 0 {
			t.Errorf("después del último límite: esperaba 0, salió %d", got)
		}
		if got := ResolveBlockRow(marks, 23*60); got != 0 {
			t.Errorf("de noche: esperaba 0, salió %d", got)
		}
	})

	t.Run("marks_malformado_cae_a_cero", func(t *testing.T) {
		if got := ResolveBlockRow(nil, 9*60); got != 0 {
			t.Errorf("marks nil: esperaba 0, salió %d", got)
		}
		if got := ResolveBlockRow([]Mark{{8, 0}}, 9*60); got != 0 {
			t.Errorf("un solo límite: esperaba 0, salió %d", got)
		}
		desordenado := []Mark{{9, 0}, {8, 0}, {10, 0}}
		if got := ResolveBlockRow(desordenado, 9*60+30); got != 0 {
			t.Errorf("no creciente: esperaba 0, salió %d", got)
		}
	})
}

func TestResolveDayColumn(t *testing.T) {
	cases := []struct {
		day  time.Weekday
		want int
	}{
		{time.Monday, 0},
		{time.Tuesday, 1},
		{time.Wednesday, 2},
		{time.Thursday, 3},
		{time.Friday, 4},
		{time.Saturday, 0},
		{time.Sunday, 0},
	}
	for _, tc := range cases {
		if got := ResolveDayColumn(tc.day); got != tc.want {
			t.Errorf("%v: esperaba columna %d, salió %d", tc.day, tc.want, got)
		}
	}
}

func TestResolveSlot(t *testing.T) {
	marks := testMarks()
	// martes 09:00 → fila 1, columna 1
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if at.Weekday() != time.Tuesday {
		t.Fatalf("fixture mal armado: %v no es martes", at)
	}
	row, col := ResolveSlot(marks, at)
	if row != 1 || col != 1 {
		t.Errorf("esperaba (1,1), salió (%d,%d)", row, col)
	}
}

func TestInAnyBlock(t *testing.T) {
	marks := testMarks()
	if !InAnyBlock(marks, 9*60) {
		t.Error("09:00 debería estar dentro de la jornada")
	}
	if InAnyBlock(marks, 7*60) {
		t.Error("07:00 no debería estar dentro de la jornada")
	}
	if InAnyBlock(nil, 9*60) {
		t.Error("marks nil nunca está dentro de un bloque")
	}
}
