package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchNormalizesUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("asignatura"); got != "matematica" {
			t.Errorf("asignatura no viaja al upstream: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"oa_id":"OA-07","titulo":"Multiplicar por 10","minutos_sugeridos":45,"unidad":"U1"},
			{"codigo":"OA-08","nombre":"Dividir en partes iguales","duracion":90,"unidad":"U2"},
			{"titulo":"sin id, se descarta"}
		]`))
	}))
	defer srv.Close()

	cl := NewOAClient(srv.URL)
	items, err := cl.Fetch(context.Background(), "matematica", "3b", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("esperaba 2 ítems normalizados, salieron %d", len(items))
	}
	if items[0].ID != "OA-07" || items[0].Minutes != 45 {
		t.Errorf("primer ítem mal normalizado: %+v", items[0])
	}
	if items[1].ID != "OA-08" || items[1].Title != "Dividir en partes iguales" || items[1].Minutes != 90 {
		t.Errorf("campos alternativos (codigo/nombre/duracion) no se aplanaron: %+v", items[1])
	}
}

func TestFetchNonJSONIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>mantención</html>"))
	}))
	defer srv.Close()

	cl := NewOAClient(srv.URL)
	if _, err := cl.Fetch(context.Background(), "matematica", "3b", ""); err == nil {
		t.Error("upstream no-JSON debe reportar error (el caller degrada a mock)")
	}
}

func TestFetchUnreachableIsError(t *testing.T) {
	// puerto cerrado: error de red en cada intento
	cl := NewOAClient("http://127.0.0.1:1")
	if _, err := cl.Fetch(context.Background(), "matematica", "3b", ""); err == nil {
		t.Error("upstream inalcanzable debe reportar error")
	}
}

func TestMockOAsFilteredByUnit(t *testing.T) {
	items := MockOAs("U1")
	if len(items) == 0 {
		t.Fatal("el mock debe traer ítems de U1")
	}
	for _, it := range items {
		if it.Unit != "U1" {
			t.Errorf("filtro por unidad dejó pasar %+v", it)
		}
	}
	if got := MockOAs(""); len(got) != len(mockOAs) {
		t.Errorf("sin unidad el mock va completo: %d vs %d", len(got), len(mockOAs))
	}
}

func TestCacheTTLAndFlush(t *testing.T) {
	cache := NewOACache(50 * time.Millisecond)
	key := CacheKey(" Matematica ", "3B", "u1")

	if key != CacheKey("matematica", "3b", "U1") {
		t.Error("la clave de cache debe normalizar caja y espacios")
	}

	cache.Set(key, []OAItem{{ID: "OA-01", Title: "x", Unit: "U1"}})
	if _, ok := cache.Get(key); !ok {
		t.Fatal("la entrada recién escrita debe estar viva")
	}

	time.Sleep(70 * time.Millisecond)
	if _, ok := cache.Get(key); ok {
		t.Error("pasado el TTL la entrada expira")
	}

	cache.Set(key, []OAItem{{ID: "OA-01", Title: "x", Unit: "U1"}})
	if n := cache.Flush(); n != 1 {
		t.Errorf("flush debía botar 1 entrada, botó %d", n)
	}
	if _, ok := cache.Get(key); ok {
		t.Error("después del flush no queda nada")
	}
}
