package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

/*
	========================================================
	  Cliente del API de currículum (OA)
========================================================
*/

const (
	oaTimeout    = 10 * time.Second
	oaMaxRetries = 2
	oaBackoff    = 250 * time.Millisecond
)

// OAItem: objetivo de aprendizaje normalizado para el front.
type OAItem struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Minutes int    `json:"minutes"`
	Unit    string `json:"unit"`
}

type OAClient struct {
	baseURL string
	http    *http.Client
}

func NewOAClient(baseURL string) *OAClient {
	return &OAClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: oaTimeout},
	}
}

// upstream entrega campos con otros nombres; acá los aplanamos
type upstreamOA struct {
	ID       string `json:"oa_id"`
	Codigo   string `json:"codigo"`
	Titulo   string `json:"titulo"`
	Nombre   string `json:"nombre"`
	Minutos  int    `json:"minutos_sugeridos"`
	Duracion int    `json:"duracion"`
	Unidad   string `json:"unidad"`
}

// Fetch consulta el upstream y normaliza. Respuesta que no sea JSON válido
// cuenta como error (el caller decide si degrada al mock).
func (cl *OAClient) Fetch(ctx context.Context, subject, level, unit string) ([]OAItem, error) {
	q := url.Values{}
	q.Set("asignatura", subject)
	q.Set("nivel", level)
	if unit != "" {
		q.Set("unidad", unit)
	}

	body, err := cl.get(ctx, "/oa?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var raw []upstreamOA
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("oa upstream: respuesta no-JSON: %w", err)
	}

	items := make([]OAItem, 0, len(raw))
	for _, r := range raw {
		item := OAItem{
			ID:      firstNonEmpty(r.ID, r.Codigo),
			Title:   firstNonEmpty(r.Titulo, r.Nombre),
			Minutes: r.Minutos,
			Unit:    r.Unidad,
		}
		if item.Minutes == 0 {
			item.Minutes = r.Duracion
		}
		if item.ID == "" || item.Title == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (cl *OAClient) get(ctx context.Context, path string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= oaMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * oaBackoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cl.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := cl.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("oa upstream: status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("oa upstream: status %d", resp.StatusCode)
		}
		return body, nil
	}
	return nil, fmt.Errorf("oa upstream: agotados los reintentos: %w", lastErr)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

/* ===================== Mock ===================== */

// mockOAs: dataset fijo para cuando el upstream no responde. La política de
// la app es degradar a mock, nunca romper la planificación del profe.
var mockOAs = []OAItem{
	{ID: "OA-01", Title: "Leer y comprender textos breves", Minutes: 45, Unit: "U1"},
	{ID: "OA-02", Title: "Resolver problemas de adición y sustracción", Minutes: 45, Unit: "U1"},
	{ID: "OA-03", Title: "Describir ciclos de la naturaleza", Minutes: 90, Unit: "U2"},
	{ID: "OA-04", Title: "Representar fracciones en la recta numérica", Minutes: 45, Unit: "U2"},
	{ID: "OA-05", Title: "Comunicar resultados de una investigación simple", Minutes: 90, Unit: "U3"},
}

// MockOAs entrega el mock, filtrado por unidad cuando viene una.
func MockOAs(unit string) []OAItem {
	if unit == "" {
		out := make([]OAItem, len(mockOAs))
		copy(out, mockOAs)
		return out
	}
	out := make([]OAItem, 0, len(mockOAs))
	for _, item := range mockOAs {
		if strings.EqualFold(item.Unit, unit) {
			out = append(out, item)
		}
	}
	return out
}
