package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

/*
	========================================================
	  Cliente Flow (pasarela de pago)
========================================================
*/

const (
	flowTimeout    = 15 * time.Second
	flowMaxRetries = 2
	flowBackoff    = 300 * time.Millisecond
)

// Estados de pago según Flow: 1 pendiente, 2 pagada, 3 rechazada, 4 anulada.
const (
	FlowStatusPending  = 1
	FlowStatusPaid     = 2
	FlowStatusRejected = 3
	FlowStatusAnnulled = 4
)

type FlowClient struct {
	apiKey  string
	secret  string
	baseURL string
	http    *http.Client
}

var Flow *FlowClient

// InitFlow debe llamarse en el bootstrap de la app.
func InitFlow(apiKey, secret, baseURL string) {
	Flow = &FlowClient{
		apiKey:  apiKey,
		secret:  secret,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: flowTimeout},
	}
}

type FlowCreateResponse struct {
	URL       string `json:"url"`
	Token     string `json:"token"`
	FlowOrder int64  `json:"flowOrder"`
}

func (r FlowCreateResponse) PayURL() string {
	return r.URL + "?token=" + r.Token
}

type FlowStatusResponse struct {
	FlowOrder     int64  `json:"flowOrder"`
	CommerceOrder string `json:"commerceOrder"`
	Status        int    `json:"status"`
	Amount        string `json:"amount"`
	Payer         string `json:"payer"`
	Raw           []byte `json:"-"`
}

func (r FlowStatusResponse) IsPaid() bool { return r.Status == FlowStatusPaid }

/* ===================== Firma ===================== */

// Sign firma el set de parámetros como exige Flow: concatenación k=v&k=v con
// las claves ordenadas, sobre los VALORES CRUDOS (sin URL-encoding) y sin
// incluir "s"; HMAC-SHA256 con el secret, en hex minúscula.
func (fc *FlowClient) Sign(params map[string]string) string {
	return signParams(fc.secret, params)
}

func signParams(secret string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "s" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(b.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

/* ===================== Operaciones ===================== */

// CreatePayment registra una orden en Flow y devuelve token + URL de pago.
func (fc *FlowClient) CreatePayment(ctx context.Context, commerceOrder, subject, email string, amount int64, urlConfirmation, urlReturn string) (*FlowCreateResponse, error) {
	params := map[string]string{
		"apiKey":          fc.apiKey,
		"commerceOrder":   commerceOrder,
		"subject":         subject,
		"currency":        "CLP",
		"amount":          fmt.Sprintf("%d", amount),
		"email":           email,
		"urlConfirmation": urlConfirmation,
		"urlReturn":       urlReturn,
	}

	body, err := fc.post(ctx, "/payment/create", params)
	if err != nil {
		return nil, err
	}

	var out FlowCreateResponse
	if err := sonic.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("flow create: respuesta ilegible: %w", err)
	}
	if out.Token == "" {
		return nil, fmt.Errorf("flow create: respuesta sin token: %s", string(body))
	}
	return &out, nil
}

// GetStatus consulta el estado de un pago por su token.
func (fc *FlowClient) GetStatus(ctx context.Context, token string) (*FlowStatusResponse, error) {
	params := map[string]string{
		"apiKey": fc.apiKey,
		"token":  token,
	}
	params["s"] = fc.Sign(params)

	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}

	body, err := fc.do(ctx, http.MethodGet, "/payment/getStatus?"+q.Encode(), "")
	if err != nil {
		return nil, err
	}

	var out FlowStatusResponse
	if err := sonic.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("flow status: respuesta ilegible: %w", err)
	}
	out.Raw = body
	return &out, nil
}

/* ===================== HTTP ===================== */

func (fc *FlowClient) post(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	params["s"] = fc.Sign(params)

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	return fc.do(ctx, http.MethodPost, path, form.Encode())
}

// do ejecuta con timeout fijo y reintenta pocas veces (backoff lineal) ante
// 5xx / 429 / error de red. 4xx no se reintenta: el request está malo.
func (fc *FlowClient) do(ctx context.Context, method, path, form string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= flowMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * flowBackoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, fc.baseURL+path, strings.NewReader(form))
		if err != nil {
			return nil, err
		}
		if form != "" {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		req.Header.Set("X-Request-ID", uuid.NewString())

		resp, err := fc.http.Do(req)
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
			lastErr = fmt.Errorf("flow %s: status %d: %s", path, resp.StatusCode, string(body))
			continue
		}
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("flow %s: status %d: %s", path, resp.StatusCode, string(body))
		}
		return body, nil
	}
	return nil, fmt.Errorf("flow %s: agotados los reintentos: %w", path, lastErr)
}
