package service

import (
	"crypto/rand"
	"fmt"
)

// Alfabeto sin caracteres ambiguos (0/O, 1/I/L) para que el código se pueda
// dictar en voz alta en la sala.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const codeLength = 6

// NewSessionCode genera un código corto de sesión. La unicidad real la da el
// unique index; el caller reintenta si choca.
func NewSessionCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session code: %w", err)
	}
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(buf), nil
}
