package service

import "testing"

func TestSignParamsCanonicalOrder(t *testing.T) {
	// la firma se construye sobre k=v&k=v con claves ordenadas y valores
	// crudos; el orden de inserción del map no puede afectar el resultado
	secret := "secreto-de-prueba"

	a := signParams(secret, map[string]string{
		"apiKey": "AK", "amount": "4990", "subject": "Plan PRO x1 meses",
	})
	b := signParams(secret, map[string]string{
		"subject": "Plan PRO x1 meses", "apiKey": "AK", "amount": "4990",
	})
	if a != b {
		t.Error("la firma debe ser independiente del orden de los parámetros")
	}
	if len(a) != 64 {
		t.Errorf("HMAC-SHA256 en hex debe medir 64, salió %d", len(a))
	}
	for _, r := range a {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("la firma debe ser hex minúscula, salió %q", a)
		}
	}
}

func TestSignParamsExcludesS(t *testing.T) {
	secret := "secreto-de-prueba"
	base := signParams(secret, map[string]string{"apiKey": "AK", "token": "T1"})
	withS := signParams(secret, map[string]string{"apiKey": "AK", "token": "T1", "s": "basura"})
	if base != withS {
		t.Error("el parámetro s no entra en la cadena canónica")
	}
}

func TestSignParamsRawValues(t *testing.T) {
	secret := "secreto-de-prueba"
	// valores con espacios y & van crudos, sin URL-encoding
	a := signParams(secret, map[string]string{"subject": "PRO x12 & bono"})
	b := signParams(secret, map[string]string{"subject": "PRO+x12+%26+bono"})
	if a == b {
		t.Error("los valores se firman crudos; el encoding cambia la firma")
	}
}

func TestSignParamsSecretMatters(t *testing.T) {
	params := map[string]string{"apiKey": "AK", "token": "T1"}
	if signParams("uno", params) == signParams("dos", params) {
		t.Error("secrets distintos deben dar firmas distintas")
	}
}
