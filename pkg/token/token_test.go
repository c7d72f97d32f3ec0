package token

import (
	"testing"
	"time"
)

func TestIssueYParse(t *testing.T) {
	t.Parallel()

	m := NewManager("clave-de-prueba", time.Hour)
	signed, err := m.Issue("u-1", "ana@nodo.gob.ar", "ADMIN")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := m.Parse(signed)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "u-1" || claims.Email != "ana@nodo.gob.ar" || claims.Role != "ADMIN" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseRechazaOtraClave(t *testing.T) {
	t.Parallel()

	signed, err := NewManager("clave-a", time.Hour).Issue("u-1", "ana@nodo.gob.ar", "USER")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewManager("clave-b", time.Hour).Parse(signed); err == nil {
		t.Fatal("un token firmado con otra clave fue aceptado")
	}
}

func TestParseRechazaVencido(t *testing.T) {
	t.Parallel()

	m := NewManager("clave-de-prueba", -time.Minute)
	signed, err := m.Issue("u-1", "ana@nodo.gob.ar", "USER")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Parse(signed); err == nil {
		t.Fatal("un token vencido fue aceptado")
	}
}

func TestParseRechazaBasura(t *testing.T) {
	t.Parallel()

	if _, err := NewManager("clave", time.Hour).Parse("no.es.jwt"); err == nil {
		t.Fatal("una cadena arbitraria fue aceptada")
	}
}
