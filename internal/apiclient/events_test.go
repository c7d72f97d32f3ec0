package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type recordedRequest struct {
	method      string
	path        string
	contentType string
	body        []byte
}

func recordingServer(t *testing.T, status int, response string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("leyendo body: %v", err)
		}
		requests = append(requests, recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        body,
		})
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestCreateEventUnSoloPOSTJSON(t *testing.T) {
	t.Parallel()

	srv, requests := recordingServer(t, http.StatusCreated, `{"id":"nuevo","title":"Charla"}`)
	client := New(srv.URL, &MemoryTokenStore{})

	payload := &EventPayload{Title: "Charla", FechaInicio: "2026-05-02", FechaFin: "2026-05-02", EstadoID: 1}
	created, err := client.CreateEvent(context.Background(), payload)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if created.ID != "nuevo" {
		t.Errorf("ID = %q", created.ID)
	}

	if len(*requests) != 1 {
		t.Fatalf("se emitieron %d requests, quería exactamente 1", len(*requests))
	}
	req := (*requests)[0]
	if req.method != http.MethodPost || req.path != "/events" {
		t.Errorf("request = %s %s, quería POST /events", req.method, req.path)
	}
	if req.contentType != "application/json" {
		t.Errorf("Content-Type = %q", req.contentType)
	}
	var sent map[string]any
	if err := json.Unmarshal(req.body, &sent); err != nil {
		t.Fatalf("body no es JSON: %v", err)
	}
	if sent["title"] != "Charla" {
		t.Errorf("title enviado = %v", sent["title"])
	}
}

func TestSubmitEventMultipartConAdjuntos(t *testing.T) {
	t.Parallel()

	srv, requests := recordingServer(t, http.StatusOK, `{"id":"7"}`)
	client := New(srv.URL, &MemoryTokenStore{})

	payload := &EventPayload{
		Title:       "Feria",
		FechaInicio: "2026-05-02",
		FechaFin:    "2026-05-02",
		EstadoID:    1,
		Fotos:       []string{"/uploads/vieja.jpg"},
		Links:       []string{"https://nodo.example"},
		NuevasFotos: []Attachment{{Filename: "nueva.jpg", Data: []byte("jpegdata")}},
	}
	if _, err := client.UpdateEvent(context.Background(), "7", payload); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}

	if len(*requests) != 1 {
		t.Fatalf("se emitieron %d requests, quería 1", len(*requests))
	}
	req := (*requests)[0]
	if req.method != http.MethodPatch || req.path != "/events/7" {
		t.Errorf("request = %s %s, quería PATCH /events/7", req.method, req.path)
	}
	if !strings.HasPrefix(req.contentType, "multipart/form-data") {
		t.Fatalf("Content-Type = %q, quería multipart", req.contentType)
	}

	body := string(req.body)
	for _, fragment := range []string{
		`name="title"`,
		`name="fotosExistentes[]"`,
		"/uploads/vieja.jpg",
		`name="links[]"`,
		`name="fotos"; filename="nueva.jpg"`,
		"jpegdata",
	} {
		if !strings.Contains(body, fragment) {
			t.Errorf("el cuerpo multipart no contiene %q", fragment)
		}
	}
}

func TestRemoveEventUnSoloDELETE(t *testing.T) {
	t.Parallel()

	srv, requests := recordingServer(t, http.StatusNoContent, "")
	client := New(srv.URL, &MemoryTokenStore{})

	if err := client.RemoveEvent(context.Background(), "42"); err != nil {
		t.Fatalf("RemoveEvent: %v", err)
	}

	if len(*requests) != 1 {
		t.Fatalf("se emitieron %d requests, quería exactamente 1", len(*requests))
	}
	req := (*requests)[0]
	if req.method != http.MethodDelete || req.path != "/events/42" {
		t.Errorf("request = %s %s, quería DELETE /events/42", req.method, req.path)
	}
}
