package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoInyectaBearer(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	store := &MemoryTokenStore{}
	store.SetToken("tok-123")
	client := New(srv.URL, store)

	if _, err := client.GetAllEvents(context.Background()); err != nil {
		t.Fatalf("GetAllEvents: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, quería %q", gotAuth, "Bearer tok-123")
	}
}

func TestDo401PurgaTokenYDevuelveErrUnauthorized(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		status := status
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		store := &MemoryTokenStore{}
		store.SetToken("viejo")
		client := New(srv.URL, store)

		_, err := client.GetAllEvents(context.Background())
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("status %d: err = %v, quería ErrUnauthorized", status, err)
		}
		if store.Token() != "" {
			t.Errorf("status %d: el token sigue almacenado", status)
		}
		srv.Close()
	}
}

func TestDoDecodificaAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"evento no encontrado","code":"EVENTO_NOT_FOUND"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, &MemoryTokenStore{})

	_, err := client.GetEventByID(context.Background(), "nope")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, quería *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Code != "EVENTO_NOT_FOUND" {
		t.Errorf("APIError = %+v", apiErr)
	}
	if apiErr.Message != "evento no encontrado" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}
