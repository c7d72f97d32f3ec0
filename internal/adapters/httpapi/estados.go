package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sfvc/calendario-nodo/internal/ports/input"
)

type estadoRequest struct {
	Nombre string `json:"nombre"`
}

// HandleEstados serves GET (list) and POST (create) on /evento-estado.
func HandleEstados(svc input.EstadoUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			estados, err := svc.ListEstados(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			out := make([]estadoResponse, 0, len(estados))
			for _, estado := range estados {
				out = append(out, estadoResponse{ID: estado.ID, Nombre: estado.Nombre})
			}
			writeJSON(w, http.StatusOK, out)

		case http.MethodPost:
			if UserFromContext(r.Context()) == nil {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "token requerido")
				return
			}
			var req estadoRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			estado, err := svc.CreateEstado(r.Context(), req.Nombre)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, estadoResponse{ID: estado.ID, Nombre: estado.Nombre})

		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleEstadoByID serves GET and PUT on /evento-estado/{id}.
func HandleEstadoByID(svc input.EstadoUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := atoiOrZero(strings.TrimPrefix(r.URL.Path, "/evento-estado/"))
		if id <= 0 {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			estado, err := svc.GetEstadoByID(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, estadoResponse{ID: estado.ID, Nombre: estado.Nombre})

		case http.MethodPut:
			if UserFromContext(r.Context()) == nil {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "token requerido")
				return
			}
			var req estadoRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			estado, err := svc.UpdateEstado(r.Context(), id, req.Nombre)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, estadoResponse{ID: estado.ID, Nombre: estado.Nombre})

		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}
