package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sfvc/calendario-nodo/internal/domain"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeInvalidCredentials   = "invalid_credentials"
	codeUnauthorized         = "unauthorized"
	codeForbidden            = "forbidden"
	codeEventoNotFound       = "evento_not_found"
	codeEventoInvalido       = "evento_invalido"
	codeEstadoNotFound       = "estado_not_found"
	codeEstadoNombreVacio    = "estado_nombre_vacio"
	codeEmailTaken           = "email_taken"
	codeFechaFinBeforeInicio = "fecha_fin_before_inicio"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps domain sentinels onto status codes. Everything not
// recognized is an internal error.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEventoNotFound):
		writeError(w, http.StatusNotFound, codeEventoNotFound, err.Error())
	case errors.Is(err, domain.ErrEstadoNotFound):
		writeError(w, http.StatusNotFound, codeEstadoNotFound, err.Error())
	case errors.Is(err, domain.ErrEstadoNombreVacio):
		writeError(w, http.StatusBadRequest, codeEstadoNombreVacio, err.Error())
	case errors.Is(err, domain.ErrFechaFinBeforeInicio):
		writeError(w, http.StatusBadRequest, codeFechaFinBeforeInicio, err.Error())
	case errors.Is(err, domain.ErrEventoInvalido):
		writeError(w, http.StatusBadRequest, codeEventoInvalido, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, codeEmailTaken, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, codeInvalidCredentials, err.Error())
	case errors.Is(err, domain.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
