package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sfvc/calendario-nodo/internal/ports/input"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// HandleLogin serves POST /auth/login.
func HandleLogin(svc input.AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		user, signed, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, authResponse{Token: signed, User: toUserResponse(user)})
	}
}

// HandleRefresh serves GET /auth/refresh. The still-valid bearer token is
// exchanged for a fresh one along with the current user record.
func HandleRefresh(svc input.AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if tokenString == "" || tokenString == r.Header.Get("Authorization") {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "token requerido")
			return
		}
		user, signed, err := svc.Refresh(r.Context(), tokenString)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, authResponse{Token: signed, User: toUserResponse(user)})
	}
}
