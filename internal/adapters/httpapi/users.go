package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/sfvc/calendario-nodo/internal/domain/entities"
	"github.com/sfvc/calendario-nodo/internal/ports/input"
)

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// HandleCreateUser serves POST /users. Only an ADMIN may create accounts.
func HandleCreateUser(svc input.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		caller := UserFromContext(r.Context())
		if caller == nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "token requerido")
			return
		}
		if !caller.IsAdmin() {
			writeError(w, http.StatusForbidden, codeForbidden, "solo un ADMIN puede crear usuarios")
			return
		}
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		user, err := svc.CreateUser(r.Context(), req.Email, req.Password, entities.Role(req.Role))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toUserResponse(user))
	}
}
