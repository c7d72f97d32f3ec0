package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sfvc/calendario-nodo/internal/domain/entities"
	"github.com/sfvc/calendario-nodo/internal/ports/input"
)

const maxMultipartMemory = 32 << 20 // 32 MiB

// HandleEvents serves GET (list) and POST (create) on /events.
func HandleEvents(svc input.EventUseCase, uploads *Uploads) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			events, err := svc.ListEvents(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			out := make([]eventResponse, 0, len(events))
			for i := range events {
				out = append(out, toEventResponse(&events[i]))
			}
			writeJSON(w, http.StatusOK, out)

		case http.MethodPost:
			user := UserFromContext(r.Context())
			if user == nil {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "token requerido")
				return
			}
			event, err := decodeEventRequest(r, uploads)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
				return
			}
			if err := svc.CreateEvent(r.Context(), user, event); err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toEventResponse(event))

		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleEventByID serves GET, PATCH and DELETE on /events/{id}.
func HandleEventByID(svc input.EventUseCase, uploads *Uploads) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/events/")
		if id == "" || strings.Contains(id, "/") {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			event, err := svc.GetEventByID(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toEventResponse(event))

		case http.MethodPatch:
			user := UserFromContext(r.Context())
			if user == nil {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "token requerido")
				return
			}
			event, err := decodeEventRequest(r, uploads)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
				return
			}
			event.ID = id
			if err := svc.UpdateEvent(r.Context(), user, event); err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toEventResponse(event))

		case http.MethodDelete:
			user := UserFromContext(r.Context())
			if user == nil {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "token requerido")
				return
			}
			if err := svc.DeleteEvent(r.Context(), user, id); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)

		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// decodeEventRequest accepts either a JSON body or a multipart form. The
// multipart variant carries scalar fields as form values, freshly uploaded
// binaries under repeated "fotos"/"archivos" keys and already persisted URLs
// under "fotosExistentes[]"/"archivosExistentes[]"/"links[]".
func decodeEventRequest(r *http.Request, uploads *Uploads) (*entities.Event, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return decodeMultipartEvent(r, uploads)
	}

	var req eventRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	return req.toEntity()
}

func decodeMultipartEvent(r *http.Request, uploads *Uploads) (*entities.Event, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, err
	}
	form := r.MultipartForm

	req := eventRequest{
		Title:            r.FormValue("title"),
		Description:      r.FormValue("description"),
		FechaInicio:      r.FormValue("fechaInicio"),
		FechaFin:         r.FormValue("fechaFin"),
		HoraInicio:       r.FormValue("horaInicio"),
		HoraFin:          r.FormValue("horaFin"),
		AllDay:           r.FormValue("allDay") == "true",
		Color:            r.FormValue("color"),
		EstadoID:         atoiOrZero(r.FormValue("estadoId")),
		Organizacion:     r.FormValue("organizacion"),
		CantidadPersonas: atoiOrZero(r.FormValue("cantidadPersonas")),
		EspacioUtilizar:  r.FormValue("espacioUtilizar"),
		Requerimientos:   r.FormValue("requerimientos"),
		Cobertura:        r.FormValue("cobertura"),
		Fotos:            form.Value["fotosExistentes[]"],
		Archivos:         form.Value["archivosExistentes[]"],
		Links:            form.Value["links[]"],
	}

	for _, fh := range form.File["fotos"] {
		url, err := uploads.Save(fh)
		if err != nil {
			return nil, err
		}
		req.Fotos = append(req.Fotos, url)
	}
	for _, fh := range form.File["archivos"] {
		url, err := uploads.Save(fh)
		if err != nil {
			return nil, err
		}
		req.Archivos = append(req.Archivos, url)
	}

	return req.toEntity()
}
