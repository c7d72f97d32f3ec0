package httpapi

import (
	"log"
	"net/http"

	"github.com/sfvc/calendario-nodo/internal/ports/input"
)

// Services groups the use cases the API exposes.
type Services struct {
	Events  input.EventUseCase
	Estados input.EstadoUseCase
	Users   input.UserUseCase
	Auth    input.AuthUseCase
}

// NewHandler assembles the full REST surface consumed by the client tier.
func NewHandler(svcs Services, uploads *Uploads, metrics *Metrics, corsOrigins []string, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/auth/login", HandleLogin(svcs.Auth))
	mux.Handle("/auth/refresh", HandleRefresh(svcs.Auth))
	mux.Handle("/events", HandleEvents(svcs.Events, uploads))
	mux.Handle("/events.ics", HandleEventsICS(svcs.Events))
	mux.Handle("/events/", HandleEventByID(svcs.Events, uploads))
	mux.Handle("/evento-estado", HandleEstados(svcs.Estados))
	mux.Handle("/evento-estado/", HandleEstadoByID(svcs.Estados))
	mux.Handle("/users", HandleCreateUser(svcs.Users))
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploads.Dir))))
	if metrics != nil {
		mux.Handle("/metrics", metrics.Handler())
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})

	handler := BearerAuth(svcs.Auth, false, mux)
	if metrics != nil {
		handler = metrics.Instrument(handler)
	}
	return RequestLogger(CORS(corsOrigins, handler), logger)
}
