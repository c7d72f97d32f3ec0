package web

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/sfvc/calendario-nodo/internal/apiclient"
	"github.com/sfvc/calendario-nodo/internal/config"
	"github.com/sfvc/calendario-nodo/internal/infrastructure/i18n"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server renders the calendar application server-side: every page is a plain
// HTML response and every mutation is a form POST relayed to the backend API
// through the per-session client.
type Server struct {
	sessions     *sessionManager
	tr           *i18n.Translator
	locale       string
	lockPassword string
	apiBaseURL   string
	templates    map[string]*template.Template
}

func NewServer(cfg *config.Config, tr *i18n.Translator) *Server {
	return &Server{
		sessions:     newSessionManager(cfg.APIBaseURL),
		tr:           tr,
		locale:       cfg.Locale,
		lockPassword: cfg.LockPassword,
		apiBaseURL:   cfg.APIBaseURL,
		templates:    parseTemplates(),
	}
}

// WithHTTPClient routes all backend calls through hc (tests).
func (s *Server) WithHTTPClient(hc *http.Client) *Server {
	s.sessions.withHTTPClient(hc)
	return s
}

func parseTemplates() map[string]*template.Template {
	pages := []string{"login", "lock", "calendario", "eventos", "estados", "user", "notfound"}
	funcs := template.FuncMap{
		"fmtDate": fmtDate,
	}
	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		out[page] = template.Must(template.New("layout.html").Funcs(funcs).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+page+".html"))
	}
	return out
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/desbloquear", s.handleUnlock)
	mux.HandleFunc("/calendario", s.requireAuth(s.handleCalendario))
	mux.HandleFunc("/eventos", s.requireAuth(s.handleEventos))
	mux.HandleFunc("/eventos/", s.requireAuth(s.handleEventoByID))
	mux.HandleFunc("/estados", s.requireAuth(s.handleEstados))
	mux.HandleFunc("/user", s.requireAuth(s.handleUser))

	return s.withLock(mux)
}

// pageData is what every template receives.
type pageData struct {
	Title   string
	User    *apiclient.User
	IsAdmin bool
	Flashes []Flash
	Data    any
}

func (s *Server) render(w http.ResponseWriter, sess *browserSession, page, title string, data any) {
	tmpl, ok := s.templates[page]
	if !ok {
		http.Error(w, "plantilla desconocida", http.StatusInternalServerError)
		return
	}
	pd := pageData{
		Title:   title,
		User:    sess.auth.User(),
		IsAdmin: sess.auth.IsAdmin(),
		Flashes: sess.popFlashes(),
		Data:    data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.html", pd); err != nil {
		log.Printf("❌ Error renderizando %s: %v", page, err)
	}
}

func (s *Server) t(key string) string {
	return s.tr.T(s.locale, key, nil)
}

// flashError translates key and queues it as an error toast.
func (s *Server) flashError(sess *browserSession, key string) {
	sess.addFlash("error", s.t(key))
}

func (s *Server) flashSuccess(sess *browserSession, key string) {
	sess.addFlash("success", s.t(key))
}

// withLock gates the whole app behind the lock screen when a lock password is
// configured. Unlocking is per browser session.
func (s *Server) withLock(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.lockPassword == "" {
			next.ServeHTTP(w, r)
			return
		}
		sess := s.sessions.get(w, r)
		if sess.unlocked || r.URL.Path == "/desbloquear" {
			next.ServeHTTP(w, r)
			return
		}
		s.render(w, sess, "lock", "Bloqueado", nil)
	})
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	sess := s.sessions.get(w, r)
	if s.lockPassword != "" && r.FormValue("password") == s.lockPassword {
		sess.unlocked = true
		http.Redirect(w, r, "/calendario", http.StatusSeeOther)
		return
	}
	s.flashError(sess, "lock_wrong_password")
	s.render(w, sess, "lock", "Bloqueado", nil)
}

// requireAuth revalidates the stored token on page entry and bounces
// anonymous visitors to /login.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessions.get(w, r)
		sess.auth.CheckToken(r.Context())
		if !sess.auth.IsAuthenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// apiFailed handles an error coming back from the backend: an expired session
// sends the user to /login, anything else queues errKey as a toast. It
// reports whether the response was already written.
func (s *Server) apiFailed(w http.ResponseWriter, r *http.Request, sess *browserSession, err error, errKey string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, apiclient.ErrUnauthorized) {
		sess.auth.Logout()
		s.flashError(sess, "session_expired")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return true
	}
	log.Printf("❌ Error del API: %v", err)
	s.flashError(sess, errKey)
	return false
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		sess := s.sessions.get(w, r)
		w.WriteHeader(http.StatusNotFound)
		s.render(w, sess, "notfound", "No encontrado", nil)
		return
	}
	http.Redirect(w, r, "/calendario", http.StatusSeeOther)
}
