package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sfvc/calendario-nodo/internal/apiclient"
	"github.com/sfvc/calendario-nodo/internal/session"
)

const (
	sessionCookie = "calendario_sid"
	sessionMaxAge = 24 * time.Hour
)

// Flash is a one-shot toast shown on the next rendered page.
type Flash struct {
	Kind    string // "success" | "error"
	Message string
}

// browserSession is the server-side state of one browser: its own API client
// with its own token slot, the auth store on top, the lock state and the
// pending toasts.
type browserSession struct {
	id       string
	api      *apiclient.Client
	auth     *session.Store
	unlocked bool
	flashes  []Flash
	lastSeen time.Time

	mu sync.Mutex
}

func (s *browserSession) addFlash(kind, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes = append(s.flashes, Flash{Kind: kind, Message: message})
}

func (s *browserSession) popFlashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.flashes
	s.flashes = nil
	return out
}

// sessionManager hands out browser sessions keyed by cookie.
type sessionManager struct {
	apiBaseURL string
	httpClient *http.Client

	mu       sync.Mutex
	sessions map[string]*browserSession
}

func newSessionManager(apiBaseURL string) *sessionManager {
	return &sessionManager{
		apiBaseURL: apiBaseURL,
		sessions:   make(map[string]*browserSession),
	}
}

// withHTTPClient routes the per-session API clients through hc (tests).
func (m *sessionManager) withHTTPClient(hc *http.Client) *sessionManager {
	m.httpClient = hc
	return m
}

// get returns the session for the request cookie, creating one (and setting
// the cookie) when there is none.
func (m *sessionManager) get(w http.ResponseWriter, r *http.Request) *browserSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		if time.Since(s.lastSeen) > sessionMaxAge {
			delete(m.sessions, id)
		}
	}

	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if s, ok := m.sessions[cookie.Value]; ok {
			s.lastSeen = time.Now()
			return s
		}
	}

	id := uuid.NewString()
	tokens := &apiclient.MemoryTokenStore{}
	api := apiclient.New(m.apiBaseURL, tokens)
	if m.httpClient != nil {
		api = api.WithHTTPClient(m.httpClient)
	}
	s := &browserSession{
		id:       id,
		api:      api,
		auth:     session.New(api, tokens),
		lastSeen: time.Now(),
	}
	m.sessions[id] = s

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}
