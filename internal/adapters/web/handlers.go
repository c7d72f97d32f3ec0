package web

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sfvc/calendario-nodo/internal/apiclient"
	"github.com/sfvc/calendario-nodo/internal/calendar"
	"github.com/sfvc/calendario-nodo/internal/forms"
)

const maxUploadMemory = 32 << 20

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	if r.Method == http.MethodGet {
		if sess.auth.IsAuthenticated() {
			http.Redirect(w, r, "/calendario", http.StatusSeeOther)
			return
		}
		s.render(w, sess, "login", "Iniciar sesión", nil)
		return
	}

	form := forms.LoginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if errs := form.Validate(); !errs.Valid() {
		s.flashError(sess, "login_invalid")
		s.render(w, sess, "login", "Iniciar sesión", errs)
		return
	}
	if err := sess.auth.Login(r.Context(), form.Email, form.Password); err != nil {
		s.flashError(sess, "login_invalid")
		s.render(w, sess, "login", "Iniciar sesión", nil)
		return
	}
	s.flashSuccess(sess, "login_success")
	http.Redirect(w, r, "/calendario", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	sess.auth.Logout()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// calendarioData feeds the calendar page: the month grid plus the state of
// the event form (closed, creating on a date, or editing a record).
type calendarioData struct {
	Year      int
	Month     time.Month
	MonthName string
	Weeks     [][]calendar.Day
	PrevYear  int
	PrevMonth int
	NextYear  int
	NextMonth int

	Creating     bool
	Editing      bool
	SelectedDate string
	Event        *apiclient.Event
	Estados      []apiclient.Estado
	FormErrors   forms.Errors
}

func (s *Server) handleCalendario(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	now := time.Now()
	year := atoiDefault(r.URL.Query().Get("y"), now.Year())
	month := time.Month(atoiDefault(r.URL.Query().Get("m"), int(now.Month())))
	if month < time.January || month > time.December {
		month = now.Month()
	}

	view := calendar.NewView(sess.api, calendar.Options{})
	if err := view.Load(r.Context()); s.apiFailed(w, r, sess, err, "events_load_error") {
		return
	}

	data := calendarioData{
		Year:      year,
		Month:     month,
		MonthName: monthNames[month],
		Weeks:     calendar.MonthGrid(year, month, now, view.Events()),
	}
	prev := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, -1, 0)
	next := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, 0)
	data.PrevYear, data.PrevMonth = prev.Year(), int(prev.Month())
	data.NextYear, data.NextMonth = next.Year(), int(next.Month())

	if fecha := r.URL.Query().Get("fecha"); fecha != "" {
		view.SelectDate(fecha)
	} else if id := r.URL.Query().Get("evento"); id != "" {
		view.SelectEvent(id)
	}

	switch view.Mode() {
	case calendar.ModeCreate, calendar.ModeEdit:
		estados, err := sess.api.ListEstados(r.Context())
		if s.apiFailed(w, r, sess, err, "estados_load_error") {
			return
		}
		data.Estados = estados
		data.Creating = view.Mode() == calendar.ModeCreate
		data.Editing = view.Mode() == calendar.ModeEdit
		data.SelectedDate = view.SelectedDate()
		data.Event = view.SelectedEvent()
	}

	s.render(w, sess, "calendario", "Calendario", data)
}

// eventosData feeds the list page with its filter controls.
type eventosData struct {
	Events  []calendar.DisplayEvent
	Estados []apiclient.Estado
	Query   string
	Estado  string
	Desde   string
	Hasta   string
}

func (s *Server) handleEventos(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	if r.Method == http.MethodPost {
		s.saveEvento(w, r, sess, "")
		return
	}

	records, err := sess.api.GetAllEvents(r.Context())
	if s.apiFailed(w, r, sess, err, "events_load_error") {
		return
	}
	estados, err := sess.api.ListEstados(r.Context())
	if s.apiFailed(w, r, sess, err, "estados_load_error") {
		return
	}

	q := r.URL.Query()
	data := eventosData{
		Estados: estados,
		Query:   q.Get("q"),
		Estado:  q.Get("estado"),
		Desde:   q.Get("desde"),
		Hasta:   q.Get("hasta"),
	}
	data.Events = calendar.Normalize(filterEvents(records, data.Query, data.Estado, data.Desde, data.Hasta), calendar.Options{})

	s.render(w, sess, "eventos", "Eventos", data)
}

func (s *Server) handleEventoByID(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/eventos", http.StatusSeeOther)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/eventos/")
	if id, ok := strings.CutSuffix(rest, "/eliminar"); ok {
		if err := sess.api.RemoveEvent(r.Context(), id); s.apiFailed(w, r, sess, err, "event_delete_error") {
			return
		} else if err == nil {
			s.flashSuccess(sess, "event_deleted")
		}
		http.Redirect(w, r, "/calendario", http.StatusSeeOther)
		return
	}
	s.saveEvento(w, r, sess, rest)
}

// saveEvento creates (id == "") or updates an event from the submitted form,
// then sends the user back to the calendar so the list is refetched fresh.
func (s *Server) saveEvento(w http.ResponseWriter, r *http.Request, sess *browserSession, id string) {
	form, err := eventFormFromRequest(r)
	if err != nil {
		s.flashError(sess, "event_save_error")
		http.Redirect(w, r, "/calendario", http.StatusSeeOther)
		return
	}
	if user := sess.auth.User(); user != nil && form.UserID == "" {
		form.UserID = user.ID
	}

	if errs := form.Validate(); !errs.Valid() {
		s.flashError(sess, "event_save_error")
		target := "/calendario"
		if id != "" {
			target += "?evento=" + id
		} else if form.FechaInicio != "" {
			target += "?fecha=" + form.FechaInicio
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	payload := form.Payload()
	if id == "" {
		_, err = sess.api.CreateEvent(r.Context(), &payload)
	} else {
		_, err = sess.api.UpdateEvent(r.Context(), id, &payload)
	}
	if s.apiFailed(w, r, sess, err, "event_save_error") {
		return
	}
	if err == nil {
		if id == "" {
			s.flashSuccess(sess, "event_created")
		} else {
			s.flashSuccess(sess, "event_updated")
		}
	}
	http.Redirect(w, r, "/calendario", http.StatusSeeOther)
}

func (s *Server) handleEstados(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	if r.Method == http.MethodPost {
		form := forms.EstadoForm{Nombre: r.FormValue("nombre")}
		if errs := form.Validate(); !errs.Valid() {
			s.flashError(sess, "estado_create_error")
			http.Redirect(w, r, "/estados", http.StatusSeeOther)
			return
		}
		var err error
		if rawID := r.FormValue("id"); rawID != "" {
			estadoID, convErr := strconv.Atoi(rawID)
			if convErr != nil {
				s.flashError(sess, "estado_update_error")
				http.Redirect(w, r, "/estados", http.StatusSeeOther)
				return
			}
			_, err = sess.api.UpdateEstado(r.Context(), estadoID, form.Nombre)
			if err == nil {
				s.flashSuccess(sess, "estado_updated")
			}
		} else {
			_, err = sess.api.CreateEstado(r.Context(), form.Nombre)
			if err == nil {
				s.flashSuccess(sess, "estado_created")
			}
		}
		if s.apiFailed(w, r, sess, err, "estado_create_error") {
			return
		}
		http.Redirect(w, r, "/estados", http.StatusSeeOther)
		return
	}

	estados, err := sess.api.ListEstados(r.Context())
	if s.apiFailed(w, r, sess, err, "estados_load_error") {
		return
	}
	s.render(w, sess, "estados", "Estados", estados)
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	if r.Method == http.MethodGet {
		s.render(w, sess, "user", "Nuevo usuario", nil)
		return
	}

	form := forms.UserForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Role:     r.FormValue("role"),
	}
	if errs := form.Validate(); !errs.Valid() {
		s.flashError(sess, "user_create_error")
		s.render(w, sess, "user", "Nuevo usuario", errs)
		return
	}
	if _, err := sess.api.CreateUser(r.Context(), form.Email, form.Password, form.Role); err != nil {
		if s.apiFailed(w, r, sess, err, "user_create_error") {
			return
		}
		s.render(w, sess, "user", "Nuevo usuario", nil)
		return
	}
	s.flashSuccess(sess, "user_created")
	http.Redirect(w, r, "/user", http.StatusSeeOther)
}

// eventFormFromRequest rebuilds the event form from a multipart (or urlencoded)
// submission, reading freshly attached files into memory.
func eventFormFromRequest(r *http.Request) (*forms.EventForm, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, err
	}

	form := &forms.EventForm{
		Title:            r.FormValue("title"),
		Description:      r.FormValue("description"),
		FechaInicio:      r.FormValue("fechaInicio"),
		FechaFin:         r.FormValue("fechaFin"),
		HoraInicio:       r.FormValue("horaInicio"),
		HoraFin:          r.FormValue("horaFin"),
		Color:            r.FormValue("color"),
		EstadoID:         r.FormValue("estadoId"),
		Organizacion:     r.FormValue("organizacion"),
		CantidadPersonas: r.FormValue("cantidadPersonas"),
		EspacioUtilizar:  r.FormValue("espacioUtilizar"),
		Requerimientos:   r.FormValue("requerimientos"),
		Cobertura:        r.FormValue("cobertura"),
		UserID:           r.FormValue("userId"),
		Links:            splitLines(r.FormValue("links")),
	}

	if r.MultipartForm != nil {
		form.FotosExistentes = r.MultipartForm.Value["fotosExistentes[]"]
		form.ArchivosExistentes = r.MultipartForm.Value["archivosExistentes[]"]

		var err error
		if form.NuevasFotos, err = readAttachments(r.MultipartForm.File["fotos"]); err != nil {
			return nil, err
		}
		if form.NuevosArchivos, err = readAttachments(r.MultipartForm.File["archivos"]); err != nil {
			return nil, err
		}
	}
	return form, nil
}

func readAttachments(headers []*multipart.FileHeader) ([]apiclient.Attachment, error) {
	var out []apiclient.Attachment
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, apiclient.Attachment{Filename: fh.Filename, Data: data})
	}
	return out, nil
}

// filterEvents applies the list page filters: free-text search over title and
// organización, estado by nombre, and an inclusive fecha range.
func filterEvents(records []apiclient.Event, query, estado, desde, hasta string) []apiclient.Event {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []apiclient.Event
	for _, e := range records {
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Title), query) &&
			!strings.Contains(strings.ToLower(e.Organizacion), query) {
			continue
		}
		if estado != "" && e.Estado != estado {
			continue
		}
		if desde != "" && e.FechaInicio < desde {
			continue
		}
		if hasta != "" && e.FechaInicio > hasta {
			continue
		}
		out = append(out, e)
	}
	return out
}

func splitLines(value string) []string {
	var out []string
	for _, line := range strings.Split(value, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func atoiDefault(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func fmtDate(t time.Time) string { return t.Format("2006-01-02") }

var monthNames = map[time.Month]string{
	time.January:   "Enero",
	time.February:  "Febrero",
	time.March:     "Marzo",
	time.April:     "Abril",
	time.May:       "Mayo",
	time.June:      "Junio",
	time.July:      "Julio",
	time.August:    "Agosto",
	time.September: "Septiembre",
	time.October:   "Octubre",
	time.November:  "Noviembre",
	time.December:  "Diciembre",
}
