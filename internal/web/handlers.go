package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"rolodex/internal/contacts"
	"rolodex/internal/domain"
	"rolodex/internal/routes"
	"rolodex/internal/search"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := s.root.Load(r.Context(), r.URL)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, data)
		return
	}
	s.renderPage(w, r, "index", data, pageData{Title: "Rolodex"})
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	redirect, err := s.root.Act(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, redirect.Location, redirect.Status)
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	s.showContact(w, r, "contact")
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	s.showContact(w, r, "edit")
}

func (s *Server) showContact(w http.ResponseWriter, r *http.Request, page string) {
	contact, err := s.contacts.Show(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, contact)
		return
	}
	data, err := s.root.Load(r.Context(), r.URL)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	title := "Rolodex"
	if name, ok := contact.DisplayName(); ok {
		title = name + " | Rolodex"
	}
	s.renderPage(w, r, page, data, pageData{Title: title, Contact: contact})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, badRequest{err})
		return
	}
	redirect, err := s.contacts.Update(r.Context(), r.PathValue("id"), r.PostForm)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, redirect.Location, redirect.Status)
}

func (s *Server) handleDestroy(w http.ResponseWriter, r *http.Request) {
	redirect, err := s.contacts.Destroy(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, redirect.Location, redirect.Status)
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, badRequest{err})
		return
	}
	contact, err := s.contacts.Favorite(r.Context(), r.PathValue("id"), r.PostForm)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, contact)
		return
	}
	http.Redirect(w, r, routes.ContactPath(contact.ID), http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"time": time.Now().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.fail(w, r, errNoRoute)
}

var errNoRoute = errors.New("page not found")

type badRequest struct{ err error }

func (b badRequest) Error() string { return "bad request: " + b.err.Error() }
func (b badRequest) Unwrap() error { return b.err }

// statusOf maps an error to the response status of the error boundary
func statusOf(err error) int {
	var bad badRequest
	switch {
	case errors.Is(err, contacts.ErrNotFound), errors.Is(err, errNoRoute):
		return http.StatusNotFound
	case errors.As(err, &bad):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail is the error boundary: every handler error ends up here
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	} else {
		s.logger.Debug("request rejected",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err))
	}

	message := http.StatusText(status)
	if status < http.StatusInternalServerError {
		message = err.Error()
	}
	if wantsJSON(r) {
		writeJSON(w, status, map[string]string{"error": message})
		return
	}
	s.renderError(w, status, message)
}

// renderPage renders page inside the root layout, sidebar built from data
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, page string, data routes.RootData, pd pageData) {
	pd.Sidebar = routes.BuildSidebar(data, r.URL.Path, search.IdleNavigation())
	body, err := s.pages.render(page, pd)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	body, err := s.pages.render(errorPage, pageData{
		Title:  http.StatusText(status),
		Status: status,
		Error:  message,
	})
	if err != nil {
		s.logger.Error("failed to render error page", zap.Error(err))
		http.Error(w, message, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// pageData is the template context of every page
type pageData struct {
	Title   string
	Sidebar routes.Sidebar
	Contact domain.Contact
	Status  int
	Error   string
}
