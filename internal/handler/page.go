package handler

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/aiagenz/donate/internal/domain"
	"github.com/aiagenz/donate/internal/donation"
	"github.com/aiagenz/donate/internal/service"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PageHandler renders the donation form as a page.
type PageHandler struct {
	svc       *service.DonationService
	returnURL string
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(svc *service.DonationService, returnURL string) *PageHandler {
	return &PageHandler{svc: svc, returnURL: returnURL}
}

type pageData struct {
	ID        string
	View      donation.View
	SignedIn  bool
	ReturnURL string
}

// New handles GET /donate by mounting a fresh form.
func (h *PageHandler) New(w http.ResponseWriter, r *http.Request) {
	id, _, err := h.svc.Open()
	if err != nil {
		Error(w, err)
		return
	}
	http.Redirect(w, r, "/donate/"+id, http.StatusSeeOther)
}

// Show handles GET /donate/{id}.
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := h.svc.View(id)
	if err != nil {
		if domain.HTTPStatus(err) == http.StatusNotFound {
			// expired forms start over
			http.Redirect(w, r, "/donate", http.StatusSeeOther)
			return
		}
		Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{
		ID:        id,
		View:      v,
		SignedIn:  visitorFrom(r).SignedIn(),
		ReturnURL: h.returnURL,
	}
	if err := pageTemplates.ExecuteTemplate(w, "donate.html", data); err != nil {
		log.Printf("failed to render donation form %s: %v", id, err)
	}
}
