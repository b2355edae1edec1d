package handler

import (
	"net/http"

	"github.com/aiagenz/donate/internal/contextkeys"
	"github.com/aiagenz/donate/internal/domain"
	"github.com/aiagenz/donate/internal/donation"
	"github.com/aiagenz/donate/internal/service"
	"github.com/go-chi/chi/v5"
)

// DonationHandler handles donation form endpoints.
type DonationHandler struct {
	svc       *service.DonationService
	returnURL string
}

// NewDonationHandler creates a new DonationHandler. Donors leaving a finished
// form are sent to returnURL.
func NewDonationHandler(svc *service.DonationService, returnURL string) *DonationHandler {
	return &DonationHandler{svc: svc, returnURL: returnURL}
}

type formResponse struct {
	ID string `json:"id"`
	donation.View
	ContinueURL string `json:"continueUrl,omitempty"`
}

func (h *DonationHandler) respond(w http.ResponseWriter, status int, id string, v donation.View) {
	resp := formResponse{ID: id, View: v}
	if v.Outcome.Terminal() {
		resp.ContinueURL = "/api/donate/forms/" + id + "/continue"
	}
	JSON(w, status, resp)
}

// visitorFrom reads the donor set by OptionalAuth. Anonymous donors get the
// zero Visitor.
func visitorFrom(r *http.Request) service.Visitor {
	userID, _ := r.Context().Value(contextkeys.UserID).(string)
	email, _ := r.Context().Value(contextkeys.UserEmail).(string)
	return service.Visitor{UserID: userID, Email: email}
}

// Open handles POST /api/donate/forms.
func (h *DonationHandler) Open(w http.ResponseWriter, r *http.Request) {
	id, v, err := h.svc.Open()
	if err != nil {
		Error(w, err)
		return
	}
	h.respond(w, http.StatusCreated, id, v)
}

// Get handles GET /api/donate/forms/{id}.
func (h *DonationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := h.svc.View(id)
	if err != nil {
		Error(w, err)
		return
	}
	h.respond(w, http.StatusOK, id, v)
}

// Delete handles DELETE /api/donate/forms/{id}.
func (h *DonationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Close(chi.URLParam(r, "id")); err != nil {
		Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectDuration handles POST /api/donate/forms/{id}/duration.
func (h *DonationHandler) SelectDuration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.SelectDurationRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	v, err := h.svc.SelectDuration(id, &req)
	if err != nil {
		Error(w, err)
		return
	}
	h.respond(w, http.StatusOK, id, v)
}

// SelectAmount handles POST /api/donate/forms/{id}/amount.
func (h *DonationHandler) SelectAmount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.SelectAmountRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	v, err := h.svc.SelectAmount(id, &req)
	if err != nil {
		Error(w, err)
		return
	}
	h.respond(w, http.StatusOK, id, v)
}

// Processing handles POST /api/donate/forms/{id}/processing.
func (h *DonationHandler) Processing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.ProcessingRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	v, err := h.svc.SetProcessing(id, &req)
	if err != nil {
		Error(w, err)
		return
	}
	h.respond(w, http.StatusOK, id, v)
}

// Outcome handles POST /api/donate/forms/{id}/outcome.
func (h *DonationHandler) Outcome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.OutcomeRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	v, err := h.svc.ReportOutcome(id, &req)
	if err != nil {
		Error(w, err)
		return
	}
	h.respond(w, http.StatusOK, id, v)
}

// Card handles POST /api/donate/forms/{id}/card.
func (h *DonationHandler) Card(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.CardDonationRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	v, err := h.svc.DonateWithCard(r.Context(), id, visitorFrom(r), &req)
	if err != nil {
		Error(w, err)
		return
	}
	h.respond(w, http.StatusOK, id, v)
}

// PayPal handles POST /api/donate/forms/{id}/paypal.
func (h *DonationHandler) PayPal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.PayPalDonationRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	v, err := h.svc.DonateWithPayPal(r.Context(), id, visitorFrom(r), &req)
	if err != nil {
		Error(w, err)
		return
	}
	h.respond(w, http.StatusOK, id, v)
}

// Reset handles POST /api/donate/forms/{id}/reset.
func (h *DonationHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := h.svc.Reset(id)
	if err != nil {
		Error(w, err)
		return
	}
	h.respond(w, http.StatusOK, id, v)
}

// Continue handles GET /api/donate/forms/{id}/continue. The form is
// unmounted and the donor is sent back to the learning platform.
func (h *DonationHandler) Continue(w http.ResponseWriter, r *http.Request) {
	// an already swept form still gets the redirect
	_ = h.svc.Close(chi.URLParam(r, "id"))
	http.Redirect(w, r, h.returnURL, http.StatusSeeOther)
}

// ListMine handles GET /api/donations.
func (h *DonationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextkeys.UserID).(string)
	if !ok || userID == "" {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	donations, err := h.svc.ListDonations(r.Context(), userID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"donations": donations,
	})
}
