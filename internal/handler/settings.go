package handler

import (
	"net/http"

	"github.com/aiagenz/donate/internal/donation"
)

// SettingsHandler exposes the donation catalog.
type SettingsHandler struct {
	catalog *donation.Catalog
	initial donation.Selection
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(catalog *donation.Catalog, initial donation.Selection) *SettingsHandler {
	return &SettingsHandler{catalog: catalog, initial: initial}
}

type amountSetting struct {
	Amount int64  `json:"amount"`
	Label  string `json:"label"`
	Impact string `json:"impact"`
}

type durationSetting struct {
	Duration donation.Duration `json:"duration"`
	Title    string            `json:"title"`
	Default  *int64            `json:"default,omitempty"`
	Amounts  []amountSetting   `json:"amounts"`
}

type settingsResponse struct {
	Durations []durationSetting  `json:"durations"`
	Initial   donation.Selection `json:"initial"`
}

// Get handles GET /api/donate/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := settingsResponse{Initial: h.initial}
	for _, d := range h.catalog.Durations() {
		ds := durationSetting{Duration: d, Title: d.Title()}
		if amount, ok := h.catalog.Default(d); ok {
			ds.Default = &amount
		}
		for _, amount := range h.catalog.Amounts(d) {
			ds.Amounts = append(ds.Amounts, amountSetting{
				Amount: amount,
				Label:  donation.FormatCurrencyLabel(amount),
				Impact: donation.FormatImpactLabel(amount),
			})
		}
		resp.Durations = append(resp.Durations, ds)
	}
	JSON(w, http.StatusOK, resp)
}
