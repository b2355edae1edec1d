package domain

import (
	"time"

	"github.com/google/uuid"
)

// Payment providers a donation can come through.
const (
	ProviderCard   = "card"
	ProviderPayPal = "paypal"
)

// Donation is a completed donation recorded against a signed-in user.
type Donation struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	FormID      string    `json:"formId"`
	Provider    string    `json:"provider"`
	Duration    string    `json:"duration"`
	Amount      int64     `json:"amount"` // cents
	ProviderRef string    `json:"providerRef"`
	Email       []byte    `json:"-"` // sealed
	CreatedAt   time.Time `json:"createdAt"`
}

// NewDonationID generates a new UUID for a donation record.
func NewDonationID() string {
	return uuid.New().String()
}

// SelectDurationRequest switches the form's duration tab.
type SelectDurationRequest struct {
	Duration string `json:"duration" validate:"required,oneof=onetime month year"`
}

// SelectAmountRequest picks an amount button.
type SelectAmountRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// ProcessingRequest is the card widget's onProcessingChanged callback.
type ProcessingRequest struct {
	Hide bool `json:"hide"`
}

// OutcomeRequest is a raw onDonationOutcomeChanged callback reported by a
// client-side payment collaborator.
type OutcomeRequest struct {
	Success    bool   `json:"success"`
	Processing bool   `json:"processing"`
	Error      string `json:"error" validate:"max=500"`
}

// CardDonationRequest carries the token produced by the card widget.
type CardDonationRequest struct {
	Token string `json:"token" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email"`
}

// PayPalDonationRequest carries the order approved in the PayPal button.
type PayPalDonationRequest struct {
	OrderID string `json:"orderId" validate:"required,max=64"`
}

// JWTClaims represents the JWT payload issued by the outer application.
type JWTClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
