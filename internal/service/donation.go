package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/aiagenz/donate/internal/domain"
	"github.com/aiagenz/donate/internal/donation"
	"github.com/aiagenz/donate/pkg/crypto"
	"github.com/aiagenz/donate/pkg/payment"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const recordTimeout = 5 * time.Second

var tracer = otel.Tracer("github.com/aiagenz/donate/internal/service")

// DonationStore persists donations made by signed-in donors.
type DonationStore interface {
	Create(ctx context.Context, d *domain.Donation) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Donation, error)
}

// Visitor is the donor as seen by the outer application. An empty UserID
// means the donor is not signed in.
type Visitor struct {
	UserID string
	Email  string
}

// SignedIn reports whether donations should be recorded against an account.
func (v Visitor) SignedIn() bool {
	return v.UserID != ""
}

// DonationService drives donation forms and hands payments to the providers.
type DonationService struct {
	forms    *FormStore
	card     payment.CardGateway
	paypal   payment.PayPalGateway
	store    DonationStore
	sealer   *crypto.Sealer
	validate *validator.Validate
}

// NewDonationService creates a new DonationService.
func NewDonationService(
	forms *FormStore,
	card payment.CardGateway,
	paypal payment.PayPalGateway,
	store DonationStore,
	sealer *crypto.Sealer,
) *DonationService {
	return &DonationService{
		forms:    forms,
		card:     card,
		paypal:   paypal,
		store:    store,
		sealer:   sealer,
		validate: validator.New(),
	}
}

// Forms exposes the underlying store for read-only consumers such as the
// websocket stream.
func (s *DonationService) Forms() *FormStore {
	return s.forms
}

// Open mounts a new donation form.
func (s *DonationService) Open() (string, donation.View, error) {
	return s.forms.Open()
}

// View returns the current view of a form.
func (s *DonationService) View(id string) (donation.View, error) {
	return s.forms.View(id)
}

// Close unmounts a form.
func (s *DonationService) Close(id string) error {
	return s.forms.Close(id)
}

// SelectDuration switches the form to another duration tab.
func (s *DonationService) SelectDuration(id string, req *domain.SelectDurationRequest) (donation.View, error) {
	if err := s.validate.Struct(req); err != nil {
		return donation.View{}, domain.ErrValidation(formatValidationErrors(err))
	}
	return s.forms.Update(id, func(f *donation.Form) error {
		return f.SelectDuration(donation.Duration(req.Duration))
	})
}

// SelectAmount picks an amount for the current duration.
func (s *DonationService) SelectAmount(id string, req *domain.SelectAmountRequest) (donation.View, error) {
	if err := s.validate.Struct(req); err != nil {
		return donation.View{}, domain.ErrValidation(formatValidationErrors(err))
	}
	return s.forms.Update(id, func(f *donation.Form) error {
		return f.SelectAmount(req.Amount)
	})
}

// SetProcessing hides or shows the amount options while the card widget works.
func (s *DonationService) SetProcessing(id string, req *domain.ProcessingRequest) (donation.View, error) {
	return s.forms.Update(id, func(f *donation.Form) error {
		f.HideAmountOptions(req.Hide)
		return nil
	})
}

// ReportOutcome applies an outcome callback reported by a client-side
// payment collaborator. Callbacks are refused while a server-side payment
// is in flight, since that payment reports its own result.
func (s *DonationService) ReportOutcome(id string, req *domain.OutcomeRequest) (donation.View, error) {
	if err := s.validate.Struct(req); err != nil {
		return donation.View{}, domain.ErrValidation(formatValidationErrors(err))
	}
	return s.forms.Update(id, func(f *donation.Form) error {
		if f.Claimed() {
			return donation.ErrFormLocked
		}
		f.Dispatch(donation.OutcomeChanged(req.Success, req.Processing, req.Error))
		return nil
	})
}

// Reset clears the outcome so the donor can start over. It is refused while
// a server-side payment is in flight.
func (s *DonationService) Reset(id string) (donation.View, error) {
	return s.forms.Update(id, func(f *donation.Form) error {
		if f.Claimed() {
			return donation.ErrFormLocked
		}
		f.Dispatch(donation.Reset())
		return nil
	})
}

// DonateWithCard charges the card tokenized by the card widget for the
// form's current selection.
func (s *DonationService) DonateWithCard(ctx context.Context, id string, visitor Visitor, req *domain.CardDonationRequest) (donation.View, error) {
	if err := s.validate.Struct(req); err != nil {
		return donation.View{}, domain.ErrValidation(formatValidationErrors(err))
	}

	sel, err := s.begin(id, true)
	if err != nil {
		return donation.View{}, err
	}

	ctx, span := startPayment(ctx, "DonationService.DonateWithCard", id, sel)
	defer span.End()

	ref, payErr := s.card.Charge(ctx, payment.CardCharge{
		Token:    req.Token,
		Email:    req.Email,
		Amount:   sel.Amount,
		Duration: string(sel.Duration),
		Label:    donation.BuildConfirmationLabel(sel.Duration, sel.Amount),
	})
	endPayment(span, payErr)
	if payErr == nil && visitor.SignedIn() {
		s.record(ctx, id, domain.ProviderCard, visitor, sel, ref, req.Email)
	}
	return s.finish(id, domain.ProviderCard, payErr)
}

// DonateWithPayPal captures an order approved in the PayPal button.
// Donations by visitors who are not signed in are not recorded.
func (s *DonationService) DonateWithPayPal(ctx context.Context, id string, visitor Visitor, req *domain.PayPalDonationRequest) (donation.View, error) {
	if err := s.validate.Struct(req); err != nil {
		return donation.View{}, domain.ErrValidation(formatValidationErrors(err))
	}

	sel, err := s.begin(id, false)
	if err != nil {
		return donation.View{}, err
	}

	ctx, span := startPayment(ctx, "DonationService.DonateWithPayPal", id, sel)
	defer span.End()

	skip := !visitor.SignedIn()
	ref, payErr := s.paypal.Capture(ctx, payment.PayPalCapture{
		OrderID:       req.OrderID,
		Amount:        sel.Amount,
		Duration:      string(sel.Duration),
		SkipRecording: skip,
	})
	endPayment(span, payErr)
	if payErr == nil && !skip {
		s.record(ctx, id, domain.ProviderPayPal, visitor, sel, ref, visitor.Email)
	}
	return s.finish(id, domain.ProviderPayPal, payErr)
}

// ListDonations returns the donations recorded for a signed-in user.
func (s *DonationService) ListDonations(ctx context.Context, userID string) ([]*domain.Donation, error) {
	donations, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.ErrInternal("failed to list donations", err)
	}
	if donations == nil {
		donations = []*domain.Donation{}
	}
	return donations, nil
}

// begin moves the form into processing and returns the selection being paid.
func (s *DonationService) begin(id string, hideOptions bool) (donation.Selection, error) {
	var sel donation.Selection
	_, err := s.forms.Update(id, func(f *donation.Form) error {
		if err := f.Claim(); err != nil {
			return err
		}
		sel = f.Selection()
		if hideOptions {
			f.HideAmountOptions(true)
		}
		f.Dispatch(donation.ProcessingStarted())
		return nil
	})
	return sel, err
}

func startPayment(ctx context.Context, name, formID string, sel donation.Selection) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("donation.form_id", formID),
		attribute.String("donation.duration", string(sel.Duration)),
		attribute.Int64("donation.amount", sel.Amount),
	))
}

func endPayment(span trace.Span, payErr error) {
	if payErr != nil {
		span.RecordError(payErr)
		span.SetStatus(codes.Error, "payment failed")
	}
}

// finish records the provider's answer on the form.
func (s *DonationService) finish(id, provider string, payErr error) (donation.View, error) {
	v, err := s.forms.Update(id, func(f *donation.Form) error {
		f.Release()
		if payErr != nil {
			f.HideAmountOptions(false)
			f.Dispatch(donation.Failed(donorMessage(provider, payErr)))
			return nil
		}
		f.Dispatch(donation.Succeeded())
		return nil
	})
	if err != nil {
		log.Printf("[Donation] Form %s gone before %s result could be shown: %v", id, provider, err)
	}
	return v, err
}

func (s *DonationService) record(ctx context.Context, formID, provider string, visitor Visitor, sel donation.Selection, ref, email string) {
	d := &domain.Donation{
		ID:          domain.NewDonationID(),
		UserID:      visitor.UserID,
		FormID:      formID,
		Provider:    provider,
		Duration:    string(sel.Duration),
		Amount:      sel.Amount,
		ProviderRef: ref,
		CreatedAt:   time.Now(),
	}
	if email != "" && s.sealer != nil {
		sealed, err := s.sealer.Seal(email, d.ID)
		if err != nil {
			log.Printf("[Donation] Failed to seal donor email for %s: %v", d.ID, err)
		} else {
			d.Email = sealed
		}
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := s.store.Create(ctx, d); err != nil {
		log.Printf("[Donation] Failed to record %s donation %s (%s): %v", provider, d.ID, ref, err)
		return
	}
	log.Printf("[Donation] Recorded %s %s donation of %s for user %s",
		sel.Duration, provider, donation.FormatCurrencyLabel(sel.Amount), visitor.UserID)
}

// donorMessage picks the text shown on the completion screen. Provider
// declines are passed through; anything else is logged and replaced.
func donorMessage(provider string, err error) string {
	switch {
	case errors.Is(err, payment.ErrDeclined):
		return err.Error()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "The payment provider did not respond in time. Please try again."
	}
	log.Printf("[Donation] %s payment failed: %v", provider, err)
	return "Something went wrong processing your donation. Please try again."
}

func formatValidationErrors(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	return "invalid " + fe.Field() + ": failed " + fe.Tag() + " check"
}
