package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrDeclined is returned when the provider refuses the payment. Its message is
// safe to show to the donor.
var ErrDeclined = errors.New("payment declined")

// CardCharge is what the card widget hands over once it has tokenized the card.
type CardCharge struct {
	Token    string
	Email    string
	Amount   int64  // cents
	Duration string // onetime, month or year
	Label    string // confirmation text the donor agreed to
}

// PayPalCapture is the approval reported by the PayPal button.
type PayPalCapture struct {
	OrderID       string
	Amount        int64
	Duration      string
	SkipRecording bool
}

// CardGateway starts card donations (one-time charge or subscription).
type CardGateway interface {
	// Charge returns the provider's reference for the charge or subscription.
	Charge(ctx context.Context, c CardCharge) (string, error)
}

// PayPalGateway confirms donations approved in the PayPal button.
type PayPalGateway interface {
	// Capture returns the provider's reference for the captured order.
	Capture(ctx context.Context, c PayPalCapture) (string, error)
}

// Declined token and order prefix understood by MockGateway.
const (
	MockDeclinedToken  = "tok_chargeDeclined"
	MockDeclinedPrefix = "DECLINED"
)

// MockGateway is an in-process stand-in for both providers. It declines
// MockDeclinedToken and any order ID starting with MockDeclinedPrefix.
type MockGateway struct {
	mu       sync.Mutex
	captured map[string]string
}

func NewMockGateway() *MockGateway {
	return &MockGateway{captured: make(map[string]string)}
}

func (g *MockGateway) Charge(ctx context.Context, c CardCharge) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.Amount <= 0 {
		return "", fmt.Errorf("%w: invalid amount", ErrDeclined)
	}
	if c.Token == MockDeclinedToken {
		return "", fmt.Errorf("%w: your card was declined", ErrDeclined)
	}
	if c.Duration == "onetime" {
		return "ch_" + uuid.New().String(), nil
	}
	return "sub_" + uuid.New().String(), nil
}

func (g *MockGateway) Capture(ctx context.Context, c PayPalCapture) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.HasPrefix(c.OrderID, MockDeclinedPrefix) {
		return "", fmt.Errorf("%w: PayPal could not complete the order", ErrDeclined)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.captured[c.OrderID]; ok {
		return "", fmt.Errorf("%w: order %s already captured", ErrDeclined, c.OrderID)
	}
	ref := "cap_" + uuid.New().String()
	g.captured[c.OrderID] = ref
	return ref, nil
}
