package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGatewayCharge(t *testing.T) {
	g := NewMockGateway()
	ctx := context.Background()

	ref, err := g.Charge(ctx, CardCharge{Token: "tok_visa", Amount: 500, Duration: "month"})
	require.NoError(t, err)
	assert.Contains(t, ref, "sub_")

	ref, err = g.Charge(ctx, CardCharge{Token: "tok_visa", Amount: 500, Duration: "onetime"})
	require.NoError(t, err)
	assert.Contains(t, ref, "ch_")

	_, err = g.Charge(ctx, CardCharge{Token: MockDeclinedToken, Amount: 500, Duration: "month"})
	require.ErrorIs(t, err, ErrDeclined)

	_, err = g.Charge(ctx, CardCharge{Token: "tok_visa", Amount: 0})
	require.ErrorIs(t, err, ErrDeclined)
}

func TestMockGatewayCapture(t *testing.T) {
	g := NewMockGateway()
	ctx := context.Background()

	ref, err := g.Capture(ctx, PayPalCapture{OrderID: "ORDER-1", Amount: 2500})
	require.NoError(t, err)
	assert.NotEmpty(t, ref)

	_, err = g.Capture(ctx, PayPalCapture{OrderID: "ORDER-1", Amount: 2500})
	require.ErrorIs(t, err, ErrDeclined, "orders are captured once")

	_, err = g.Capture(ctx, PayPalCapture{OrderID: MockDeclinedPrefix + "-2", Amount: 2500})
	require.ErrorIs(t, err, ErrDeclined)
}

func TestMockGatewayHonoursContext(t *testing.T) {
	g := NewMockGateway()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Charge(ctx, CardCharge{Token: "tok_visa", Amount: 500})
	require.ErrorIs(t, err, context.Canceled)
	_, err = g.Capture(ctx, PayPalCapture{OrderID: "ORDER-3"})
	require.ErrorIs(t, err, context.Canceled)
}
