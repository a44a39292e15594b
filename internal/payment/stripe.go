package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(apiKey string) *StripeGateway {
	return &StripeGateway{api: client.New(apiKey, nil)}
}

func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	params := &stripe.ChargeParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(req.AmountCents),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(fmt.Sprintf("order %s", req.OrderID)),
	}
	if err := params.SetSource(req.Token); err != nil {
		return nil, fmt.Errorf("invalid payment token: %w", err)
	}
	params.AddMetadata("order_id", req.OrderID)

	ch, err := g.api.Charges.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			// card refused: a normal outcome, not a gateway failure
			return &ChargeResult{
				Succeeded:     false,
				DeclineReason: string(stripeErr.Code),
			}, nil
		}
		return nil, fmt.Errorf("stripe charge failed: %w", err)
	}

	return &ChargeResult{
		Reference: ch.ID,
		Succeeded: ch.Paid,
	}, nil
}
