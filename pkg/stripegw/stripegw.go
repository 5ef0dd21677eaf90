package stripegw

import (
	"context"
	"errors"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	contractx "github.com/cmos-collections/callcore/agent/contract"
)

type Config struct {
	SecretKey string `envconfig:"SECRET_KEY" split_words:"true" required:"true"`
}

// Gateway implements contract.PaymentGateway on Stripe PaymentIntents.
// Amounts are integer minor units; the currency is whatever the coordinator
// requests (EUR in this deployment).
type Gateway struct {
	api *client.API
}

var _ contractx.PaymentGateway = (*Gateway)(nil)

func New(cfg Config) (*Gateway, error) {
	key := strings.TrimSpace(cfg.SecretKey)
	if key == "" {
		return nil, errors.New("stripe secret key is required")
	}
	api := &client.API{}
	api.Init(key, nil)
	return &Gateway{api: api}, nil
}

func MustNew(cfg Config) *Gateway {
	g, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Gateway) CreateIntent(ctx context.Context, req contractx.CreateIntentRequest) (*contractx.GatewayIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:      stripe.Int64(req.AmountMinor),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, asGatewayError(err)
	}
	return asIntent(pi), nil
}

func (g *Gateway) RetrieveIntent(ctx context.Context, id string) (*contractx.GatewayIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
	}
	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, asGatewayError(err)
	}
	return asIntent(pi), nil
}

func asIntent(pi *stripe.PaymentIntent) *contractx.GatewayIntent {
	return &contractx.GatewayIntent{
		ID:          pi.ID,
		Status:      string(pi.Status),
		AmountMinor: pi.Amount,
		Currency:    string(pi.Currency),
	}
}

// asGatewayError keeps the backend's own message; the tool layer surfaces it
// verbatim in the failure result.
func asGatewayError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return fmt.Errorf("stripe: %s", stripeErr.Msg)
	}
	return fmt.Errorf("stripe: %w", err)
}
