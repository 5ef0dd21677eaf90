package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	contractx "github.com/cmos-collections/callcore/agent/contract"
	statex "github.com/cmos-collections/callcore/agent/state"
)

const paymentCurrency = "eur"

var ErrInvalidAmount = errors.New("payment amount must be positive")

// Coordinator gates balance disclosure and the payment-intent lifecycle on
// the verification tally, and talks to the external payment gateway. It
// fails closed: the orchestrator's call order is not trusted.
type Coordinator struct {
	gateway contractx.PaymentGateway

	newIdempotencyKey func() string
}

func New(gateway contractx.PaymentGateway) (*Coordinator, error) {
	if gateway == nil {
		return nil, errors.New("payment gateway is required")
	}
	return &Coordinator{
		gateway:           gateway,
		newIdempotencyKey: uuid.NewString,
	}, nil
}

// BalanceDisclosure is an immutable snapshot of the on-file balance. Amount
// is the stored decimal, reproduced exactly, never reformatted or
// re-rounded.
type BalanceDisclosure struct {
	Amount     decimal.Decimal
	ClientName string
}

// GetBalance returns the balance snapshot only when an account is loaded and
// the caller has passed 2-of-3 verification.
func (c *Coordinator) GetBalance(s *statex.CallSession) (*BalanceDisclosure, error) {
	if s == nil || s.Account == nil {
		return nil, contractx.ErrNoAccountLoaded
	}
	if !s.IsVerified() {
		return nil, contractx.ErrNotVerified
	}
	return &BalanceDisclosure{
		Amount:     s.Account.BalanceDue,
		ClientName: s.Account.Client.Name,
	}, nil
}

// MinorUnits converts a decimal currency amount to integer minor units
// (cents) by round-half-away-from-zero on amount*100.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// InitiatePayment creates an EUR payment intent for the loaded account and
// stores the attempt on the session. Requires a loaded account and a
// verified caller. A gateway failure is recorded on the session and returned
// as a value carrying the backend message, never surfaced as a fault.
func (c *Coordinator) InitiatePayment(ctx context.Context, s *statex.CallSession, amount decimal.Decimal) (*contractx.PaymentIntent, error) {
	if s == nil || s.Account == nil {
		return nil, contractx.ErrNoAccountLoaded
	}
	if !s.IsVerified() {
		return nil, contractx.ErrNotVerified
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	rec := s.Account
	req := contractx.CreateIntentRequest{
		AmountMinor: MinorUnits(amount),
		Currency:    paymentCurrency,
		Description: fmt.Sprintf("Debt collection payment for account %s", rec.AccountID),
		Metadata: map[string]string{
			"account_id":       rec.AccountID,
			"reference_number": rec.ReferenceNumber,
			"debtor_name":      rec.DebtorName,
			"client_id":        rec.Client.ID,
			"client_name":      rec.Client.Name,
		},
		IdempotencyKey: c.newIdempotencyKey(),
	}

	gw, err := c.gateway.CreateIntent(ctx, req)
	if err != nil {
		s.SetPayment(&contractx.PaymentIntent{
			Amount: amount,
			Status: contractx.PaymentStatusFailed,
			Error:  err.Error(),
		})
		log.Warn().Err(err).
			Str("account_id", rec.AccountID).
			Int64("amount_minor", req.AmountMinor).
			Msg("payment intent creation failed")
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	status := gw.Status
	if status == "" {
		status = "initiated"
	}
	intent := &contractx.PaymentIntent{
		ID:     gw.ID,
		Amount: amount,
		Status: status,
	}
	s.SetPayment(intent)
	log.Info().
		Str("payment_intent_id", gw.ID).
		Int64("amount_minor", req.AmountMinor).
		Str("account_id", rec.AccountID).
		Msg("payment intent created")
	return intent, nil
}

// CheckPaymentStatus is a stateless passthrough to the gateway's
// retrieve-by-id. It needs no loaded session.
func (c *Coordinator) CheckPaymentStatus(ctx context.Context, paymentIntentID string) (string, error) {
	if paymentIntentID == "" {
		return "", errors.New("payment intent id is required")
	}
	gw, err := c.gateway.RetrieveIntent(ctx, paymentIntentID)
	if err != nil {
		return "", fmt.Errorf("retrieve payment intent: %w", err)
	}
	return gw.Status, nil
}
