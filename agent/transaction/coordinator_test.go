package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	contractx "github.com/cmos-collections/callcore/agent/contract"
	statex "github.com/cmos-collections/callcore/agent/state"
)

type fakeGateway struct {
	createReq    *contractx.CreateIntentRequest
	createResp   *contractx.GatewayIntent
	createErr    error
	retrieveID   string
	retrieveResp *contractx.GatewayIntent
	retrieveErr  error
}

func (f *fakeGateway) CreateIntent(_ context.Context, req contractx.CreateIntentRequest) (*contractx.GatewayIntent, error) {
	f.createReq = &req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResp, nil
}

func (f *fakeGateway) RetrieveIntent(_ context.Context, id string) (*contractx.GatewayIntent, error) {
	f.retrieveID = id
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	return f.retrieveResp, nil
}

func verifiedSession(t *testing.T) *statex.CallSession {
	t.Helper()

	s := statex.NewCallSession("room-1", "caller-1", time.Now())
	err := s.AttachAccount(&contractx.AccountRecord{
		AccountID:       "IW1003",
		ReferenceNumber: "REF-42",
		DebtorName:      "John Murphy",
		DateOfBirth:     "1975-11-22",
		BalanceDue:      decimal.RequireFromString("322.15"),
		Client:          contractx.ClientRef{ID: "a37b560e", Name: "Irish Water"},
	})
	if err != nil {
		t.Fatalf("AttachAccount() error = %v", err)
	}
	s.GrantFactor(contractx.FactorDateOfBirth)
	s.GrantFactor(contractx.FactorName)
	return s
}

func TestMinorUnits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount string
		want   int64
	}{
		{"322.15", 32215},
		{"0.50", 50},
		{"1", 100},
		{"100.00", 10000},
		// Round half away from zero on amount*100.
		{"0.125", 13},
		{"0.115", 12},
	}
	for _, tc := range cases {
		if got := MinorUnits(decimal.RequireFromString(tc.amount)); got != tc.want {
			t.Fatalf("MinorUnits(%s) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestGetBalanceRequiresAccount(t *testing.T) {
	t.Parallel()

	c, err := New(&fakeGateway{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s := statex.NewCallSession("room-1", "caller-1", time.Now())
	if _, err := c.GetBalance(s); !errors.Is(err, contractx.ErrNoAccountLoaded) {
		t.Fatalf("GetBalance() error = %v, want ErrNoAccountLoaded", err)
	}
}

func TestGetBalanceRequiresVerification(t *testing.T) {
	t.Parallel()

	c, err := New(&fakeGateway{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s := verifiedSession(t)
	// Rebuild with only one factor: loaded account alone is not enough.
	one := statex.NewCallSession("room-1", "caller-1", time.Now())
	if err := one.AttachAccount(s.Account); err != nil {
		t.Fatalf("AttachAccount() error = %v", err)
	}
	one.GrantFactor(contractx.FactorDateOfBirth)

	if _, err := c.GetBalance(one); !errors.Is(err, contractx.ErrNotVerified) {
		t.Fatalf("GetBalance() error = %v, want ErrNotVerified", err)
	}
}

func TestGetBalanceExactSnapshot(t *testing.T) {
	t.Parallel()

	c, err := New(&fakeGateway{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s := verifiedSession(t)
	disclosure, err := c.GetBalance(s)
	if err != nil {
		t.Fatalf("GetBalance() error = %v", err)
	}
	if got := disclosure.Amount.String(); got != "322.15" {
		t.Fatalf("Amount = %q, want stored value reproduced exactly", got)
	}
	if disclosure.ClientName != "Irish Water" {
		t.Fatalf("ClientName = %q, want %q", disclosure.ClientName, "Irish Water")
	}
}

func TestInitiatePaymentSuccess(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{
		createResp: &contractx.GatewayIntent{ID: "pi_123", Status: "requires_payment_method"},
	}
	c, err := New(gw)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c.newIdempotencyKey = func() string { return "idem-1" }

	s := verifiedSession(t)
	intent, err := c.InitiatePayment(context.Background(), s, decimal.RequireFromString("322.15"))
	if err != nil {
		t.Fatalf("InitiatePayment() error = %v", err)
	}

	if intent.ID != "pi_123" {
		t.Fatalf("intent id = %q, want pi_123", intent.ID)
	}
	if intent.Status != "requires_payment_method" {
		t.Fatalf("intent status = %q, want gateway status mirrored", intent.Status)
	}
	if s.Payment != intent {
		t.Fatal("payment intent must be stored on the session")
	}

	if gw.createReq.AmountMinor != 32215 {
		t.Fatalf("AmountMinor = %d, want 32215", gw.createReq.AmountMinor)
	}
	if gw.createReq.Currency != "eur" {
		t.Fatalf("Currency = %q, want eur", gw.createReq.Currency)
	}
	if gw.createReq.IdempotencyKey != "idem-1" {
		t.Fatalf("IdempotencyKey = %q", gw.createReq.IdempotencyKey)
	}
	meta := gw.createReq.Metadata
	if meta["account_id"] != "IW1003" || meta["reference_number"] != "REF-42" {
		t.Fatalf("account metadata missing: %#v", meta)
	}
	if meta["debtor_name"] != "John Murphy" || meta["client_name"] != "Irish Water" {
		t.Fatalf("debtor/client metadata missing: %#v", meta)
	}
}

func TestInitiatePaymentGatewayFailure(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{createErr: errors.New("stripe: amount below minimum")}
	c, err := New(gw)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s := verifiedSession(t)
	_, err = c.InitiatePayment(context.Background(), s, decimal.RequireFromString("0.10"))
	if err == nil {
		t.Fatal("expected failure result")
	}

	// The failure is recorded on the session, not raised as a fault.
	if s.Payment == nil || s.Payment.Status != contractx.PaymentStatusFailed {
		t.Fatalf("session payment = %#v, want failed status", s.Payment)
	}
	if s.Payment.Error == "" {
		t.Fatal("failed payment must carry the backend message")
	}
}

func TestInitiatePaymentRequiresVerifiedCaller(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{createResp: &contractx.GatewayIntent{ID: "pi_123"}}
	c, err := New(gw)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s := statex.NewCallSession("room-1", "caller-1", time.Now())
	if err := s.AttachAccount(verifiedSession(t).Account); err != nil {
		t.Fatalf("AttachAccount() error = %v", err)
	}

	_, err = c.InitiatePayment(context.Background(), s, decimal.RequireFromString("50"))
	if !errors.Is(err, contractx.ErrNotVerified) {
		t.Fatalf("InitiatePayment() error = %v, want ErrNotVerified", err)
	}
	if gw.createReq != nil {
		t.Fatal("gateway must not be called for an unverified caller")
	}
}

func TestInitiatePaymentRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()

	c, err := New(&fakeGateway{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s := verifiedSession(t)
	if _, err := c.InitiatePayment(context.Background(), s, decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("InitiatePayment() error = %v, want ErrInvalidAmount", err)
	}
}

func TestCheckPaymentStatusPassthrough(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{
		retrieveResp: &contractx.GatewayIntent{ID: "pi_123", Status: "succeeded"},
	}
	c, err := New(gw)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	status, err := c.CheckPaymentStatus(context.Background(), "pi_123")
	if err != nil {
		t.Fatalf("CheckPaymentStatus() error = %v", err)
	}
	if status != "succeeded" {
		t.Fatalf("status = %q, want succeeded", status)
	}
	if gw.retrieveID != "pi_123" {
		t.Fatalf("retrieve id = %q", gw.retrieveID)
	}
}

func TestCheckPaymentStatusError(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{retrieveErr: errors.New("stripe: no such payment_intent")}
	c, err := New(gw)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := c.CheckPaymentStatus(context.Background(), "pi_missing"); err == nil {
		t.Fatal("expected error from gateway")
	}
}
