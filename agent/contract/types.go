package contract

import (
	"github.com/shopspring/decimal"
)

// ClientRef identifies the creditor a debt is collected on behalf of.
type ClientRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AccountRecord is the on-file record returned by the account directory.
// It is immutable once loaded for a call.
type AccountRecord struct {
	AccountID       string          `json:"accountId"`
	ReferenceNumber string          `json:"referenceNumber"`
	DebtorName      string          `json:"debtorName"`
	DateOfBirth     string          `json:"dateOfBirth"` // canonical YYYY-MM-DD
	BalanceDue      decimal.Decimal `json:"balanceDue"`
	Client          ClientRef       `json:"client"`
	PhoneNumber     string          `json:"phoneNumber"`
	Notes           string          `json:"notes"`
	Status          string          `json:"status"`
	DebtorAddress   string          `json:"debtorAddress"`
}

// Factor is one identity factor a caller can prove knowledge of.
type Factor string

const (
	FactorDateOfBirth Factor = "dob"
	FactorName        Factor = "name"
	FactorAddress     Factor = "address"
)

type VerificationOutcome string

const (
	OutcomeVerified        VerificationOutcome = "verified"
	OutcomeSimilar         VerificationOutcome = "similar"
	OutcomeFailed          VerificationOutcome = "failed"
	OutcomeNoAccountLoaded VerificationOutcome = "no_account_loaded"
)

// VerificationResult is the outcome of a single factor check.
// OnFile carries the on-file value only for similar outcomes, where the
// caller is asked to retry with more precision.
type VerificationResult struct {
	Factor  Factor              `json:"factor"`
	Outcome VerificationOutcome `json:"outcome"`
	OnFile  string              `json:"on_file,omitempty"`
}

// PaymentIntent tracks the payment attempt made during the current call.
// Status mirrors the gateway's status string (initiated/succeeded/failed/...).
type PaymentIntent struct {
	ID     string          `json:"id,omitempty"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status"`
	Error  string          `json:"error,omitempty"`
}

const PaymentStatusFailed = "failed"

// CreateIntentRequest is the gateway-facing payload for a new payment intent.
// Amounts are integer minor currency units (cents for EUR).
type CreateIntentRequest struct {
	AmountMinor    int64
	Currency       string
	Description    string
	Metadata       map[string]string
	IdempotencyKey string
}

// GatewayIntent is the gateway's view of a payment intent.
type GatewayIntent struct {
	ID          string
	Status      string
	AmountMinor int64
	Currency    string
}

// ToolResult is what a tool invocation hands back to the dialogue
// orchestrator. Exactly one of Result or Error is populated.
type ToolResult struct {
	Tool   string `json:"tool"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
