package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/shopspring/decimal"

	contractx "github.com/cmos-collections/callcore/agent/contract"
	statex "github.com/cmos-collections/callcore/agent/state"
	transactionx "github.com/cmos-collections/callcore/agent/transaction"
	transferx "github.com/cmos-collections/callcore/agent/transfer"
	verifyx "github.com/cmos-collections/callcore/agent/verify"
)

const (
	ToolLookupAccount      = "lookupAccount"
	ToolVerifyDateOfBirth  = "verifyDateOfBirth"
	ToolVerifyName         = "verifyName"
	ToolVerifyAddress      = "verifyAddress"
	ToolGetBalance         = "getBalance"
	ToolInitiatePayment    = "initiatePayment"
	ToolCheckPaymentStatus = "checkPaymentStatus"
	ToolRequestTransfer    = "requestTransfer"
)

// Executor runs one tool call for the session it was built for and returns a
// short machine-parseable result. Defined failures come back inside the
// ToolResult; the error return is reserved for internal invariant
// violations.
type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

// Suite bundles the coordinators behind the callable tool surface the
// dialogue orchestrator invokes during a call.
type Suite struct {
	directory contractx.AccountDirectory
	verifier  *verifyx.Engine
	payments  *transactionx.Coordinator
	transfers *transferx.Coordinator
}

func NewSuite(
	directory contractx.AccountDirectory,
	verifier *verifyx.Engine,
	payments *transactionx.Coordinator,
	transfers *transferx.Coordinator,
) (*Suite, error) {
	if directory == nil {
		return nil, errors.New("account directory is required")
	}
	if verifier == nil {
		return nil, errors.New("verification engine is required")
	}
	if payments == nil {
		return nil, errors.New("transaction coordinator is required")
	}
	if transfers == nil {
		return nil, errors.New("transfer coordinator is required")
	}
	return &Suite{
		directory: directory,
		verifier:  verifier,
		payments:  payments,
		transfers: transfers,
	}, nil
}

// BuildForSession returns the tool descriptions plus an executor bound to
// one call's session.
func (s *Suite) BuildForSession(sess *statex.CallSession) ([]*schema.ToolInfo, Executor) {
	return Infos(), s.Executor(sess)
}

// Executor binds the tool dispatch to a single call session. The
// orchestrator invokes tools strictly sequentially for that session.
func (s *Suite) Executor(sess *statex.CallSession) Executor {
	fallback := DefaultExecutor()
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		if sess == nil {
			return contractx.ToolResult{Tool: tool, Error: "no call session"}, nil
		}
		switch tool {
		case ToolLookupAccount:
			return s.executeLookup(ctx, sess, args)
		case ToolVerifyDateOfBirth:
			return s.executeVerifyDateOfBirth(sess, args)
		case ToolVerifyName:
			return s.executeVerifyName(sess, args)
		case ToolVerifyAddress:
			return s.executeVerifyAddress(sess, args)
		case ToolGetBalance:
			return s.executeGetBalance(sess)
		case ToolInitiatePayment:
			return s.executeInitiatePayment(ctx, sess, args)
		case ToolCheckPaymentStatus:
			return s.executeCheckPaymentStatus(ctx, args)
		case ToolRequestTransfer:
			return s.executeRequestTransfer(sess)
		default:
			return fallback(ctx, tool, args)
		}
	}
}

// DefaultExecutor rejects tools outside the catalog.
func DefaultExecutor() Executor {
	return func(_ context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("tool=%s is not part of the call tool surface", tool),
		}, nil
	}
}

func (s *Suite) executeLookup(ctx context.Context, sess *statex.CallSession, args map[string]any) (contractx.ToolResult, error) {
	ref, err := stringArg(args, "reference_number")
	if err != nil {
		return contractx.ToolResult{Tool: ToolLookupAccount, Error: err.Error()}, nil
	}

	rec, err := s.directory.Lookup(ctx, ref)
	switch {
	case err == nil:
		if err := sess.AttachAccount(rec); err != nil {
			return contractx.ToolResult{Tool: ToolLookupAccount, Error: err.Error()}, nil
		}
		return contractx.ToolResult{
			Tool: ToolLookupAccount,
			Result: fmt.Sprintf("account_found – name on file: %s, dob on file: %s",
				rec.DebtorName, rec.DateOfBirth),
		}, nil
	case errors.Is(err, contractx.ErrAccountNotFound):
		return contractx.ToolResult{Tool: ToolLookupAccount, Result: "account_not_found"}, nil
	default:
		// Transient: the orchestrator owns retry wording and policy.
		return contractx.ToolResult{
			Tool:   ToolLookupAccount,
			Result: fmt.Sprintf("lookup_error – %s", err.Error()),
		}, nil
	}
}

func (s *Suite) executeVerifyDateOfBirth(sess *statex.CallSession, args map[string]any) (contractx.ToolResult, error) {
	stated, err := stringArg(args, "stated_date_of_birth")
	if err != nil {
		return contractx.ToolResult{Tool: ToolVerifyDateOfBirth, Error: err.Error()}, nil
	}
	return renderVerification(ToolVerifyDateOfBirth, s.verifier.VerifyDateOfBirth(sess, stated)), nil
}

func (s *Suite) executeVerifyName(sess *statex.CallSession, args map[string]any) (contractx.ToolResult, error) {
	stated, err := stringArg(args, "stated_name")
	if err != nil {
		return contractx.ToolResult{Tool: ToolVerifyName, Error: err.Error()}, nil
	}
	return renderVerification(ToolVerifyName, s.verifier.VerifyName(sess, stated)), nil
}

func (s *Suite) executeVerifyAddress(sess *statex.CallSession, args map[string]any) (contractx.ToolResult, error) {
	stated, err := stringArg(args, "stated_address")
	if err != nil {
		return contractx.ToolResult{Tool: ToolVerifyAddress, Error: err.Error()}, nil
	}
	return renderVerification(ToolVerifyAddress, s.verifier.VerifyAddress(sess, stated)), nil
}

func renderVerification(tool string, res contractx.VerificationResult) contractx.ToolResult {
	switch res.Outcome {
	case contractx.OutcomeVerified:
		return contractx.ToolResult{Tool: tool, Result: "verified"}
	case contractx.OutcomeSimilar:
		return contractx.ToolResult{
			Tool:   tool,
			Result: fmt.Sprintf("similar – on file: %s", res.OnFile),
		}
	case contractx.OutcomeFailed:
		return contractx.ToolResult{Tool: tool, Result: "failed"}
	case contractx.OutcomeNoAccountLoaded:
		return contractx.ToolResult{Tool: tool, Error: "no account loaded"}
	default:
		return contractx.ToolResult{Tool: tool, Error: fmt.Sprintf("unknown outcome %q", res.Outcome)}
	}
}

func (s *Suite) executeGetBalance(sess *statex.CallSession) (contractx.ToolResult, error) {
	disclosure, err := s.payments.GetBalance(sess)
	switch {
	case err == nil:
		// The stored decimal is reproduced exactly; no reformatting.
		return contractx.ToolResult{
			Tool:   ToolGetBalance,
			Result: fmt.Sprintf("€%s owed to %s", disclosure.Amount.String(), disclosure.ClientName),
		}, nil
	case errors.Is(err, contractx.ErrNoAccountLoaded):
		return contractx.ToolResult{Tool: ToolGetBalance, Error: "no account loaded"}, nil
	case errors.Is(err, contractx.ErrNotVerified):
		return contractx.ToolResult{Tool: ToolGetBalance, Error: "identity not verified"}, nil
	default:
		return contractx.ToolResult{Tool: ToolGetBalance, Error: err.Error()}, nil
	}
}

func (s *Suite) executeInitiatePayment(ctx context.Context, sess *statex.CallSession, args map[string]any) (contractx.ToolResult, error) {
	amount, err := amountArg(args, "amount")
	if err != nil {
		return contractx.ToolResult{Tool: ToolInitiatePayment, Error: err.Error()}, nil
	}

	intent, err := s.payments.InitiatePayment(ctx, sess, amount)
	switch {
	case err == nil:
		return contractx.ToolResult{
			Tool:   ToolInitiatePayment,
			Result: fmt.Sprintf("payment_initiated – %s", intent.ID),
		}, nil
	case errors.Is(err, contractx.ErrNoAccountLoaded):
		return contractx.ToolResult{Tool: ToolInitiatePayment, Error: "no account loaded"}, nil
	case errors.Is(err, contractx.ErrNotVerified):
		return contractx.ToolResult{Tool: ToolInitiatePayment, Error: "identity not verified"}, nil
	default:
		return contractx.ToolResult{
			Tool:   ToolInitiatePayment,
			Result: fmt.Sprintf("payment_failed – %s", err.Error()),
		}, nil
	}
}

func (s *Suite) executeCheckPaymentStatus(ctx context.Context, args map[string]any) (contractx.ToolResult, error) {
	id, err := stringArg(args, "payment_intent_id")
	if err != nil {
		return contractx.ToolResult{Tool: ToolCheckPaymentStatus, Error: err.Error()}, nil
	}

	status, err := s.payments.CheckPaymentStatus(ctx, id)
	if err != nil {
		return contractx.ToolResult{
			Tool:   ToolCheckPaymentStatus,
			Result: fmt.Sprintf("error: %s", err.Error()),
		}, nil
	}
	return contractx.ToolResult{
		Tool:   ToolCheckPaymentStatus,
		Result: fmt.Sprintf("status: %s", status),
	}, nil
}

func (s *Suite) executeRequestTransfer(sess *statex.CallSession) (contractx.ToolResult, error) {
	if err := s.transfers.RequestTransfer(sess); err != nil {
		return contractx.ToolResult{
			Tool:   ToolRequestTransfer,
			Result: fmt.Sprintf("transfer_failed – %s", err.Error()),
		}, nil
	}
	// Optimistic: completion is only observed in the dispatch log.
	return contractx.ToolResult{Tool: ToolRequestTransfer, Result: "transfer_successful"}, nil
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	if value == "" {
		return "", fmt.Errorf("%s is empty", key)
	}
	return value, nil
}

func amountArg(args map[string]any, key string) (decimal.Decimal, error) {
	raw, ok := args[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s is required", key)
	}
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s is not a valid amount: %w", key, err)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("%s must be a number", key)
	}
}
