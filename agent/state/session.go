package state

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	contractx "github.com/cmos-collections/callcore/agent/contract"
)

var ErrNilSession = errors.New("session is nil")

// CallSession is the per-call mutable state: call identity, the loaded
// account record, the verification tally, and the payment attempt. One
// session exists per live call, is mutated only by this core's operations,
// and is discarded at call end, never persisted.
//
// Within a call the dialogue orchestrator invokes operations strictly
// sequentially, so the session itself carries no lock; single-writer
// discipline suffices.
type CallSession struct {
	SessionID     string
	RoomName      string
	ParticipantID string
	StartedAt     time.Time

	Account *contractx.AccountRecord
	Payment *contractx.PaymentIntent

	factors map[contractx.Factor]struct{}
}

func NewCallSession(room, participantID string, now time.Time) *CallSession {
	return &CallSession{
		SessionID:     uuid.NewString(),
		RoomName:      room,
		ParticipantID: participantID,
		StartedAt:     now.UTC(),
		factors:       make(map[contractx.Factor]struct{}, 3),
	}
}

// HasCallContext reports whether the session knows which call leg it belongs
// to. Transfers fail closed without it.
func (s *CallSession) HasCallContext() bool {
	return s != nil && s.RoomName != "" && s.ParticipantID != ""
}

// AttachAccount loads an account record onto the session. At most one record
// is loaded at a time; attaching a different record resets the tally, since
// verified factors prove knowledge of a specific record. Re-attaching the
// same reference keeps the tally.
func (s *CallSession) AttachAccount(rec *contractx.AccountRecord) error {
	if s == nil {
		return ErrNilSession
	}
	if rec == nil {
		return errors.New("account record is nil")
	}
	if s.Account != nil && s.Account.ReferenceNumber != rec.ReferenceNumber {
		s.factors = make(map[contractx.Factor]struct{}, 3)
		s.Payment = nil
	}
	s.Account = rec
	return nil
}

// GrantFactor records a verified identity factor. The tally is monotonic for
// the loaded record: granting is idempotent and factors are never removed,
// even if a later re-check of the same factor fails.
func (s *CallSession) GrantFactor(f contractx.Factor) {
	if s == nil {
		return
	}
	if s.factors == nil {
		s.factors = make(map[contractx.Factor]struct{}, 3)
	}
	s.factors[f] = struct{}{}
}

func (s *CallSession) HasFactor(f contractx.Factor) bool {
	if s == nil {
		return false
	}
	_, ok := s.factors[f]
	return ok
}

func (s *CallSession) FactorCount() int {
	if s == nil {
		return 0
	}
	return len(s.factors)
}

// VerifiedFactors returns the granted factors in stable order.
func (s *CallSession) VerifiedFactors() []contractx.Factor {
	if s == nil || len(s.factors) == 0 {
		return nil
	}
	out := make([]contractx.Factor, 0, len(s.factors))
	for f := range s.factors {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsVerified reports whether the caller has proven knowledge of at least two
// of the three identity factors. Advisory to the orchestrator; the
// transaction coordinator re-checks it before any disclosure or payment.
func (s *CallSession) IsVerified() bool {
	return s.FactorCount() >= 2
}

func (s *CallSession) SetPayment(p *contractx.PaymentIntent) {
	if s == nil {
		return
	}
	s.Payment = p
}
