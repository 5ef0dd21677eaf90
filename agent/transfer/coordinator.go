package transfer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/cmos-collections/callcore/agent/contract"
	statex "github.com/cmos-collections/callcore/agent/state"
)

const defaultDispatchTimeout = 30 * time.Second

// Coordinator escalates a live call to a human agent at a fixed destination.
// The control-plane call is fire-and-forget: it must not block the
// conversational turn that requested it, so RequestTransfer returns an
// optimistic result immediately and the real completion or failure is only
// observed through the dispatched goroutine's log line. There is no
// cancellation or rollback path.
type Coordinator struct {
	plane       contractx.TelephonyControlPlane
	destination string
	timeout     time.Duration

	dispatch func(func())
}

type Option func(*Coordinator)

// WithDispatch overrides how the background unit of work is started. Tests
// pass a synchronous dispatcher.
func WithDispatch(dispatch func(func())) Option {
	return func(c *Coordinator) {
		if dispatch != nil {
			c.dispatch = dispatch
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Coordinator) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func New(plane contractx.TelephonyControlPlane, destination string, opts ...Option) (*Coordinator, error) {
	if plane == nil {
		return nil, errors.New("telephony control plane is required")
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, errors.New("escalation destination is required")
	}

	c := &Coordinator{
		plane:       plane,
		destination: destination,
		timeout:     defaultDispatchTimeout,
		dispatch:    func(f func()) { go f() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// RequestTransfer dispatches the escalation for the session's call leg and
// returns as soon as the work is handed off. Fails closed with
// ErrMissingContext when the session does not know its call identity.
func (c *Coordinator) RequestTransfer(s *statex.CallSession) error {
	if !s.HasCallContext() {
		return contractx.ErrMissingContext
	}

	room := s.RoomName
	participantID := s.ParticipantID
	log.Info().
		Str("room", room).
		Str("participant", participantID).
		Str("destination", c.destination).
		Msg("transfer dispatched")

	c.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if err := c.plane.TransferParticipant(ctx, room, participantID, c.destination); err != nil {
			log.Error().Err(err).
				Str("room", room).
				Str("participant", participantID).
				Msg("transfer failed")
			return
		}
		log.Info().
			Str("room", room).
			Str("participant", participantID).
			Msg("transfer completed")
	})
	return nil
}
