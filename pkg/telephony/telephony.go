package telephony

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	contractx "github.com/cmos-collections/callcore/agent/contract"
)

type Config struct {
	AccountSID string `envconfig:"ACCOUNT_SID" split_words:"true" required:"true"`
	AuthToken  string `envconfig:"AUTH_TOKEN" split_words:"true" required:"true"`
}

// ControlPlane implements contract.TelephonyControlPlane on Twilio: the
// caller's live leg is redirected to the escalation destination with a
// <Dial> verb. The participant id carries the call SID of that leg; the
// room name is used only for diagnostics.
type ControlPlane struct {
	client *twilio.RestClient
}

var _ contractx.TelephonyControlPlane = (*ControlPlane)(nil)

func New(cfg Config) (*ControlPlane, error) {
	sid := strings.TrimSpace(cfg.AccountSID)
	token := strings.TrimSpace(cfg.AuthToken)
	if sid == "" || token == "" {
		return nil, errors.New("twilio credentials are required")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})
	return &ControlPlane{client: client}, nil
}

func MustNew(cfg Config) *ControlPlane {
	cp, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return cp
}

func (t *ControlPlane) TransferParticipant(_ context.Context, room, participantID, destination string) error {
	if strings.TrimSpace(participantID) == "" {
		return errors.New("participant call sid is required")
	}
	if strings.TrimSpace(destination) == "" {
		return errors.New("transfer destination is required")
	}

	twiml := fmt.Sprintf("<Response><Dial>%s</Dial></Response>", destination)
	params := &twilioApi.UpdateCallParams{}
	params.SetTwiml(twiml)

	if _, err := t.client.Api.UpdateCall(participantID, params); err != nil {
		return fmt.Errorf("redirect call leg room=%s: %w", room, err)
	}
	return nil
}
