package contract

import "context"

// AccountDirectory looks up an on-file account record by reference number.
// Implementations return ErrAccountNotFound for unknown references and wrap
// ErrDirectoryUnavailable for transient backend failures.
type AccountDirectory interface {
	Lookup(ctx context.Context, referenceNumber string) (*AccountRecord, error)
}

// PaymentGateway creates and retrieves payment intents in minor currency
// units.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*GatewayIntent, error)
	RetrieveIntent(ctx context.Context, id string) (*GatewayIntent, error)
}

// TelephonyControlPlane moves a live call leg to another destination.
type TelephonyControlPlane interface {
	TransferParticipant(ctx context.Context, room, participantID, destination string) error
}
