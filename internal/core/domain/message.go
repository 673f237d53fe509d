package domain

import "time"

type MessageKind string

const (
	MessageKindInfo    MessageKind = "info"
	MessageKindWarning MessageKind = "warning"
	MessageKindPromo   MessageKind = "promo"
)

func (k MessageKind) Valid() bool {
	switch k {
	case MessageKindInfo, MessageKindWarning, MessageKindPromo:
		return true
	}
	return false
}

// Message is an admin-to-customer notice shown in the customer's inbox.
type Message struct {
	ID             string      `json:"id"`
	RecipientEmail string      `json:"recipientEmail"`
	Body           string      `json:"message"`
	Kind           MessageKind `json:"type"`
	Read           bool        `json:"read"`
	CreatedAt      time.Time   `json:"createdAt"`
}
