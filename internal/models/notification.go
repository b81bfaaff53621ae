package models

// ShareChannel is a delivery channel for a plan link.
type ShareChannel string

const (
	ShareChannelEmail ShareChannel = "email"
	ShareChannelSMS   ShareChannel = "sms"
)

// ShareRecipient is one address to send a plan link to.
type ShareRecipient struct {
	Channel ShareChannel `json:"channel"`
	Address string       `json:"address"`
}

// ShareReceipt records the outcome of one delivery.
type ShareReceipt struct {
	PlanID    string       `json:"planId"`
	Channel   ShareChannel `json:"channel"`
	Address   string       `json:"address"`
	Status    string       `json:"status"` // "sent", "failed", "disabled"
	MessageID string       `json:"messageId,omitempty"`
	Error     string       `json:"error,omitempty"`
	SentAt    string       `json:"sentAt,omitempty"`
}
