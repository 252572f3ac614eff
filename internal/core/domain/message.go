package domain

import "time"

// Channel is the delivery medium for an outbound message.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

// Message is an outbound notification queued for delivery. Delivery to the
// actual provider is behind the Provider port; this process only queues.
type Message struct {
	ID        string    `json:"id"`
	Channel   Channel   `json:"channel"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	QueuedAt  time.Time `json:"queued_at"`
}
