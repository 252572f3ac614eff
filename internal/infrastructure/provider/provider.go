// Package provider holds delivery-channel implementations behind the
// messaging Provider port.
package provider

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/midas-hq/midas/internal/core/domain"
)

// LogProvider is the placeholder delivery backend: it records the message
// instead of calling a real WhatsApp or email provider. Third-party
// integrations slot in behind the same port.
type LogProvider struct {
	log zerolog.Logger
}

func NewLogProvider(log zerolog.Logger) *LogProvider {
	return &LogProvider{log: log}
}

func (p *LogProvider) Deliver(_ context.Context, msg domain.Message) error {
	p.log.Info().
		Str("message_id", msg.ID).
		Str("channel", string(msg.Channel)).
		Str("recipient", msg.Recipient).
		Msg("message delivered (placeholder provider)")
	return nil
}
