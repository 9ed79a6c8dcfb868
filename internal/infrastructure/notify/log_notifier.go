package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

// LogNotifier writes notifications to the structured log instead of sending
// email. It is the delivery backend used when no mail transport is configured.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, msg ports.Notification) error {
	evt := n.log.Info().
		Str("kind", string(msg.Kind)).
		Str("order_id", msg.OrderID).
		Str("email", msg.Email)
	switch msg.Kind {
	case ports.NotifyStatusUpdated:
		evt = evt.Str("status", string(msg.Status))
	case ports.NotifyCityApproved:
		evt = evt.Str("city", msg.City).Str("state", msg.State)
	}
	evt.Msg("notification sent")
	return nil
}
