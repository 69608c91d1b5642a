package events

import (
	"context"
	"log/slog"
)

// LogNotifier is the default subscriber for workflow events. It only logs;
// it is the hook point for a future mail or webhook sender.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Register(bus *EventBus) {
	bus.Subscribe(TypeExpenseSubmitted, n.handle)
	bus.Subscribe(TypeApprovalDecided, n.handle)
}

func (n *LogNotifier) handle(_ context.Context, event Event) error {
	n.logger.Info("workflow event",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"payload", event.Payload())
	return nil
}
