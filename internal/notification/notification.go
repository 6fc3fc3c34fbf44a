package notification

import (
	"context"
	"log/slog"
	"sync"
)

const (
	// KindUserSignedUp is emitted after a new account is stored.
	KindUserSignedUp = "user.signed_up"
	// KindSongUploaded is emitted after a song and its thumbnail are stored.
	KindSongUploaded = "song.uploaded"
)

// Event describes something that happened in the catalogue.
type Event struct {
	Kind       string
	Subject    string
	Attributes map[string]string
}

// Notifier delivers events to downstream systems. Delivery failures must not
// fail the request that produced the event.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// LoggerNotifier writes events to the structured logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Notify writes the event to the structured logger.
func (n *LoggerNotifier) Notify(ctx context.Context, event Event) error {
	if n == nil || n.logger == nil {
		return nil
	}
	attrs := []any{slog.String("kind", event.Kind), slog.String("subject", event.Subject)}
	for k, v := range event.Attributes {
		attrs = append(attrs, slog.String(k, v))
	}
	n.logger.InfoContext(ctx, "event", attrs...)
	return nil
}

// Recorder keeps events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Notify appends the event.
func (r *Recorder) Notify(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a snapshot of recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
