package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/bnema/meetroom-cli/internal/ports"
	"github.com/rs/zerolog"
)

// Notifier prints notifications as plain text lines and logs them.
type Notifier struct {
	out     io.Writer
	logger  zerolog.Logger
	hint    string
	elapsed func() string
	mu      sync.Mutex
}

var _ ports.Notifier = (*Notifier)(nil)

type Option func(*Notifier)

// WithActionHint sets the text printed after notifications that carry an action.
func WithActionHint(hint string) Option {
	return func(n *Notifier) {
		n.hint = hint
	}
}

// WithElapsed prefixes each printed notification with the stopwatch reading.
func WithElapsed(elapsed func() string) Option {
	return func(n *Notifier) {
		n.elapsed = elapsed
	}
}

func NewNotifier(out io.Writer, logger zerolog.Logger, opts ...Option) *Notifier {
	n := &Notifier{out: out, logger: logger}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

func (n *Notifier) Notify(event domain.NotificationEvent) {
	n.logger.Info().
		Str("kind", string(event.Kind)).
		Str("source", string(event.Source)).
		Str("duration", event.Summary.Duration.String()).
		Strs("participants", event.Summary.Participants).
		Msg(event.Title)

	if n.out == nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	prefix := domain.FormatTimestamp(event.EmittedAt)
	if n.elapsed != nil {
		prefix = fmt.Sprintf("[%s] %s", n.elapsed(), prefix)
	}

	_, _ = fmt.Fprintf(n.out, "%s %s\n", prefix, event.Title)
	_, _ = fmt.Fprintf(n.out, "  %s\n", event.Description)
	if event.HasAction() && n.hint != "" {
		_, _ = fmt.Fprintf(n.out, "  %s\n", n.hint)
	}
}
