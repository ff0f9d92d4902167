package fanout

import (
	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/bnema/meetroom-cli/internal/ports"
)

// Notifier delivers every event to each target in order.
type Notifier struct {
	targets []ports.Notifier
}

var _ ports.Notifier = (*Notifier)(nil)

func New(targets ...ports.Notifier) *Notifier {
	n := &Notifier{targets: make([]ports.Notifier, 0, len(targets))}
	for _, target := range targets {
		if target != nil {
			n.targets = append(n.targets, target)
		}
	}

	return n
}

func (n *Notifier) Notify(event domain.NotificationEvent) {
	for _, target := range n.targets {
		target.Notify(event)
	}
}

func (n *Notifier) Len() int {
	return len(n.targets)
}
