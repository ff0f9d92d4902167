package application

import (
	"time"

	"github.com/bnema/meetroom-cli/internal/domain"
)

func buildNotification(kind domain.NotificationKind, source domain.NotificationSource, window *domain.SessionWindow, roster domain.Roster, now time.Time) domain.NotificationEvent {
	var configured domain.SessionWindow
	if window != nil {
		configured = *window
	}

	summary := domain.NewSummary(configured, now, roster)
	title := domain.TitleEnded
	if kind == domain.NotificationWarning {
		title = domain.TitleWarning
	}

	return domain.NotificationEvent{
		Kind:        kind,
		Source:      source,
		Title:       title,
		Description: summary.Description(),
		Summary:     summary,
		EmittedAt:   now,
	}
}
