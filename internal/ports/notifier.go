package ports

import "github.com/bnema/meetroom-cli/internal/domain"

type Notifier interface {
	Notify(event domain.NotificationEvent)
}

type NotifierFunc func(event domain.NotificationEvent)

func (f NotifierFunc) Notify(event domain.NotificationEvent) {
	f(event)
}

type RosterSource interface {
	Participants() domain.Roster
}

type StaticRoster domain.Roster

func (r StaticRoster) Participants() domain.Roster {
	return domain.Roster(r)
}
